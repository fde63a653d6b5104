// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// All output goes to stderr. Library code takes a *zap.Logger and treats
// nil as "discard"; only the command line and the runtime build one here.
//
// Example Usage:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging))
//	logger.Debug("posix path resolved", zap.String("path", p))
package logging
