// Package config provides 12-factor configuration management for the shim.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables.
//
// Configuration Sections:
//   - Shim: organisation and application names, narrow encoding, home
//     directory variables
//   - Store: user and machine configuration store files
//   - Logging: Log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("UTF-8 mode: %v\n", cfg.Shim.UTF8Mode)
//
// Environment Variables:
//   - POSIXSHIM_ORG, POSIXSHIM_APP
//   - POSIXSHIM_UTF8_MODE, POSIXSHIM_CODE_PAGE, POSIXSHIM_HOME_VARS
//   - POSIXSHIM_USER_STORE, POSIXSHIM_MACHINE_STORE
//   - POSIXSHIM_LOG_LEVEL, POSIXSHIM_LOG_DEV
package config
