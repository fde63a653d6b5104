// Package store answers configuration lookups in two scopes, per-user and
// machine-wide, addressed by a backslash-separated key path and a value
// name.
//
// On Windows the default store reads the registry (HKCU and HKLM). Elsewhere
// each scope is a TOML or YAML file whose tables are key paths:
//
//	["Software\\Acme\\Tool"]
//	InstallDir = 'C:\Program Files\Acme'
//
// Key paths and value names compare case-insensitively, as registry keys do.
package store
