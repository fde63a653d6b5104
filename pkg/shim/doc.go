// Package shim is the process context of the compatibility layer. A Runtime
// is initialized once per component that needs it and torn down when the
// last of them shuts down; in between it owns the bootstrapped locations,
// the path translation engine, the handle tables and the error mapper.
//
// The wrappers on Runtime accept POSIX paths, translate them and call the
// host, reporting failures as *PathError values carrying a POSIX errno.
package shim
