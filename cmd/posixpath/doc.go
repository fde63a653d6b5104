// Command posixpath translates POSIX paths the way the shim does and
// manages the links it understands.
//
// Configuration comes from POSIXSHIM_* environment variables.
package main
