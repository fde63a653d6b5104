// Package handles keeps the per-handle side tables the POSIX wrappers need:
// whether a socket is in blocking mode, and what kind of object a raw host
// handle refers to. Entries are added when a handle is created and removed
// when it is closed, from any goroutine.
package handles
