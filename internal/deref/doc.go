// Package deref follows chains of shell links the way the kernel follows
// symbolic links.
//
// A single step (ReadLink) finds the link under its literal name or with
// ".lnk" appended, checks the header and returns the recorded target.
// Resolve repeats the step until it reaches something that is not a link,
// giving up with ErrLoop after MaxDepth hops. Reaching a plain file, a
// directory or a path that does not exist ends the chain normally, so
// Resolve on an ordinary path returns it unchanged.
//
// Every sentinel wraps the errno.Errno a POSIX caller expects:
//
//	ErrNotLink       EINVAL
//	ErrLoop          ELOOP
//	ErrAccessDenied  EACCES
//	ErrStale         ESTALE
//	ErrInvalid       EIO
package deref
