// Package shortcut reads and writes the subset of the Shell Link Binary
// File Format (MS-SHLLINK) that the shim uses to emulate symbolic links.
//
// A link is a ".lnk" file holding a 76-byte header and either a LinkInfo
// structure with the absolute local target or a RELATIVE_PATH string for
// relative targets. Decode understands links written by the host shell as
// well: the item ID list is skipped, Unicode paths are preferred over their
// code-page twins, and links that only carry a network location are
// reported as such so the caller can refuse them.
//
// See https://learn.microsoft.com/en-us/openspecs/windows_protocols/ms-shllink
package shortcut
