// Package textconv converts between narrow byte strings and wide (UTF-16)
// strings under a selectable code page.
//
// Every conversion runs in two phases, mirroring the host APIs it stands in
// for: a count pass that computes the exact output length, then a convert
// pass that fills a buffer of that length. Callers holding fixed-size
// buffers use the *Buf variants, which report ErrBufferTooSmall without
// writing anything when the destination is short.
//
// Narrow output in a legacy code page may be lossy: characters the code page
// cannot represent are replaced by '?', and the conversion reports it so a
// caller never hands a garbled path to the filesystem by accident.
//
//	w, err := textconv.NarrowToWide([]byte("/tmp/x"), textconv.UTF8)
//	b, lossy, err := textconv.WideToNarrow(w, 1252)
package textconv
