// Package pathconv rewrites POSIX paths into host-native ones.
//
// The first matching prefix decides the rewrite:
//
//	/tmp...          host temporary directory + rest
//	/dev/null        "nul"
//	/etc /com /var   data directory + path without the leading slash
//	/...             install root + path without the leading slash
//	~...             home directory + rest
//	$HOME...         home directory + rest
//	anything else    unchanged
//
// Slashes in the rest become the native separator. A path that already
// contains the native separator or a drive colon is taken as native and
// returned as-is. The result never exceeds locations.MaxPath code units;
// the bound is checked before anything is built.
//
// With dereferencing on, shell links along the finished path are followed
// through deref.Resolver. With it off, a name that does not exist is tried
// once more with ".lnk" appended so callers can name a link without its
// extension.
//
// The same algorithm runs over bytes (the active narrow encoding) and over
// UTF-16 code units.
package pathconv
