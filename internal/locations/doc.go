// Package locations establishes the three directories POSIX paths are
// rooted in: the install root standing in for "/", the user's home for "~"
// and "$HOME", and the shared data directory for "/etc", "/com" and "/var".
//
// Bootstrap probes them once, in a fixed order, and the result is never
// mutated afterwards, so a *Locations may be shared freely between
// goroutines:
//
//	root  executable under a "bin" directory, else the store's InstallDir
//	      (user scope, then machine scope), else the working directory
//	user  the host's current user name
//	home  an environment override, else the store's "Personal" shell
//	      folder, else <root>home\<user>\
//	data  the store's "Common AppData" shell folder plus <org>\<app>\,
//	      else the root
//
// Every directory ends with exactly one separator and fits in MaxPath code
// units. Each is cached in wide, UTF-8 and code-page form so translation
// never converts it again.
package locations
