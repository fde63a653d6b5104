package locations

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/host"
	"github.com/GriffinCanCode/posixshim/internal/store"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// Store keys consulted during bootstrap.
const (
	ShellFoldersKey = `Software\Microsoft\Windows\CurrentVersion\Explorer\Shell Folders`
	InstallDirValue = "InstallDir"
	PersonalValue   = "Personal"
	CommonDataValue = "Common AppData"
)

// Stage identifies a bootstrap step.
type Stage int

const (
	StageRoot Stage = iota
	StageUser
	StageHome
	StageData
)

func (s Stage) String() string {
	switch s {
	case StageRoot:
		return "root"
	case StageUser:
		return "user"
	case StageHome:
		return "home"
	case StageData:
		return "data"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// BootstrapError reports the stage that stopped initialization.
type BootstrapError struct {
	Stage Stage
	Err   error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("determine %s directory: %v", e.Stage, e.Err)
}

func (e *BootstrapError) Unwrap() error { return e.Err }

// Options configures Bootstrap.
type Options struct {
	Org string
	App string

	Host  host.Host
	Store store.Store

	// HomeVars are the environment variables consulted for the home
	// directory, in order. Defaults to USERPROFILE.
	HomeVars []string

	// CodePage is used for the narrow caches. Zero means the host code page.
	CodePage textconv.CodePage

	Logger *zap.Logger
}

// Locations holds the bootstrapped directories.
type Locations struct {
	Root Dir
	Home Dir
	Data Dir
	// Temp is the host temporary directory, with a trailing separator like
	// the others.
	Temp Dir
	User string
	Sep  byte
	// CodePage is the code page of the ANSI caches.
	CodePage textconv.CodePage
}

type bootstrapper struct {
	opts Options
	sep  byte
	cp   textconv.CodePage
	log  *zap.Logger
	loc  *Locations
}

// Bootstrap probes the root, user, home and data directories in that order.
// The first failing stage aborts the sequence with a *BootstrapError.
func Bootstrap(opts Options) (*Locations, error) {
	if opts.Host == nil {
		opts.Host = host.OS()
	}
	if opts.Store == nil {
		opts.Store = store.NewMemory()
	}
	if len(opts.HomeVars) == 0 {
		opts.HomeVars = []string{"USERPROFILE"}
	}
	if opts.CodePage == 0 {
		cp, err := textconv.HostCodePage()
		if err != nil {
			return nil, fmt.Errorf("host code page: %w", err)
		}
		opts.CodePage = cp
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	b := &bootstrapper{
		opts: opts,
		sep:  opts.Host.Separator(),
		cp:   opts.CodePage,
		log:  opts.Logger,
		loc:  &Locations{Sep: opts.Host.Separator(), CodePage: opts.CodePage},
	}

	stages := []struct {
		stage Stage
		run   func() error
	}{
		{StageRoot, b.root},
		{StageUser, b.user},
		{StageHome, b.home},
		{StageData, b.data},
	}
	for _, s := range stages {
		if err := s.run(); err != nil {
			return nil, &BootstrapError{Stage: s.stage, Err: err}
		}
	}

	temp, err := NewDir(opts.Host.TempDir(), b.sep, b.cp)
	if err != nil {
		return nil, fmt.Errorf("temporary directory: %w", err)
	}
	b.loc.Temp = temp

	b.log.Debug("locations determined",
		zap.String("root", b.loc.Root.Native),
		zap.String("home", b.loc.Home.Native),
		zap.String("data", b.loc.Data.Native),
		zap.String("user", b.loc.User))
	return b.loc, nil
}

func (b *bootstrapper) root() error {
	if exe, err := b.opts.Host.Executable(); err == nil {
		if root, ok := b.binParent(exe); ok {
			return b.set(&b.loc.Root, root, "executable")
		}
	} else {
		b.log.Debug("executable path unavailable", zap.Error(err))
	}

	key := `Software\` + b.opts.Org + `\` + b.opts.App
	for _, scope := range []store.Scope{store.User, store.Machine} {
		v, err := b.opts.Store.Lookup(scope, key, InstallDirValue)
		if err == nil && v != "" {
			return b.set(&b.loc.Root, v, scope.String()+" store")
		}
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			b.log.Debug("install dir lookup failed", zap.Stringer("scope", scope), zap.Error(err))
		}
	}

	wd, err := b.opts.Host.Getwd()
	if err != nil {
		return fmt.Errorf("working directory: %w", err)
	}
	return b.set(&b.loc.Root, wd, "working directory")
}

// binParent returns the directory above exe's "bin" directory, with its
// trailing separator.
func (b *bootstrapper) binParent(exe string) (string, bool) {
	i := b.lastSep(exe)
	if i < 0 {
		return "", false
	}
	dir := exe[:i]
	j := b.lastSep(dir)
	if j < 0 || !strings.EqualFold(dir[j+1:], "bin") {
		return "", false
	}
	return dir[:j+1], true
}

func (b *bootstrapper) lastSep(s string) int {
	return strings.LastIndexFunc(s, func(r rune) bool {
		return r == rune(b.sep) || r == '/'
	})
}

func (b *bootstrapper) user() error {
	name, err := b.opts.Host.CurrentUser()
	if err != nil {
		return err
	}
	if name == "" {
		return errors.New("empty user name")
	}
	b.loc.User = name
	return nil
}

func (b *bootstrapper) home() error {
	for _, key := range b.opts.HomeVars {
		if v, ok := b.opts.Host.LookupEnv(key); ok && v != "" {
			return b.set(&b.loc.Home, v, key)
		}
	}

	v, err := store.QueryBounded(b.opts.Store, store.User, ShellFoldersKey, PersonalValue, MaxPath-1)
	switch {
	case err == nil:
		return b.set(&b.loc.Home, v, "user store")
	case errors.Is(err, store.ErrBufferTooSmall):
		return fmt.Errorf("%w: %v", ErrOverflow, err)
	case !errors.Is(err, store.ErrNotFound):
		b.log.Debug("personal folder lookup failed", zap.Error(err))
	}

	sep := string(b.sep)
	return b.set(&b.loc.Home, b.loc.Root.Native+"home"+sep+b.loc.User+sep, "root")
}

func (b *bootstrapper) data() error {
	v, err := store.QueryBounded(b.opts.Store, store.Machine, ShellFoldersKey, CommonDataValue, MaxPath)
	switch {
	case err == nil:
		dir := strings.TrimRight(v, string(b.sep))
		for _, part := range []string{b.opts.Org, b.opts.App} {
			if part != "" {
				dir += string(b.sep) + part
			}
		}
		return b.set(&b.loc.Data, dir, "machine store")
	case errors.Is(err, store.ErrBufferTooSmall):
		return fmt.Errorf("%w: %v", ErrOverflow, err)
	case !errors.Is(err, store.ErrNotFound):
		b.log.Debug("common data folder lookup failed", zap.Error(err))
	}
	b.loc.Data = b.loc.Root
	return nil
}

func (b *bootstrapper) set(d *Dir, native, source string) error {
	dir, err := NewDir(native, b.sep, b.cp)
	if err != nil {
		return err
	}
	*d = dir
	b.log.Debug("location resolved", zap.String("path", dir.Native), zap.String("source", source))
	return nil
}
