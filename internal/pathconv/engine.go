package pathconv

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/deref"
	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/posixshim/internal/locations"
	"github.com/GriffinCanCode/posixshim/internal/shortcut"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

var (
	// ErrInvalidArgument is returned for an empty path.
	ErrInvalidArgument = fmt.Errorf("empty path: %w", errno.EINVAL)
	// ErrOverflow is returned when the result would exceed MaxPath.
	ErrOverflow = fmt.Errorf("translated path exceeds %d code units: %w", locations.MaxPath, errno.ENAMETOOLONG)
	// ErrUnrepresentable is returned when a narrow code-page result cannot
	// carry every character of the path it stands for.
	ErrUnrepresentable = fmt.Errorf("path not representable in the active code page: %w", errno.EILSEQ)
)

// Options configures an Engine.
type Options struct {
	// UTF8Mode selects UTF-8 over the code page for narrow paths.
	UTF8Mode bool
	// Resolver follows links. Defaults to a resolver on the host filesystem.
	Resolver *deref.Resolver
	Metrics  *monitoring.Metrics
	Logger   *zap.Logger
}

// Engine translates paths against a fixed set of locations. It is safe for
// concurrent use.
type Engine struct {
	loc      *locations.Locations
	utf8     bool
	resolver *deref.Resolver
	metrics  *monitoring.Metrics
	log      *zap.Logger

	narrow roots[byte]
	wide   roots[uint16]
}

// New returns an Engine for loc.
func New(loc *locations.Locations, opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Resolver == nil {
		opts.Resolver = deref.New(deref.OSFS{}, loc.CodePage, opts.Logger)
	}

	e := &Engine{
		loc:      loc,
		utf8:     opts.UTF8Mode,
		resolver: opts.Resolver,
		metrics:  opts.Metrics,
		log:      opts.Logger,
	}

	e.narrow = roots[byte]{
		temp:  trimSep(loc.Temp.Narrow(e.utf8), loc.Sep),
		data:  loc.Data.Narrow(e.utf8),
		root:  loc.Root.Narrow(e.utf8),
		home:  loc.Home.Narrow(e.utf8),
		sep:   loc.Sep,
		lossy: map[Class]bool{},
	}
	if !e.utf8 {
		e.narrow.lossy = map[Class]bool{
			ClassTemp:    loc.Temp.Lossy,
			ClassData:    loc.Data.Lossy,
			ClassRoot:    loc.Root.Lossy,
			ClassHome:    loc.Home.Lossy,
			ClassHomeVar: loc.Home.Lossy,
		}
	}
	e.wide = roots[uint16]{
		temp: trimSep([]uint16(loc.Temp.Wide), uint16(loc.Sep)),
		data: loc.Data.Wide,
		root: loc.Root.Wide,
		home: loc.Home.Wide,
		sep:  uint16(loc.Sep),
	}
	return e
}

func trimSep[T unit](dir []T, sep T) []T {
	if n := len(dir); n > 0 && dir[n-1] == sep {
		return dir[:n-1]
	}
	return dir
}

// Locations returns the directories the engine substitutes.
func (e *Engine) Locations() *locations.Locations {
	return e.loc
}

// UTF8Mode reports whether narrow paths are UTF-8.
func (e *Engine) UTF8Mode() bool {
	return e.utf8
}

// CodePage returns the narrow encoding: UTF8 or the code page of the
// location caches.
func (e *Engine) CodePage() textconv.CodePage {
	if e.utf8 {
		return textconv.UTF8
	}
	return e.loc.CodePage
}

// TranslateNarrow translates a path in the active narrow encoding. The
// result is bounded in bytes.
func (e *Engine) TranslateNarrow(posix []byte, follow bool) ([]byte, error) {
	if cp := e.CodePage(); cp != textconv.UTF8 && cp.MultiByte() {
		return e.translateMultiByte(posix, cp, follow)
	}

	start := time.Now()
	out, class, err := translate(posix, &e.narrow)
	if err != nil {
		return nil, e.fail(err)
	}

	native, err := textconv.Decode(out, e.CodePage())
	if err != nil {
		return nil, e.fail(err)
	}
	final, changed, err := e.finish(native, follow)
	if err != nil {
		return nil, e.fail(err)
	}
	if changed {
		b, lossy, err := textconv.Encode(final, e.CodePage())
		if err != nil {
			return nil, e.fail(err)
		}
		if lossy {
			return nil, e.fail(fmt.Errorf("%s: %w", final, ErrUnrepresentable))
		}
		if len(b) > locations.MaxPath {
			return nil, e.fail(ErrOverflow)
		}
		out = b
	}

	e.done(class, native, final, start)
	return out, nil
}

// translateMultiByte handles double-byte code pages, whose trail bytes can
// equal a backslash or other ASCII. Prefix rules run on the decoded path.
func (e *Engine) translateMultiByte(posix []byte, cp textconv.CodePage, follow bool) ([]byte, error) {
	if len(posix) == 0 {
		return nil, e.fail(ErrInvalidArgument)
	}
	w, err := textconv.NarrowToWide(posix, cp)
	if err != nil {
		return nil, e.fail(err)
	}
	out, err := e.TranslateWide(w, follow)
	if err != nil {
		return nil, err
	}
	b, lossy, err := textconv.WideToNarrow(out, cp)
	if err != nil {
		return nil, e.fail(err)
	}
	if lossy {
		return nil, e.fail(fmt.Errorf("%s: %w", out, ErrUnrepresentable))
	}
	if len(b) > locations.MaxPath {
		return nil, e.fail(ErrOverflow)
	}
	return b, nil
}

// TranslateWide translates a UTF-16 path.
func (e *Engine) TranslateWide(posix textconv.Wide, follow bool) (textconv.Wide, error) {
	start := time.Now()
	out, class, err := translate([]uint16(posix), &e.wide)
	if err != nil {
		return nil, e.fail(err)
	}

	native := textconv.Wide(out).String()
	final, changed, err := e.finish(native, follow)
	if err != nil {
		return nil, e.fail(err)
	}
	if changed {
		w, err := textconv.FromString(final)
		if err != nil {
			return nil, e.fail(err)
		}
		if len(w) > locations.MaxPath {
			return nil, e.fail(ErrOverflow)
		}
		out = w
	}

	e.done(class, native, final, start)
	return out, nil
}

// TranslateToWide translates a UTF-8 path to UTF-16.
func (e *Engine) TranslateToWide(posix string, follow bool) (textconv.Wide, error) {
	w, err := textconv.FromString(posix)
	if err != nil {
		return nil, e.fail(err)
	}
	return e.TranslateWide(w, follow)
}

// Translate translates a Go string and returns a Go string. Lengths are
// measured in UTF-16 code units.
func (e *Engine) Translate(posix string, follow bool) (string, error) {
	w, err := e.TranslateToWide(posix, follow)
	if err != nil {
		return "", err
	}
	return w.String(), nil
}

// finish dereferences native, or probes for a link named without its
// extension, and reports whether the path changed.
func (e *Engine) finish(native string, follow bool) (string, bool, error) {
	if follow {
		resolved, hops, err := e.resolver.ResolveDepth(native)
		e.metrics.ObserveLinkHops(hops)
		if err != nil {
			return "", false, err
		}
		return resolved, resolved != native, nil
	}

	if shortcut.HasExt(native) {
		return native, false, nil
	}
	name, _, err := e.resolver.Candidate(native)
	if err != nil || name == native {
		return native, false, nil
	}
	return name, true, nil
}

func (e *Engine) fail(err error) error {
	e.metrics.RecordTranslationError(reason(err))
	return err
}

func (e *Engine) done(class Class, translated, final string, start time.Time) {
	e.metrics.RecordTranslation(class.String(), time.Since(start))
	e.log.Debug("posix path resolved",
		zap.Stringer("class", class),
		zap.String("translated", translated),
		zap.String("final", final))
}

func reason(err error) string {
	var c *textconv.ConversionError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return "invalid"
	case errors.Is(err, ErrOverflow):
		return "overflow"
	case errors.Is(err, ErrUnrepresentable):
		return "unrepresentable"
	case errors.Is(err, deref.ErrLoop):
		return "loop"
	case errors.Is(err, deref.ErrAccessDenied):
		return "access"
	case errors.Is(err, deref.ErrStale):
		return "stale"
	case errors.Is(err, deref.ErrInvalid):
		return "corrupt_link"
	case errors.As(err, &c):
		return "encoding"
	}
	return "other"
}
