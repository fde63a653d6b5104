package shim

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/deref"
	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/handles"
	"github.com/GriffinCanCode/posixshim/internal/host"
	"github.com/GriffinCanCode/posixshim/internal/infrastructure/config"
	"github.com/GriffinCanCode/posixshim/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/posixshim/internal/locations"
	"github.com/GriffinCanCode/posixshim/internal/logging"
	"github.com/GriffinCanCode/posixshim/internal/pathconv"
	"github.com/GriffinCanCode/posixshim/internal/store"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// ErrNotInitialized is returned by operations on a Runtime with no
// outstanding Init.
var ErrNotInitialized = fmt.Errorf("runtime not initialized: %w", errno.EINVAL)

// Options configures the first Init of a Runtime. Later calls only count.
type Options struct {
	// Org and App name the installation. A product file next to the
	// executable overrides both.
	Org string
	App string
	// UTF8Mode treats narrow paths as UTF-8 instead of the code page.
	UTF8Mode bool

	// Config defaults to the environment configuration.
	Config *config.Config
	// Host defaults to the running process.
	Host host.Host
	// Store defaults to the platform configuration store.
	Store   store.Store
	Logger  *logging.Logger
	Metrics *monitoring.Metrics
}

// state is everything Init builds. It is immutable once published.
type state struct {
	cfg     *config.Config
	log     *logging.Logger
	metrics *monitoring.Metrics
	loc     *locations.Locations
	engine  *pathconv.Engine
	links   *deref.Resolver
	mapper  *errno.Mapper
	org     string
	app     string

	blocking handles.Blocking
	kinds    handles.Kinds
}

// Runtime is a reference-counted process context. The zero value is ready
// for Init.
type Runtime struct {
	mu   sync.Mutex
	refs int

	pmu     sync.RWMutex
	panicFn errno.PanicFunc

	cur atomic.Pointer[state]
}

// NewRuntime returns an uninitialized Runtime.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// SetPanicFunc replaces the callback for unrecoverable errors. A nil fn
// restores the default, which ignores them.
func (r *Runtime) SetPanicFunc(fn errno.PanicFunc) {
	r.pmu.Lock()
	defer r.pmu.Unlock()
	r.panicFn = fn
}

func (r *Runtime) report(code int, msg string) {
	r.pmu.RLock()
	fn := r.panicFn
	r.pmu.RUnlock()

	if fn == nil {
		fn = errno.NopPanic
	}
	fn(code, msg)
}

// Init initializes the runtime on the first call and counts every call.
// Each successful Init must be paired with a Shutdown.
func (r *Runtime) Init(opts Options) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs > 0 {
		r.refs++
		st := r.cur.Load()
		st.metrics.SetInitRefs(r.refs)
		st.log.Debug("runtime referenced", zap.Int("refs", r.refs))
		return nil
	}

	st, err := r.build(opts)
	if err != nil {
		return err
	}
	if err := startNetworking(); err != nil {
		st.metrics.RecordPanic(strconv.Itoa(errno.PanicWinsockInit))
		r.report(errno.PanicWinsockInit, fmt.Sprintf("Cannot initialize networking (%v)\n", err))
		return fmt.Errorf("initialize networking: %w", err)
	}

	r.refs = 1
	r.cur.Store(st)
	st.metrics.SetInitRefs(r.refs)
	st.log.Info("runtime initialized",
		zap.String("org", st.org),
		zap.String("app", st.app),
		zap.Bool("utf8", st.engine.UTF8Mode()),
		zap.Stringer("code_page", st.engine.CodePage()))
	return nil
}

func (r *Runtime) build(opts Options) (*state, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.LoadOrDefault()
	}
	log := opts.Logger
	if log == nil {
		var err error
		if log, err = logging.New(logging.FromConfig(cfg.Logging)); err != nil {
			log = logging.NewDefault()
		}
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = monitoring.NewMetrics()
	}
	h := opts.Host
	if h == nil {
		h = host.OS()
	}
	s := opts.Store
	if s == nil {
		s = store.Default(cfg.Store.UserPath, cfg.Store.MachinePath)
	}

	org, app := opts.Org, opts.App
	if org == "" && app == "" {
		org, app = cfg.Shim.Org, cfg.Shim.App
	}
	if exe, err := h.Executable(); err == nil {
		if path, ok := findProductFile(exe); ok {
			info, err := readProductFile(path)
			switch {
			case err != nil:
				log.Warn("ignoring product file", zap.String("path", path), zap.Error(err))
			default:
				if info.Init.Organisation != "" {
					org = info.Init.Organisation
				}
				if info.Init.Application != "" {
					app = info.Init.Application
				}
			}
		}
	}

	st := &state{cfg: cfg, log: log, metrics: metrics, org: org, app: app}
	st.mapper = errno.NewMapper(func(code int, msg string) {
		metrics.RecordPanic(strconv.Itoa(code))
		r.report(code, msg)
	})

	loc, err := locations.Bootstrap(locations.Options{
		Org:      org,
		App:      app,
		Host:     h,
		Store:    s,
		HomeVars: cfg.Shim.HomeVars,
		CodePage: textconv.CodePage(cfg.Shim.CodePage),
		Logger:   log.Zap(),
	})
	if err != nil {
		var be *locations.BootstrapError
		if errors.As(err, &be) {
			metrics.RecordPanic(strconv.Itoa(errno.PanicBootstrap))
			r.report(errno.PanicBootstrap, fmt.Sprintf("Cannot determine %s directory (%v)\n", be.Stage, be.Err))
		}
		log.Error("bootstrap failed", zap.Error(err))
		return nil, err
	}

	st.loc = loc
	st.links = deref.New(deref.OSFS{}, loc.CodePage, log.Zap())
	st.engine = pathconv.New(loc, pathconv.Options{
		UTF8Mode: opts.UTF8Mode,
		Resolver: st.links,
		Metrics:  metrics,
		Logger:   log.Zap(),
	})
	return st, nil
}

// Shutdown releases one Init. The last release tears the runtime down;
// releases beyond that are ignored.
func (r *Runtime) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		return
	}
	st := r.cur.Load()
	r.refs--
	st.metrics.SetInitRefs(r.refs)
	if r.refs > 0 {
		return
	}

	stopNetworking()
	r.cur.Store(nil)
	st.log.Info("runtime shut down",
		zap.Int("open_handles", st.kinds.Len()),
		zap.Int("sockets", st.blocking.Len()))
	_ = st.log.Sync()
}

// Initialized reports whether an Init is outstanding.
func (r *Runtime) Initialized() bool {
	return r.cur.Load() != nil
}

// Refs returns the number of outstanding Init calls.
func (r *Runtime) Refs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refs
}

func (r *Runtime) current() (*state, error) {
	st := r.cur.Load()
	if st == nil {
		return nil, ErrNotInitialized
	}
	return st, nil
}

// Engine returns the path translation engine.
func (r *Runtime) Engine() (*pathconv.Engine, error) {
	st, err := r.current()
	if err != nil {
		return nil, err
	}
	return st.engine, nil
}

// Locations returns the bootstrapped directories.
func (r *Runtime) Locations() (*locations.Locations, error) {
	st, err := r.current()
	if err != nil {
		return nil, err
	}
	return st.loc, nil
}

// Metrics returns the collectors of the current initialization, or nil.
func (r *Runtime) Metrics() *monitoring.Metrics {
	st := r.cur.Load()
	if st == nil {
		return nil
	}
	return st.metrics
}

// Errno maps err to a POSIX error number.
func (r *Runtime) Errno(err error) errno.Errno {
	if st := r.cur.Load(); st != nil {
		return st.mapper.FromError(err)
	}
	return errno.NewMapper(r.report).FromError(err)
}
