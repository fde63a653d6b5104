package shim

import "github.com/GriffinCanCode/posixshim/internal/handles"

// SetBlocking records the blocking mode of socket s.
func (r *Runtime) SetBlocking(s handles.Handle, blocking bool) error {
	st, err := r.current()
	if err != nil {
		return err
	}
	st.blocking.Set(s, blocking)
	st.metrics.SetHandles("blocking", st.blocking.Len())
	return nil
}

// IsBlocking reports whether socket s is in blocking mode. Unknown sockets
// are blocking.
func (r *Runtime) IsBlocking(s handles.Handle) bool {
	st := r.cur.Load()
	if st == nil {
		return true
	}
	return st.blocking.Is(s)
}

// ForgetSocket drops the recorded mode of s.
func (r *Runtime) ForgetSocket(s handles.Handle) {
	if st := r.cur.Load(); st != nil {
		st.blocking.Forget(s)
		st.metrics.SetHandles("blocking", st.blocking.Len())
	}
}

// RegisterHandle records what h refers to.
func (r *Runtime) RegisterHandle(h handles.Handle, kind handles.Kind) error {
	st, err := r.current()
	if err != nil {
		return err
	}
	st.kinds.Register(h, kind)
	st.metrics.SetHandles("kinds", st.kinds.Len())
	return nil
}

// HandleKind returns what h refers to, or handles.Unknown.
func (r *Runtime) HandleKind(h handles.Handle) handles.Kind {
	st := r.cur.Load()
	if st == nil {
		return handles.Unknown
	}
	return st.kinds.Kind(h)
}

// UnregisterHandle forgets h.
func (r *Runtime) UnregisterHandle(h handles.Handle) {
	if st := r.cur.Load(); st != nil {
		st.kinds.Unregister(h)
		st.metrics.SetHandles("kinds", st.kinds.Len())
	}
}
