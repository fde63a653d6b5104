package handles

import "fmt"

// Handle is a raw host handle or socket descriptor.
type Handle uintptr

// Kind is the type of object behind a handle.
type Kind int

const (
	Unknown Kind = iota
	File
	Pipe
	Socket
)

func (k Kind) String() string {
	switch k {
	case Unknown:
		return "unknown"
	case File:
		return "file"
	case Pipe:
		return "pipe"
	case Socket:
		return "socket"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Blocking records the blocking mode of sockets. Sockets are blocking
// until told otherwise.
type Blocking struct {
	t Table[Handle, bool]
}

// Set records the mode of s.
func (b *Blocking) Set(s Handle, blocking bool) { b.t.Set(s, blocking) }

// Is reports whether s is in blocking mode.
func (b *Blocking) Is(s Handle) bool { return b.t.Get(s, true) }

// Forget drops s, typically on close.
func (b *Blocking) Forget(s Handle) { b.t.Delete(s) }

// Len returns the number of sockets with a recorded mode.
func (b *Blocking) Len() int { return b.t.Len() }

// Kinds records what each handle refers to.
type Kinds struct {
	t Table[Handle, Kind]
}

// Register records the kind of h.
func (k *Kinds) Register(h Handle, kind Kind) { k.t.Set(h, kind) }

// Kind returns the kind of h, Unknown if it was never registered.
func (k *Kinds) Kind(h Handle) Kind { return k.t.Get(h, Unknown) }

// Unregister drops h.
func (k *Kinds) Unregister(h Handle) { k.t.Delete(h) }

// Len returns the number of registered handles.
func (k *Kinds) Len() int { return k.t.Len() }
