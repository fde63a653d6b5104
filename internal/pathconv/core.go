package pathconv

import (
	"github.com/GriffinCanCode/posixshim/internal/locations"
)

// Class is the prefix rule a path matched.
type Class int

const (
	ClassNative Class = iota
	ClassTemp
	ClassNull
	ClassData
	ClassRoot
	ClassHome
	ClassHomeVar
	ClassRelative
)

func (c Class) String() string {
	switch c {
	case ClassNative:
		return "native"
	case ClassTemp:
		return "tmp"
	case ClassNull:
		return "null"
	case ClassData:
		return "data"
	case ClassRoot:
		return "root"
	case ClassHome:
		return "home"
	case ClassHomeVar:
		return "home_var"
	case ClassRelative:
		return "relative"
	}
	return "unknown"
}

type unit interface {
	~byte | ~uint16
}

// roots holds the substitutions in one code-unit width.
type roots[T unit] struct {
	temp, data, root, home []T
	sep                    T
	// lossy marks substitutions that lost characters in this encoding.
	lossy map[Class]bool
}

const null = "nul"

func hasPrefix[T unit](in []T, prefix string) bool {
	if len(in) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if in[i] != T(prefix[i]) {
			return false
		}
	}
	return true
}

// isNative reports whether in is already a host path. A slash separator
// cannot tell the two syntaxes apart, so on such hosts only a drive colon
// counts.
func isNative[T unit](in []T, sep T) bool {
	for _, c := range in {
		if c == ':' || (c == sep && sep != '/') {
			return true
		}
	}
	return false
}

// match returns the substitution for in, how many units of in it replaces
// and whether the rest of in is kept.
func match[T unit](in []T, r *roots[T]) (sub []T, consumed int, keepRest bool, class Class) {
	switch {
	case hasPrefix(in, "/tmp"):
		return r.temp, 4, true, ClassTemp
	case hasPrefix(in, "/dev/null"):
		return literal[T](null), len("/dev/null"), false, ClassNull
	case hasPrefix(in, "/etc"), hasPrefix(in, "/com"), hasPrefix(in, "/var"):
		return r.data, 1, true, ClassData
	case hasPrefix(in, "/"):
		return r.root, 1, true, ClassRoot
	case hasPrefix(in, "~"):
		return r.home, 1, true, ClassHome
	case hasPrefix(in, "$HOME"):
		return r.home, 5, true, ClassHomeVar
	}
	return nil, 0, true, ClassRelative
}

func literal[T unit](s string) []T {
	out := make([]T, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = T(s[i])
	}
	return out
}

// translate applies the prefix rules to in. The length check precedes any
// copying.
func translate[T unit](in []T, r *roots[T]) ([]T, Class, error) {
	if len(in) == 0 {
		return nil, ClassRelative, ErrInvalidArgument
	}
	if isNative(in, r.sep) {
		if len(in) > locations.MaxPath {
			return nil, ClassNative, ErrOverflow
		}
		return append([]T(nil), in...), ClassNative, nil
	}

	sub, consumed, keepRest, class := match(in, r)
	rest := in[consumed:]
	if !keepRest {
		rest = nil
	}
	// "~/x" must not produce a doubled separator after home's own.
	if len(sub) > 0 && sub[len(sub)-1] == r.sep && len(rest) > 0 && rest[0] == '/' {
		rest = rest[1:]
	}
	if len(sub)+len(rest) > locations.MaxPath {
		return nil, class, ErrOverflow
	}
	if r.lossy[class] {
		return nil, class, ErrUnrepresentable
	}

	out := make([]T, 0, len(sub)+len(rest))
	out = append(out, sub...)
	for _, c := range rest {
		if c == '/' {
			c = r.sep
		}
		out = append(out, c)
	}
	return out, class, nil
}
