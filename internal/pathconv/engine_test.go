package pathconv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/posixshim/internal/deref"
	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/posixshim/internal/locations"
	"github.com/GriffinCanCode/posixshim/internal/shortcut"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

func dir(t *testing.T, native string, sep byte) locations.Dir {
	t.Helper()
	d, err := locations.NewDir(native, sep, 1252)
	require.NoError(t, err)
	return d
}

// fixture lays the locations out like a Windows install.
func fixture(t *testing.T, root string) *locations.Locations {
	t.Helper()
	return &locations.Locations{
		Root:     dir(t, root, '\\'),
		Home:     dir(t, `C:\home\u\`, '\\'),
		Data:     dir(t, `C:\data\`, '\\'),
		Temp:     dir(t, `C:\Temp`, '\\'),
		User:     "u",
		Sep:      '\\',
		CodePage: 1252,
	}
}

func newEngine(t *testing.T, loc *locations.Locations, utf8 bool) *Engine {
	t.Helper()
	return New(loc, Options{UTF8Mode: utf8, Resolver: deref.New(deref.OSFS{}, loc.CodePage, nil)})
}

func TestPrefixClasses(t *testing.T) {
	e := newEngine(t, fixture(t, `C:\install\`), true)

	tests := []struct {
		name  string
		posix string
		want  string
	}{
		{"tmp", "/tmp/a", `C:\Temp\a`},
		{"tmp bare", "/tmp", `C:\Temp`},
		{"dev null", "/dev/null", "nul"},
		{"dev null rest dropped", "/dev/null/x", "nul"},
		{"etc", "/etc/x", `C:\data\etc\x`},
		{"com", "/com/y", `C:\data\com\y`},
		{"var", "/var/log/z", `C:\data\var\log\z`},
		{"absolute", "/abs/y", `C:\install\abs\y`},
		{"root only", "/", `C:\install\`},
		{"tilde", "~/b", `C:\home\u\b`},
		{"tilde only", "~", `C:\home\u\`},
		{"home var", "$HOME/c", `C:\home\u\c`},
		{"relative", "rel/d", `rel\d`},
		{"dot relative", "./e/f", `.\e\f`},
		{"native backslash", `C:\x\y`, `C:\x\y`},
		{"native drive", "D:foo/bar", "D:foo/bar"},
		{"native unc", `\\server\share\f`, `\\server\share\f`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Translate(tt.posix, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			narrow, err := e.TranslateNarrow([]byte(tt.posix), false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(narrow))

			w, err := textconv.FromString(tt.posix)
			require.NoError(t, err)
			wide, err := e.TranslateWide(w, false)
			require.NoError(t, err)
			assert.Equal(t, tt.want, wide.String())
		})
	}
}

func TestNativeIdempotent(t *testing.T) {
	e := newEngine(t, fixture(t, `C:\install\`), true)

	for _, posix := range []string{"/abs/y", "~/b", "/etc/x", "rel/d"} {
		once, err := e.Translate(posix, false)
		require.NoError(t, err)
		if !strings.ContainsAny(once, `\:`) {
			continue
		}
		twice, err := e.Translate(once, false)
		require.NoError(t, err)
		assert.Equal(t, once, twice, posix)
	}
}

func TestInvalidArgument(t *testing.T) {
	e := newEngine(t, fixture(t, `C:\install\`), true)

	_, err := e.Translate("", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, errno.EINVAL)

	_, err = e.TranslateNarrow(nil, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.TranslateWide(nil, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestOverflowBoundary(t *testing.T) {
	loc := fixture(t, `C:\install\`)
	e := newEngine(t, loc, true)
	room := locations.MaxPath - loc.Root.Len()

	exact := "/" + strings.Repeat("a", room)
	got, err := e.Translate(exact, false)
	require.NoError(t, err)
	assert.Len(t, got, locations.MaxPath)

	narrow, err := e.TranslateNarrow([]byte(exact), false)
	require.NoError(t, err)
	assert.Len(t, narrow, locations.MaxPath)

	over := "/" + strings.Repeat("a", room+1)
	_, err = e.Translate(over, false)
	assert.ErrorIs(t, err, ErrOverflow)
	assert.ErrorIs(t, err, errno.ENAMETOOLONG)

	_, err = e.TranslateNarrow([]byte(over), false)
	assert.ErrorIs(t, err, ErrOverflow)

	native := `C:\` + strings.Repeat("n", locations.MaxPath-2)
	_, err = e.Translate(native, false)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = e.Translate(native[:locations.MaxPath], false)
	assert.NoError(t, err)
}

func TestLossyRootInCodePage(t *testing.T) {
	loc := fixture(t, `C:\日本\`)
	require.True(t, loc.Root.Lossy)

	_, err := newEngine(t, loc, false).TranslateNarrow([]byte("/x"), false)
	assert.ErrorIs(t, err, ErrUnrepresentable)
	assert.ErrorIs(t, err, errno.EILSEQ)

	got, err := newEngine(t, loc, true).TranslateNarrow([]byte("/x"), false)
	require.NoError(t, err)
	assert.Equal(t, `C:\日本\x`, string(got))

	wide, err := newEngine(t, loc, false).Translate("/x", false)
	require.NoError(t, err)
	assert.Equal(t, `C:\日本\x`, wide)

	narrow, err := newEngine(t, loc, false).TranslateNarrow([]byte("~/x"), false)
	require.NoError(t, err, "home is representable")
	assert.Equal(t, `C:\home\u\x`, string(narrow))
}

func TestCodePageNarrow(t *testing.T) {
	e := newEngine(t, fixture(t, `C:\install\`), false)

	got, err := e.TranslateNarrow([]byte("/caf\xe9/x"), false)
	require.NoError(t, err)
	assert.Equal(t, []byte("C:\\install\\caf\xe9\\x"), got)
	assert.Equal(t, textconv.CodePage(1252), e.CodePage())
}

func TestDoubleByteNarrow(t *testing.T) {
	cp := textconv.CodePage(932)
	mk := func(native string) locations.Dir {
		d, err := locations.NewDir(native, '\\', cp)
		require.NoError(t, err)
		return d
	}
	loc := &locations.Locations{
		Root:     mk(`C:\install\`),
		Home:     mk(`C:\ホーム\u\`),
		Data:     mk(`C:\data\`),
		Temp:     mk(`C:\Temp`),
		User:     "u",
		Sep:      '\\',
		CodePage: cp,
	}
	e := newEngine(t, loc, false)

	// "表" is 0x95 0x5C: its trail byte must not read as a separator.
	posix, lossy, err := textconv.Encode("/表/x", cp)
	require.NoError(t, err)
	require.False(t, lossy)

	got, err := e.TranslateNarrow(posix, false)
	require.NoError(t, err)
	want, _, err := textconv.Encode(`C:\install\表\x`, cp)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = e.TranslateNarrow([]byte("~/a"), false)
	require.NoError(t, err)
	want, _, err = textconv.Encode(`C:\ホーム\u\a`, cp)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = e.TranslateNarrow(nil, false)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.TranslateNarrow([]byte("/"+strings.Repeat("x", locations.MaxPath)), false)
	assert.ErrorIs(t, err, ErrOverflow)
}

// hostFixture roots the locations in a real directory using the host
// separator so links can be created and followed.
func hostFixture(t *testing.T) (*locations.Locations, string) {
	t.Helper()
	root := t.TempDir()
	sep := byte(os.PathSeparator)
	return &locations.Locations{
		Root:     dir(t, root, sep),
		Home:     dir(t, root, sep),
		Data:     dir(t, root, sep),
		Temp:     dir(t, os.TempDir(), sep),
		Sep:      sep,
		CodePage: 1252,
	}, root
}

func TestDereference(t *testing.T) {
	loc, root := hostFixture(t)
	target := filepath.Join(root, "target.txt")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	require.NoError(t, shortcut.Create(target, filepath.Join(root, "ln"), 1252))

	m := monitoring.NewMetrics()
	e := New(loc, Options{UTF8Mode: true, Metrics: m})

	got, err := e.Translate("/ln", true)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	got, err = e.Translate("/ln", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "ln.lnk"), got, "link named without its extension")

	got, err = e.Translate("/target.txt", true)
	require.NoError(t, err)
	assert.Equal(t, target, got, "plain file passes through")

	got, err = e.Translate("/new-file", false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "new-file"), got, "missing name falls back to the literal path")

	narrow, err := e.TranslateNarrow([]byte("/ln"), true)
	require.NoError(t, err)
	assert.Equal(t, target, string(narrow))

	s := m.Snapshot()
	assert.Equal(t, int64(5), s.Translations)
	assert.Equal(t, int64(2), s.LinksFollowed)
}

func TestDereferenceLoop(t *testing.T) {
	loc, root := hostFixture(t)
	for i := 0; i <= deref.MaxDepth; i++ {
		target := filepath.Join(root, fmt.Sprintf("l%d", i+1))
		require.NoError(t, shortcut.Create(target, filepath.Join(root, fmt.Sprintf("l%d", i)), 1252))
	}

	m := monitoring.NewMetrics()
	e := New(loc, Options{UTF8Mode: true, Metrics: m})

	_, err := e.Translate("/l0", true)
	assert.ErrorIs(t, err, deref.ErrLoop)
	assert.ErrorIs(t, err, errno.ELOOP)
	assert.Equal(t, map[string]int64{"loop": 1}, m.Snapshot().ErrorsByCause)

	got, err := e.Translate("/l1", true)
	require.NoError(t, err, "ten hops are allowed")
	assert.Equal(t, filepath.Join(root, fmt.Sprintf("l%d", deref.MaxDepth+1)), got)
}

func TestDereferenceUnrepresentableTarget(t *testing.T) {
	loc, root := hostFixture(t)
	target := filepath.Join(root, "日本.txt")
	require.NoError(t, os.WriteFile(target, nil, 0o644))
	require.NoError(t, shortcut.Create(target, filepath.Join(root, "ln"), 1252))

	e := New(loc, Options{UTF8Mode: false})
	_, err := e.TranslateNarrow([]byte("/ln"), true)
	assert.ErrorIs(t, err, ErrUnrepresentable)

	got, err := e.Translate("/ln", true)
	require.NoError(t, err)
	assert.Equal(t, target, got)
}

func TestGlob(t *testing.T) {
	loc, root := hostFixture(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "deep"), 0o755))
	for _, name := range []string{"a.txt", "b.txt", "c.log", filepath.Join("deep", "d.txt")} {
		require.NoError(t, os.WriteFile(filepath.Join(root, "src", name), nil, 0o644))
	}
	e := New(loc, Options{UTF8Mode: true})

	matches, err := e.Glob("/src/*.txt")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "src", "a.txt"),
		filepath.Join(root, "src", "b.txt"),
	}, matches)

	matches, err = e.Glob("/src/**/*.txt")
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "tmp", ClassTemp.String())
	assert.Equal(t, "home_var", ClassHomeVar.String())
	assert.Equal(t, "unknown", Class(99).String())
}
