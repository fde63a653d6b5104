package deref

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/posixshim/internal/errno"
	"github.com/GriffinCanCode/posixshim/internal/shortcut"
	"github.com/GriffinCanCode/posixshim/internal/textconv"
)

// MaxDepth is the number of hops Resolve follows before reporting a loop.
const MaxDepth = 10

var (
	ErrNotLink      = fmt.Errorf("not a link: %w", errno.EINVAL)
	ErrLoop         = fmt.Errorf("link chain exceeds %d hops: %w", MaxDepth, errno.ELOOP)
	ErrAccessDenied = fmt.Errorf("link not readable: %w", errno.EACCES)
	ErrStale        = fmt.Errorf("link target unavailable: %w", errno.ESTALE)
	ErrInvalid      = fmt.Errorf("corrupt link: %w", errno.EIO)
)

// Resolver dereferences shell links.
type Resolver struct {
	fs  FS
	cp  textconv.CodePage
	log *zap.Logger
}

// New returns a Resolver reading links through fsys. Narrow strings inside
// links are decoded with cp. A nil logger discards output.
func New(fsys FS, cp textconv.CodePage, logger *zap.Logger) *Resolver {
	if fsys == nil {
		fsys = OSFS{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{fs: fsys, cp: cp, log: logger}
}

// Candidate returns the name under which path exists: path itself, or path
// with the link extension when only that form exists. Errors other than
// not-exist on the literal form are returned as-is.
func (r *Resolver) Candidate(path string) (string, fs.FileInfo, error) {
	info, err := r.fs.Stat(path)
	if err == nil {
		return path, info, nil
	}
	if !errors.Is(err, fs.ErrNotExist) || shortcut.HasExt(path) {
		return "", nil, err
	}
	info, lnkErr := r.fs.Stat(path + shortcut.Ext)
	if lnkErr != nil {
		if errors.Is(lnkErr, fs.ErrNotExist) {
			return "", nil, err
		}
		return "", nil, lnkErr
	}
	return path + shortcut.Ext, info, nil
}

// ReadLink performs one dereference step and returns the target of the
// link at path. Relative targets are resolved against the link's directory.
func (r *Resolver) ReadLink(path string) (string, error) {
	if path == "" {
		return "", ErrNotLink
	}

	name, info, err := r.Candidate(path)
	if err != nil {
		return "", classify(err)
	}
	if !info.Mode().IsRegular() {
		return "", ErrNotLink
	}

	f, err := r.fs.Open(name)
	if err != nil {
		return "", classify(err)
	}
	defer f.Close()

	head := make([]byte, shortcut.HeaderSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", classify(err)
	}
	head = head[:n]
	if !shortcut.HasMagic(head) {
		return "", ErrNotLink
	}
	if !shortcut.IsShellLink(head) {
		return "", fmt.Errorf("%s: %w", name, ErrInvalid)
	}

	link, err := shortcut.Decode(io.MultiReader(bytes.NewReader(head), f), r.cp)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", name, ErrInvalid, err)
	}
	if link.Network {
		return "", fmt.Errorf("%s -> %s: %w", name, link.Target, ErrStale)
	}

	target := link.Target
	if link.Relative {
		target = filepath.Join(filepath.Dir(name), target)
	}
	return target, nil
}

// Resolve follows the chain starting at path and returns the first path
// that is not a link.
func (r *Resolver) Resolve(path string) (string, error) {
	resolved, _, err := r.ResolveDepth(path)
	return resolved, err
}

// ResolveDepth is Resolve that also reports the number of hops taken.
func (r *Resolver) ResolveDepth(path string) (string, int, error) {
	cur := path
	for depth := 0; ; depth++ {
		next, err := r.ReadLink(cur)
		switch {
		case errors.Is(err, ErrNotLink), errors.Is(err, fs.ErrNotExist):
			return cur, depth, nil
		case err != nil:
			return "", depth, err
		}
		if depth == MaxDepth {
			return "", depth, fmt.Errorf("%s: %w", path, ErrLoop)
		}
		r.log.Debug("link followed", zap.String("link", cur), zap.String("target", next), zap.Int("depth", depth+1))
		cur = next
	}
}

func classify(err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}
	return err
}
