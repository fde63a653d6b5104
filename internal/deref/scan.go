package deref

import (
	"context"
	"io/fs"
	"sort"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/GriffinCanCode/posixshim/internal/shortcut"
)

// Entry is a link found by Scan.
type Entry struct {
	Path   string
	Target string
	Err    error
}

// Scan walks root and reads every file carrying the link extension. Links
// that fail to read are reported with Err set rather than aborting the walk.
// Entries are sorted by path.
func (r *Resolver) Scan(ctx context.Context, root string) ([]Entry, error) {
	var (
		mu      sync.Mutex
		entries []Entry
	)
	conf := fastwalk.Config{Follow: false}

	err := fastwalk.Walk(&conf, root, func(p string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() || !shortcut.HasExt(p) {
			return nil
		}

		target, err := r.ReadLink(p)
		mu.Lock()
		entries = append(entries, Entry{Path: p, Target: target, Err: err})
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}
