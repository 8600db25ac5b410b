package fontsrc

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// Lister enumerates the font names a source can provide.
type Lister interface {
	List(ctx context.Context) ([]string, error)
}

// FSLister lists the *.flf files at the root of a filesystem.
type FSLister struct {
	fsys fs.FS
}

// NewFSLister returns a lister over fsys.
func NewFSLister(fsys fs.FS) *FSLister {
	return &FSLister{fsys: fsys}
}

// List returns font names without their extension, sorted.
func (l *FSLister) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.fsys == nil {
		return nil, nil
	}

	matches, err := fs.Glob(l.fsys, "*"+FontExt)
	if err != nil {
		return nil, fmt.Errorf("listing fonts: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(m, FontExt))
	}
	sort.Strings(names)
	return names, nil
}
