package locator

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/jkter/pcp/internal/config"
)

// fsBackend lists and opens metadata files (*.meta) under a root directory
// on the local filesystem, grounded on the teacher's FsArchive
// (pkg/archive/fsBackend.go).
type fsBackend struct {
	root string
}

func newFsBackend(cfg config.LocatorConfig) (*fsBackend, error) {
	root := cfg.Path
	if root == "" {
		root = "./var/archives"
	}
	return &fsBackend{root: root}, nil
}

func (b *fsBackend) List(ctx context.Context) ([]string, error) {
	var names []string
	err := filepath.WalkDir(b.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".meta" {
			return nil
		}
		rel, err := filepath.Rel(b.root, path)
		if err != nil {
			return err
		}
		names = append(names, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (b *fsBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(b.root, name))
}
