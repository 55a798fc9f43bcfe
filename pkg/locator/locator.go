// Package locator discovers archive metadata files across pluggable
// storage backends (local filesystem, a SQLite index, or an S3 bucket),
// the way the teacher's pkg/archive package abstracts job storage behind
// an ArchiveBackend interface (pkg/archive/archive.go).
package locator

import (
	"context"
	"fmt"
	"io"

	"github.com/jkter/pcp/internal/config"
	"github.com/jkter/pcp/pkg/pcplog"
)

// Backend discovers and opens archive metadata files. A metadata file's
// name is backend-specific (a relative path for fs, a row key for sqlite,
// an object key for s3); callers treat it as an opaque handle.
type Backend interface {
	// List returns the names of every metadata file the backend knows
	// about, in no particular order.
	List(ctx context.Context) ([]string, error)

	// Open returns a reader for the named metadata file. Callers must
	// Close it.
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

// Open constructs the Backend named by cfg.Kind.
func Open(ctx context.Context, cfg config.LocatorConfig) (Backend, error) {
	switch cfg.Kind {
	case "fs":
		return newFsBackend(cfg)
	case "sqlite":
		return newSqliteBackend(ctx, cfg)
	case "s3":
		return newS3Backend(ctx, cfg)
	default:
		err := fmt.Errorf("locator: unknown backend kind %q", cfg.Kind)
		pcplog.Error(err.Error())
		return nil, err
	}
}
