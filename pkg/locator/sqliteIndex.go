package locator

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jkter/pcp/internal/config"
	"github.com/jkter/pcp/pkg/pcplog"
)

// sqliteSchema indexes archive metadata blobs by name, the way the
// teacher's SqliteArchive indexes job blobs (pkg/archive/sqliteBackend.go).
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS archives (
	name TEXT PRIMARY KEY,
	payload BLOB NOT NULL
);
`

// sqliteBackend stores whole metadata files as BLOBs in a SQLite database,
// useful when many small archives would otherwise litter a filesystem.
type sqliteBackend struct {
	db *sql.DB
}

func newSqliteBackend(ctx context.Context, cfg config.LocatorConfig) (*sqliteBackend, error) {
	if cfg.IndexPath == "" {
		return nil, fmt.Errorf("locator: sqlite backend requires index-path")
	}

	db, err := sql.Open("sqlite3", cfg.IndexPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	pcplog.Debugf("locator: opened sqlite index %s", cfg.IndexPath)
	return &sqliteBackend{db: db}, nil
}

func (b *sqliteBackend) List(ctx context.Context) ([]string, error) {
	rows, err := b.db.QueryContext(ctx, `SELECT name FROM archives ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (b *sqliteBackend) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	var payload []byte
	row := b.db.QueryRowContext(ctx, `SELECT payload FROM archives WHERE name = ?`, name)
	if err := row.Scan(&payload); err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(payload)), nil
}

// Put inserts or replaces the metadata file named name, used by tooling
// that imports archives into the index.
func (b *sqliteBackend) Put(ctx context.Context, name string, payload []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO archives(name, payload) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
		name, payload)
	return err
}
