// Package localcache is the sqlite-backed durable state on this machine:
// the last known good snapshot (the synchronizer's fallback read path) and
// the user-added custom bank list, which is persisted independently of the
// records.
package localcache

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/gokturk078/cektakip/internal/localcache/migrations"
)

// Repositories bundles the repositories living in the cache database.
type Repositories struct {
	Snapshots *SnapshotRepository
	Banks     *BankRepository

	db *sql.DB
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the cache database at dsn and
// applies the embedded migrations.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}

	return &Repositories{
		Snapshots: NewSnapshotRepository(db),
		Banks:     NewBankRepository(db),
		db:        db,
	}, nil
}

func (r *Repositories) Close() error {
	return r.db.Close()
}
