package localcache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gokturk078/cektakip/internal/dbx"
	"github.com/gokturk078/cektakip/internal/models"
)

// snapshotName keys the single cached snapshot row.
const snapshotName = "checks"

// SnapshotRepository stores the last snapshot known to be durable so loads
// can degrade gracefully when the remote store is unreachable.
type SnapshotRepository struct {
	db dbx.DBTX
}

func NewSnapshotRepository(db dbx.DBTX) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Load returns the cached snapshot, or an error if none has been stored.
func (r *SnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT content FROM snapshots WHERE name = ?`, snapshotName)

	var content []byte
	if err := row.Scan(&content); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no cached snapshot")
		}
		return nil, fmt.Errorf("failed to read cached snapshot: %w", err)
	}

	return models.ParseSnapshot(content)
}

// Save replaces the cached snapshot.
func (r *SnapshotRepository) Save(ctx context.Context, snap models.Snapshot) error {
	content, err := snap.Encode()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, content, saved_at) VALUES (?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET content = excluded.content, saved_at = excluded.saved_at`,
		snapshotName, content, models.Timestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to cache snapshot: %w", err)
	}

	return nil
}
