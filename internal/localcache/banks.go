package localcache

import (
	"context"
	"fmt"
	"time"

	"github.com/gokturk078/cektakip/internal/dbx"
	"github.com/gokturk078/cektakip/internal/models"
)

// BankRepository persists user-added bank names. Removal never cascades to
// check records already referencing a name.
type BankRepository struct {
	db dbx.DBTX
}

func NewBankRepository(db dbx.DBTX) *BankRepository {
	return &BankRepository{db: db}
}

func (r *BankRepository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM custom_banks ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to select banks: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		result = append(result, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *BankRepository) Add(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO custom_banks (name, added_at) VALUES (?, ?)
		ON CONFLICT (name) DO NOTHING`,
		name, models.Timestamp(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to insert bank: %w", err)
	}
	return nil
}

// Remove deletes the name from the custom list and reports whether it was
// present.
func (r *BankRepository) Remove(ctx context.Context, name string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM custom_banks WHERE name = ?`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete bank: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return affected > 0, nil
}
