package remote

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/gokturk078/cektakip/internal/common"
	"github.com/gokturk078/cektakip/internal/dbx"
	"github.com/gokturk078/cektakip/internal/logging"
	"github.com/gokturk078/cektakip/internal/remote/migrations"
)

// PostgresStore keeps the snapshot as one row in a check_snapshots table.
// The revision counter is the version token; a row-locked compare and
// update on the expected revision implements the same optimistic
// concurrency the other backends get from ETags and blob SHAs.
type PostgresStore struct {
	db   *sql.DB
	name string
	log  logging.Logger
}

func NewPostgresStore(ctx context.Context, dsn, name string, log logging.Logger) (*PostgresStore, error) {
	if dsn == "" {
		return nil, common.ErrNoCredential
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return &PostgresStore{db: db, name: name, log: log}, nil
}

func (p *PostgresStore) Fetch(ctx context.Context) (*Document, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT content, revision FROM check_snapshots WHERE name = $1`, p.name)

	var content []byte
	var revision int64
	if err := row.Scan(&content, &revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: snapshot %q does not exist", common.ErrRemote, p.name)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	return &Document{Content: content, Token: strconv.FormatInt(revision, 10)}, nil
}

func (p *PostgresStore) Put(ctx context.Context, content []byte, token string) (string, error) {
	if token == "" {
		return p.insert(ctx, content)
	}

	revision, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return "", fmt.Errorf("%w: bad revision token %q", common.ErrVersionConflict, token)
	}

	var newRevision int64
	err = dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		row := tx.QueryRowContext(ctx,
			`SELECT revision FROM check_snapshots WHERE name = $1 FOR UPDATE`, p.name)

		var current int64
		if err := row.Scan(&current); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: snapshot %q does not exist", common.ErrRemote, p.name)
			}
			return fmt.Errorf("%w: %v", common.ErrRemote, err)
		}
		if current != revision {
			return fmt.Errorf("%w: revision %d is stale, remote is at %d",
				common.ErrVersionConflict, revision, current)
		}

		row = tx.QueryRowContext(ctx, `
			UPDATE check_snapshots
			   SET content = $2, revision = revision + 1, updated_at = now()
			 WHERE name = $1
			RETURNING revision`, p.name, content)
		if err := row.Scan(&newRevision); err != nil {
			return fmt.Errorf("%w: %v", common.ErrRemote, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(newRevision, 10), nil
}

func (p *PostgresStore) insert(ctx context.Context, content []byte) (string, error) {
	row := p.db.QueryRowContext(ctx, `
		INSERT INTO check_snapshots (name, content)
		VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING revision`, p.name, content)

	var revision int64
	if err := row.Scan(&revision); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Row already exists and we hold no token for it.
			return "", fmt.Errorf("%w: snapshot already exists", common.ErrVersionConflict)
		}
		return "", fmt.Errorf("%w: %v", common.ErrRemote, err)
	}

	return strconv.FormatInt(revision, 10), nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
