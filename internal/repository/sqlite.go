package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/rs/zerolog"
)

type SQLiteRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewSQLiteRepository(db *sql.DB, logger zerolog.Logger) *SQLiteRepository {
	return &SQLiteRepository{
		db:     db,
		logger: logger,
	}
}

func (r *SQLiteRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// inTx runs fn inside a transaction, committing on success and rolling back
// on error. Multi-statement operations (batch inserts, cascading deletes,
// attendance upserts) must go through here so a failure midway leaves the
// store in its pre-operation state.
func (r *SQLiteRepository) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
		}
		return err
	}

	return tx.Commit()
}

func (r *SQLiteRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
