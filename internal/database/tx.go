package database

import (
	"context"
	"database/sql"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// WithTx runs fn inside a transaction on db, committing when fn returns nil
// and rolling back otherwise. reason is only used for logging.
func WithTx(ctx context.Context, db *sqlx.DB, reason string, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "start transaction (%s)", reason)
	}

	var committed bool
	defer func() {
		if committed {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Printf("transaction rollback error: (%s) %v", reason, rbErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit transaction (%s)", reason)
	}
	committed = true
	return nil
}
