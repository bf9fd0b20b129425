package mydb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type ctxTxKey struct{}

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(c context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(c context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(c context.Context, query string, args ...any) *sql.Row
}

// RunInTransaction runs f with a transaction stored in the context. A call made while a
// transaction is already active joins it, so only the outermost call commits.
func RunInTransaction(c context.Context, db *sql.DB, f func(c context.Context) error) error {
	if _, found := txFromContext(c); found {
		return f(c)
	}

	tx, err := db.BeginTx(c, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	err = f(context.WithValue(c, ctxTxKey{}, tx))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			return errors.Join(err, fmt.Errorf("error rolling back transaction: %w", rollbackErr))
		}
		return err
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

// Executor returns the transaction from the context, or db when there is none.
func Executor(c context.Context, db *sql.DB) Querier {
	tx, found := txFromContext(c)
	if found {
		return tx
	}
	return db
}

func txFromContext(c context.Context) (*sql.Tx, bool) {
	tx, ok := c.Value(ctxTxKey{}).(*sql.Tx)
	return tx, ok && tx != nil
}
