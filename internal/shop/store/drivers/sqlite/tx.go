package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/chocomax/shop/internal/shop/store"
)

type txStore struct {
	tx  *sql.Tx
	now func() time.Time
}

func newTx(tx *sql.Tx, now func() time.Time) *txStore {
	return &txStore{tx: tx, now: now}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // caller commits or rolls back; the DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error {
	return nil
}

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{db: t.tx, now: t.now} }
func (t *txStore) Sessions() store.Sessions { return &sessionsRepo{db: t.tx, now: t.now} }
func (t *txStore) Registrations() store.Registrations {
	return &registrationsRepo{db: t.tx, now: t.now}
}
func (t *txStore) Products() store.Products { return &productsRepo{db: t.tx, now: t.now} }

func (t *txStore) ApplyMigrations(ctx context.Context) error { return nil } // applied before any tx
