package postgres

import (
	"context"
	"database/sql"

	"github.com/chocomax/shop/internal/shop/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }
func (t *txStore) Close() error    { return nil }

func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Accounts() store.Accounts           { return &accountsRepo{db: t.tx} }
func (t *txStore) Sessions() store.Sessions           { return &sessionsRepo{db: t.tx} }
func (t *txStore) Registrations() store.Registrations { return &registrationsRepo{db: t.tx} }
func (t *txStore) Products() store.Products           { return &productsRepo{db: t.tx} }

func (t *txStore) ApplyMigrations(ctx context.Context) error { return nil }
