package ygggo_dbclient

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// ErrTxOpen is returned by Begin when a transaction is already open.
var ErrTxOpen = errors.New("transaction already open")

// Begin starts a transaction on the connection. Statements issued through the
// client run inside it until Commit or Rollback. Nesting and savepoints are
// not supported; a second Begin before resolution returns ErrTxOpen.
func (c *Client) Begin(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return sql.ErrConnDone
	}
	if c.tx != nil {
		return ErrTxOpen
	}
	start := time.Now()
	tx, err := c.db.BeginTx(ctx, nil)
	c.logTransaction(ctx, "begin", time.Since(start), err)
	if err != nil {
		return &QueryError{Query: "BEGIN", Err: err}
	}
	c.tx = tx
	return nil
}

// Commit commits the open transaction.
func (c *Client) Commit() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx == nil {
		return sql.ErrTxDone
	}
	start := time.Now()
	err := c.tx.Commit()
	c.tx = nil
	c.logTransaction(context.Background(), "commit", time.Since(start), err)
	return err
}

// Rollback aborts the open transaction.
func (c *Client) Rollback() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tx == nil {
		return sql.ErrTxDone
	}
	start := time.Now()
	err := c.tx.Rollback()
	c.tx = nil
	c.logTransaction(context.Background(), "rollback", time.Since(start), err)
	return err
}

// WithinTx runs fn inside a transaction: commit when fn returns nil, rollback
// otherwise. The rollback error, if any, is dropped in favor of fn's error.
func (c *Client) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := c.Begin(ctx); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		_ = c.Rollback()
		return err
	}
	return c.Commit()
}
