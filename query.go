package ygggo_dbclient

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// retryPolicy returns the bounded policy for the dropped-connection path:
// one reconnect, one immediate re-issue of the identical statement.
func retryPolicy(ctx context.Context) backoff.BackOffContext {
	return backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(0), 1), ctx)
}

// exec runs a mutating statement. A dropped connection is recovered by one
// reconnect and one retry; any other failure wraps into *QueryError.
func (c *Client) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, &QueryError{Query: query, Err: sql.ErrConnDone}
	}

	// Inside a transaction a reconnect would silently lose the transaction
	// state, so the dropped-connection path is not taken.
	if c.tx != nil {
		start := time.Now()
		spanCtx, span := c.startSpan(ctx, "exec", query)
		res, err := c.tx.ExecContext(spanCtx, query, args...)
		c.finishSpan(span, err)
		c.logQuery(ctx, "exec", query, args, time.Since(start), err)
		if err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}
		return res, nil
	}

	var res sql.Result
	var needReconnect bool
	op := func() error {
		if needReconnect {
			if rerr := c.reconnect(ctx); rerr != nil {
				return backoff.Permanent(rerr)
			}
			needReconnect = false
		}
		start := time.Now()
		spanCtx, span := c.startSpan(ctx, "exec", query)
		r, err := c.db.ExecContext(spanCtx, query, args...)
		c.finishSpan(span, err)
		c.logQuery(ctx, "exec", query, args, time.Since(start), err)
		if err == nil {
			res = r
			return nil
		}
		if Classify(err) != ErrClassDroppedConn {
			return backoff.Permanent(&QueryError{Query: query, Err: err})
		}
		needReconnect = true
		return err
	}
	if err := backoff.Retry(op, retryPolicy(ctx)); err != nil {
		return nil, wrapRetryErr(query, err)
	}
	return res, nil
}

// query runs a reading statement with the same retry discipline as exec.
func (c *Client) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil, &QueryError{Query: query, Err: sql.ErrConnDone}
	}

	if c.tx != nil {
		start := time.Now()
		spanCtx, span := c.startSpan(ctx, "query", query)
		rs, err := c.tx.QueryContext(spanCtx, query, args...)
		c.finishSpan(span, err)
		c.logQuery(ctx, "query", query, args, time.Since(start), err)
		if err != nil {
			return nil, &QueryError{Query: query, Err: err}
		}
		return rs, nil
	}

	var rows *sql.Rows
	var needReconnect bool
	op := func() error {
		if needReconnect {
			if rerr := c.reconnect(ctx); rerr != nil {
				return backoff.Permanent(rerr)
			}
			needReconnect = false
		}
		start := time.Now()
		spanCtx, span := c.startSpan(ctx, "query", query)
		rs, err := c.db.QueryContext(spanCtx, query, args...)
		c.finishSpan(span, err)
		c.logQuery(ctx, "query", query, args, time.Since(start), err)
		if err == nil {
			rows = rs
			return nil
		}
		if Classify(err) != ErrClassDroppedConn {
			return backoff.Permanent(&QueryError{Query: query, Err: err})
		}
		needReconnect = true
		return err
	}
	if err := backoff.Retry(op, retryPolicy(ctx)); err != nil {
		return nil, wrapRetryErr(query, err)
	}
	return rows, nil
}

// wrapRetryErr normalizes the error surfaced by the retry loop: typed errors
// pass through, a still-dropped connection after the retry budget wraps into
// *QueryError.
func wrapRetryErr(query string, err error) error {
	var qe *QueryError
	if errors.As(err, &qe) {
		return err
	}
	var ce *ConnectionError
	if errors.As(err, &ce) {
		return err
	}
	return &QueryError{Query: query, Err: err}
}
