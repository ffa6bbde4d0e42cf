package ygggo_dbclient

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Row is a single result row as column-name-to-value pairs.
type Row map[string]any

// DuplicatePolicy selects how InsertBatch treats duplicate keys.
type DuplicatePolicy int

const (
	// DuplicateError is a plain insert; a duplicate key raises the normal error.
	DuplicateError DuplicatePolicy = iota
	// DuplicateIgnore skips conflicting rows (INSERT IGNORE).
	DuplicateIgnore
	// DuplicateUpdate updates conflicting rows (ON DUPLICATE KEY UPDATE).
	DuplicateUpdate
)

// table prepends the configured prefix to a logical table name.
func (c *Client) table(name string) string {
	return c.cfg.Prefix + name
}

// sortedColumns returns the column names of data in sorted order.
// Go maps iterate in random order; sorting fixes the column list and the bind
// order to the same deterministic sequence.
func sortedColumns(data map[string]any) []string {
	cols := make([]string, 0, len(data))
	for col := range data {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// placeholders returns "?,?,..." with n placeholders.
func placeholders(n int) string {
	return strings.TrimRight(strings.Repeat("?,", n), ",")
}

// Insert inserts one row and returns the auto-increment id as a string.
// Callers needing a numeric id must parse it.
func (c *Client) Insert(ctx context.Context, table string, data map[string]any) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("insert into %s: no data", table)
	}
	cols := sortedColumns(data)
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(c.table(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ","))
	b.WriteString(") VALUES (")
	b.WriteString(placeholders(len(cols)))
	b.WriteString(")")
	args := make([]any, 0, len(cols))
	for _, col := range cols {
		args = append(args, data[col])
	}
	res, err := c.exec(ctx, b.String(), args...)
	if err != nil {
		return "", err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(id, 10), nil
}

// InsertBatch inserts rows with a single multi-row INSERT. The column set is
// taken from the first row; rows are assumed homogeneous. Returns the number
// of rows the driver reports as affected — under DuplicateUpdate an updated
// duplicate is counted as affected, not inserted.
func (c *Client) InsertBatch(ctx context.Context, table string, rows []map[string]any, policy DuplicatePolicy) (int64, error) {
	if len(rows) == 0 {
		return 0, fmt.Errorf("insert into %s: no rows", table)
	}
	cols := sortedColumns(rows[0])
	placeOne := "(" + placeholders(len(cols)) + ")"
	var b strings.Builder
	b.Grow(64 + len(rows)*len(placeOne))
	if policy == DuplicateIgnore {
		b.WriteString("INSERT IGNORE INTO ")
	} else {
		b.WriteString("INSERT INTO ")
	}
	b.WriteString(c.table(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(cols, ","))
	b.WriteString(") VALUES ")
	args := make([]any, 0, len(rows)*len(cols))
	for i, row := range rows {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(placeOne)
		for _, col := range cols {
			args = append(args, row[col])
		}
	}
	if policy == DuplicateUpdate {
		b.WriteString(" ON DUPLICATE KEY UPDATE ")
		for i, col := range cols {
			if i > 0 {
				b.WriteString(",")
			}
			b.WriteString(col)
			b.WriteString("=VALUES(")
			b.WriteString(col)
			b.WriteString(")")
		}
	}
	res, err := c.exec(ctx, b.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Delete removes rows matching the raw where fragment and returns the
// affected-row count. The fragment is concatenated after WHERE without
// parameterization; the caller owns its sanitization.
func (c *Client) Delete(ctx context.Context, table, where string) (int64, error) {
	res, err := c.exec(ctx, "DELETE FROM "+c.table(table)+" WHERE "+where)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Select returns all rows matching the raw where fragment. fields is inserted
// verbatim ("*" when empty); ORDER BY is appended only when order is
// non-empty, LIMIT only when limit > 0. Same raw-fragment caveat as Delete.
func (c *Client) Select(ctx context.Context, table, where, fields string, limit int, order string) ([]Row, error) {
	rs, err := c.query(ctx, selectStmt(c.table(table), where, fields, limit, order))
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	return scanRows(rs)
}

// Find is Select with a forced LIMIT 1. It returns nil when nothing matches.
func (c *Client) Find(ctx context.Context, table, where, fields string) (Row, error) {
	rows, err := c.Select(ctx, table, where, fields, 1, "")
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func selectStmt(table, where, fields string, limit int, order string) string {
	if fields == "" {
		fields = "*"
	}
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(fields)
	b.WriteString(" FROM ")
	b.WriteString(table)
	b.WriteString(" WHERE ")
	b.WriteString(where)
	if order != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(order)
	}
	if limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(limit))
	}
	return b.String()
}

// Update sets the given columns on rows matching the raw where fragment and
// returns the affected-row count. Values are bound positionally; the where
// fragment is not.
func (c *Client) Update(ctx context.Context, table string, data map[string]any, where string) (int64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("update %s: no data", table)
	}
	cols := sortedColumns(data)
	var b strings.Builder
	b.WriteString("UPDATE ")
	b.WriteString(c.table(table))
	b.WriteString(" SET ")
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(col)
		b.WriteString("=?")
		args = append(args, data[col])
	}
	b.WriteString(" WHERE ")
	b.WriteString(where)
	res, err := c.exec(ctx, b.String(), args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Exec executes arbitrary caller-constructed SQL directly: no parameters, no
// prefixing. Escape hatch for anything the structured methods don't cover.
func (c *Client) Exec(ctx context.Context, sqlText string) (int64, error) {
	res, err := c.exec(ctx, sqlText)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
