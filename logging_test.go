package ygggo_dbclient

import (
	"bytes"
	"context"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	mysql "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

var errTableMissing = &mysql.MySQLError{Number: 1146, Message: "Table 'p_users' doesn't exist"}

func TestLogging_QueryExecuted(t *testing.T) {
	c, mock := newMockClient(t, "p_")

	var buf bytes.Buffer
	c.SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	c.EnableLogging(true)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM p_users WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := c.Delete(context.Background(), "users", "id = 1")
	require.NoError(t, err)

	out := buf.String()
	require.True(t, strings.Contains(out, "database query executed"), "log output: %s", out)
	require.True(t, strings.Contains(out, "DELETE FROM p_users WHERE id = 1"), "log output: %s", out)
	require.True(t, strings.Contains(out, `"status":"success"`), "log output: %s", out)
}

func TestLogging_QueryError(t *testing.T) {
	c, mock := newMockClient(t, "p_")

	var buf bytes.Buffer
	c.SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))
	c.EnableLogging(true)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM p_users WHERE id = 1")).
		WillReturnError(errTableMissing)

	_, err := c.Delete(context.Background(), "users", "id = 1")
	require.Error(t, err)

	out := buf.String()
	require.True(t, strings.Contains(out, `"status":"error"`), "log output: %s", out)
	require.True(t, strings.Contains(out, "error_code"), "log output: %s", out)
}

func TestLogging_DisabledByDefault(t *testing.T) {
	c, mock := newMockClient(t, "p_")

	var buf bytes.Buffer
	c.SetLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM p_users WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := c.Delete(context.Background(), "users", "id = 1")
	require.NoError(t, err)
	require.Empty(t, buf.String())
}
