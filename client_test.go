package ygggo_dbclient

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestNew_IssuesSetNames(t *testing.T) {
	dsn := "sqlmock_" + t.Name()
	db, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	mock.ExpectExec(regexp.QuoteMeta("SET NAMES utf8mb4")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	c, err := New(context.Background(), Config{Driver: "sqlmock", DSN: dsn, Charset: "utf8mb4"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNew_ConnectFailure(t *testing.T) {
	dsn := "sqlmock_" + t.Name()
	db, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing().WillReturnError(errors.New("access denied"))

	_, err = New(context.Background(), Config{Driver: "sqlmock", DSN: dsn})
	require.Error(t, err)
	var ce *ConnectionError
	require.True(t, errors.As(err, &ce))
}

func TestDefault_ReturnsIdenticalInstance(t *testing.T) {
	dsn := "sqlmock_" + t.Name()
	db, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	mock.ExpectPing()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver: sqlmock\ndsn: "+dsn+"\ncharset: \"\"\n"), 0o644))
	t.Setenv("YGGGO_DB_CONFIG", path)

	first, err := Default(context.Background())
	require.NoError(t, err)
	second, err := Default(context.Background())
	require.NoError(t, err)
	require.Same(t, first, second)
}

func TestPing_AfterClose(t *testing.T) {
	dsn := "sqlmock_" + t.Name()
	db, mock, err := sqlmock.NewWithDSN(dsn, sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectPing()
	mock.ExpectClose()

	c, err := New(context.Background(), Config{Driver: "sqlmock", DSN: dsn})
	require.NoError(t, err)

	require.NoError(t, c.Close())
	require.Error(t, c.Ping(context.Background()))
	// Close is idempotent
	require.NoError(t, c.Close())
}
