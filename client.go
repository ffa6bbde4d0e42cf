package ygggo_dbclient

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"sync"
	"time"
)

// DefaultConfigPath is the configuration file used by Default when the
// YGGGO_DB_CONFIG environment variable is not set.
const DefaultConfigPath = "config.yaml"

// Client owns one logical database connection and provides prefix-aware CRUD
// operations over it. A Client must not be copied after first use.
//
// All statement execution is serialized by an internal mutex, so a Client may
// be shared between goroutines at the cost of one statement at a time.
type Client struct {
	cfg Config

	mu sync.Mutex
	db *sql.DB
	tx *sql.Tx

	logger           *slog.Logger
	loggingEnabled   bool
	telemetryEnabled bool
}

// New creates a Client and connects eagerly. A failed connection attempt
// returns a *ConnectionError; no partially-usable client is ever returned.
func New(ctx context.Context, cfg Config) (*Client, error) {
	c := &Client{
		cfg:              cfg,
		loggingEnabled:   cfg.Logging,
		telemetryEnabled: cfg.Telemetry,
	}
	if c.loggingEnabled {
		c.logger = defaultLogger
	}
	if err := c.connect(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

var (
	defaultOnce   sync.Once
	defaultClient *Client
	defaultErr    error
)

// Default returns the process-wide client, creating it on first call from the
// configuration file named by YGGGO_DB_CONFIG (or DefaultConfigPath). The
// result is cached: every later call returns the identical client, or the
// identical construction error if the first attempt failed.
func Default(ctx context.Context) (*Client, error) {
	defaultOnce.Do(func() {
		cfg, err := loadConfigOnce(defaultConfigPath())
		if err != nil {
			defaultErr = err
			return
		}
		defaultClient, defaultErr = New(ctx, *cfg)
	})
	return defaultClient, defaultErr
}

func defaultConfigPath() string {
	if p := os.Getenv("YGGGO_DB_CONFIG"); p != "" {
		return p
	}
	return DefaultConfigPath
}

// connect opens the handle described by the resolved configuration and issues
// SET NAMES for the configured charset. It does not retry.
func (c *Client) connect(ctx context.Context) error {
	driverName := c.cfg.Driver
	if driverName == "" {
		driverName = "mysql"
	}
	dsn := dsnFromConfig(c.cfg)

	start := time.Now()
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		c.logConnection(ctx, "open", time.Since(start), err)
		return &ConnectionError{Addr: c.addr(), Err: err}
	}
	// One live handle per client: the pool below never grows past a single
	// connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		c.logConnection(ctx, "ping", time.Since(start), err)
		return &ConnectionError{Addr: c.addr(), Err: err}
	}
	if c.cfg.Charset != "" {
		if _, err := db.ExecContext(ctx, "SET NAMES "+c.cfg.Charset); err != nil {
			_ = db.Close()
			c.logConnection(ctx, "set_names", time.Since(start), err)
			return &ConnectionError{Addr: c.addr(), Err: err}
		}
	}
	c.db = db
	c.logConnection(ctx, "connect", time.Since(start), nil)
	return nil
}

// reconnect tears down the current handle and connects again with the same
// resolved configuration. Called only from the retry path, under c.mu.
func (c *Client) reconnect(ctx context.Context) error {
	if c.db != nil {
		_ = c.db.Close()
		c.db = nil
	}
	return c.connect(ctx)
}

func (c *Client) addr() string {
	if c.cfg.DSN != "" {
		return c.cfg.DSN
	}
	return dsnFromConfig(Config{Hostname: c.cfg.Hostname, Hostport: c.cfg.Hostport, Database: c.cfg.Database})
}

// Ping verifies the connection is alive.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return sql.ErrConnDone
	}
	return c.db.PingContext(ctx)
}

// Close releases the connection handle.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}
