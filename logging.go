package ygggo_dbclient

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	mysql "github.com/go-sql-driver/mysql"
)

var defaultLogger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// EnableLogging enables or disables structured logging for this client
func (c *Client) EnableLogging(enabled bool) {
	if c == nil {
		return
	}
	c.loggingEnabled = enabled
	if enabled && c.logger == nil {
		c.logger = defaultLogger
	}
}

// SetLogger sets a custom logger for this client
func (c *Client) SetLogger(logger *slog.Logger) {
	if c == nil {
		return
	}
	c.logger = logger
}

// logQuery logs statement execution with structured fields
func (c *Client) logQuery(ctx context.Context, operation, query string, args []any, duration time.Duration, err error) {
	if c == nil || !c.loggingEnabled || c.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("query", query),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}

	// Argument values may be sensitive; log the count only
	if len(args) > 0 {
		attrs = append(attrs, slog.Int("arg_count", len(args)))
	}

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) {
			attrs = append(attrs, slog.Int("error_code", int(mysqlErr.Number)))
		}
		c.logger.LogAttrs(ctx, slog.LevelError, "database query executed", attrs...)
		return
	}
	attrs = append(attrs, slog.String("status", "success"))
	c.logger.LogAttrs(ctx, slog.LevelInfo, "database query executed", attrs...)
}

// logConnection logs connection lifecycle events
func (c *Client) logConnection(ctx context.Context, event string, duration time.Duration, err error) {
	if c == nil || !c.loggingEnabled || c.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("event", event),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		c.logger.LogAttrs(ctx, slog.LevelError, "database connection event", attrs...)
	} else {
		attrs = append(attrs, slog.String("status", "success"))
		c.logger.LogAttrs(ctx, slog.LevelDebug, "database connection event", attrs...)
	}
}

// logTransaction logs transaction events
func (c *Client) logTransaction(ctx context.Context, event string, duration time.Duration, err error) {
	if c == nil || !c.loggingEnabled || c.logger == nil {
		return
	}

	attrs := []slog.Attr{
		slog.String("event", event),
		slog.Float64("duration_ms", float64(duration.Nanoseconds())/1e6),
	}

	if err != nil {
		attrs = append(attrs,
			slog.String("status", "error"),
			slog.String("error", err.Error()),
		)
		c.logger.LogAttrs(ctx, slog.LevelError, "database transaction event", attrs...)
	} else {
		attrs = append(attrs, slog.String("status", "success"))
		c.logger.LogAttrs(ctx, slog.LevelInfo, "database transaction event", attrs...)
	}
}
