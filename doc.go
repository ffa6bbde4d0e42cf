// Package ygggo_dbclient provides a lightweight MySQL database access helper for Go.
//
// # Overview
//
// ygggo_dbclient is a thin convenience layer over database/sql that offers:
//   - A single logical connection per client with a documented ownership model
//   - Prefix-aware generic CRUD operations (insert, batch insert, select, find, update, delete)
//   - A bounded reconnect-and-retry policy on dropped connections
//   - Transaction passthroughs (begin, commit, rollback)
//   - Structured logging and optional OpenTelemetry tracing
//
// # Quick Start
//
// Basic usage example:
//
//	import ggd "github.com/yggai/ygggo_dbclient"
//
//	cfg := ggd.Config{
//		Hostname: "localhost",
//		Hostport: 3306,
//		Username: "user",
//		Password: "password",
//		Database: "mydb",
//		Charset:  "utf8mb4",
//		Prefix:   "app_",
//	}
//
//	ctx := context.Background()
//	client, err := ggd.New(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	id, err := client.Insert(ctx, "users", map[string]any{"name": "Alice", "age": 30})
//
// # Configuration
//
// Configuration can be loaded from a YAML file via LoadConfig. Environment
// variables with the YGGGO_DB_ prefix override file values
// (e.g. YGGGO_DB_HOSTNAME). Dotted paths into the loaded mapping are resolved
// with Config.Resolve ("section.key").
//
// # Raw Fragments
//
// Delete, Select, Find and Update accept a raw WHERE fragment that is
// concatenated into the statement without parameterization. The caller owns
// sanitization of these fragments; only column values passed through maps are
// bound as parameters.
//
// # Concurrency
//
// A Client serializes statement execution on its single connection with an
// internal mutex. It is safe to share one Client between goroutines, but
// statements execute one at a time.
package ygggo_dbclient

// Version returns the current library version.
//
// This version follows semantic versioning (semver) principles.
// During development, it returns "v0.0.0-dev".
func Version() string { return "v0.0.0-dev" }
