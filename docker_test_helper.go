package ygggo_dbclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
	"github.com/testcontainers/testcontainers-go/wait"
)

// DockerTestHelper manages a MySQL container backing a Client for tests
type DockerTestHelper struct {
	container testcontainers.Container
	client    *Client
	cfg       Config
}

// DockerTestConfig holds configuration for Docker test containers
type DockerTestConfig struct {
	MySQLVersion string        // MySQL version to use (default: "8.0")
	Database     string        // Database name (default: "testdb")
	Username     string        // Username (default: "testuser")
	Password     string        // Password (default: "testpass")
	Prefix       string        // Table prefix for the client (default: "t_")
	StartTimeout time.Duration // Container start timeout (default: 60s)
}

// DefaultDockerTestConfig returns default configuration for Docker tests
func DefaultDockerTestConfig() DockerTestConfig {
	return DockerTestConfig{
		MySQLVersion: "8.0",
		Database:     "testdb",
		Username:     "testuser",
		Password:     "testpass",
		Prefix:       "t_",
		StartTimeout: 60 * time.Second,
	}
}

// NewDockerTestHelper creates a new Docker test helper with default configuration
func NewDockerTestHelper(ctx context.Context) (*DockerTestHelper, error) {
	return NewDockerTestHelperWithConfig(ctx, DefaultDockerTestConfig())
}

// NewDockerTestHelperWithConfig creates a new Docker test helper with custom configuration
func NewDockerTestHelperWithConfig(ctx context.Context, config DockerTestConfig) (*DockerTestHelper, error) {
	mysqlContainer, err := mysql.Run(ctx,
		"mysql:"+config.MySQLVersion,
		mysql.WithDatabase(config.Database),
		mysql.WithUsername(config.Username),
		mysql.WithPassword(config.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("port: 3306  MySQL Community Server").
				WithOccurrence(1).
				WithStartupTimeout(config.StartTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start MySQL container: %w", err)
	}

	host, err := mysqlContainer.Host(ctx)
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := mysqlContainer.MappedPort(ctx, "3306")
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	portInt, err := strconv.Atoi(port.Port())
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to parse port: %w", err)
	}

	cfg := Config{
		Hostname: host,
		Hostport: portInt,
		Database: config.Database,
		Username: config.Username,
		Password: config.Password,
		Charset:  "utf8mb4",
		Prefix:   config.Prefix,
		Params:   map[string]string{"parseTime": "true", "multiStatements": "true"},
	}

	client, err := New(ctx, cfg)
	if err != nil {
		_ = mysqlContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return &DockerTestHelper{
		container: mysqlContainer,
		client:    client,
		cfg:       cfg,
	}, nil
}

// Client returns the client connected to the container
func (h *DockerTestHelper) Client() *Client { return h.client }

// Config returns the configuration used by the client
func (h *DockerTestHelper) Config() Config { return h.cfg }

// Close releases the client and terminates the container
func (h *DockerTestHelper) Close() error {
	ctx := context.Background()
	if h.client != nil {
		_ = h.client.Close()
	}
	if h.container != nil {
		return h.container.Terminate(ctx)
	}
	return nil
}
