// Package pgtest starts a throwaway PostgreSQL for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image          = "postgres:15-alpine"
	database       = "blueprintcost_test"
	user           = "blueprintcost"
	password       = "blueprintcost"
	startupTimeout = 30 * time.Second
	readyLog       = "database system is ready to accept connections"
)

// Container is a running database and the DSN to reach it
type Container struct {
	ConnString string
	terminate  func(context.Context) error
}

// Start launches the container. Docker being unavailable is reported as an
// error, never a panic.
func Start(ctx context.Context) (c *Container, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("starting postgres container: %v", r)
		}
	}()

	pg, err := postgres.Run(ctx, image,
		postgres.WithDatabase(database),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			// postgres logs readiness once for init and once for the real start
			wait.ForLog(readyLog).WithOccurrence(2).WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}

	dsn, err := pg.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = pg.Terminate(ctx)
		return nil, fmt.Errorf("reading connection string: %w", err)
	}
	return &Container{ConnString: dsn, terminate: func(ctx context.Context) error { return pg.Terminate(ctx) }}, nil
}

// Stop terminates the container; safe on nil
func (c *Container) Stop(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.terminate(ctx)
}

// Require starts a container scoped to t, skipping the test in short mode or
// when no container runtime is available
func Require(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	c, err := Start(ctx)
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}
	t.Cleanup(func() { _ = c.Stop(ctx) })
	return c.ConnString
}
