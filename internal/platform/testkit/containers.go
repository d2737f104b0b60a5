//go:build integration_pg || integration_ch

package testkit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startContainer runs req and terminates it on cleanup
func startContainer(t *testing.T, req tc.ContainerRequest) tc.Container {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	if err != nil {
		t.Fatalf("start %s: %v", req.Image, err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })
	return c
}

func endpoint(t *testing.T, c tc.Container, port string) string {
	t.Helper()
	ctx := context.Background()
	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, nat.Port(port))
	if err != nil {
		t.Fatalf("mapped port: %v", err)
	}
	return fmt.Sprintf("%s:%s", host, mapped.Port())
}

// StartPostgres boots postgres:16-alpine and returns its DSN
func StartPostgres(t *testing.T) string {
	t.Helper()
	c := startContainer(t, tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "snipjar",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(2 * time.Minute),
	})
	return fmt.Sprintf("postgres://postgres:postgres@%s/snipjar?sslmode=disable", endpoint(t, c, "5432/tcp"))
}

// StartClickhouse boots clickhouse-server and returns a native protocol DSN
func StartClickhouse(t *testing.T) string {
	t.Helper()
	c := startContainer(t, tc.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.8-alpine",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"CLICKHOUSE_USER":     "snipjar",
			"CLICKHOUSE_PASSWORD": "snipjar",
			"CLICKHOUSE_DB":       "snipjar",
		},
		WaitingFor: wait.ForListeningPort("9000/tcp").WithStartupTimeout(2 * time.Minute),
	})
	return fmt.Sprintf("clickhouse://snipjar:snipjar@%s/snipjar", endpoint(t, c, "9000/tcp"))
}
