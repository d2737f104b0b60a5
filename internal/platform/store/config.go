package store

import (
	"time"

	"snipjar/internal/platform/config"
)

// Config aggregates backend configuration
type Config struct {
	AppName string
	PG      PGConfig
	CH      CHConfig
}

// PGConfig configures Postgres
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int           // default 20
	PingTimeout    time.Duration // default 3s
}

// CHConfig configures ClickHouse
type CHConfig struct {
	Enabled bool
	URL     string

	ConnectRetries int
	PingTimeout    time.Duration
}

// ConfigFromEnv reads SERVICE_PGSQL_* and SERVICE_CLICKHOUSE_*; a backend is enabled by its DBURL
func ConfigFromEnv(app string, c config.Conf) Config {
	pgc := c.Prefix("SERVICE_PGSQL_")
	chc := c.Prefix("SERVICE_CLICKHOUSE_")

	cfg := Config{
		AppName: app,
		PG: PGConfig{
			URL:            pgc.MayString("DBURL", ""),
			MaxConns:       int32(pgc.MayInt("MAX_CONNS", 8)),
			LogSQL:         pgc.MayBool("LOG_SQL", false),
			SlowQueryMs:    pgc.MayInt("SLOW_MS", 250),
			ConnectRetries: pgc.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pgc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
		CH: CHConfig{
			URL:            chc.MayString("DBURL", ""),
			ConnectRetries: chc.MayInt("CONNECT_RETRIES", 10),
			PingTimeout:    chc.MayDuration("PING_TIMEOUT", 3*time.Second),
		},
	}
	cfg.PG.Enabled = cfg.PG.URL != ""
	cfg.CH.Enabled = cfg.CH.URL != ""
	return cfg
}
