package modkit

import (
	"snipjar/internal/platform/config"
	"snipjar/internal/platform/logger"
	"snipjar/internal/platform/store"
)

// Deps holds the core dependencies passed to modules
// PG and CH are nil when the backend is not configured; modules must cope with that
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  store.TxRunner
	CH  store.Clickhouse
}

// DepsFrom builds Deps from an opened store; a nil store yields no backends
func DepsFrom(cfg config.Conf, st *store.Store, log logger.Logger) Deps {
	d := Deps{Log: log, Cfg: cfg}
	if st != nil {
		d.PG, d.CH = st.PG, st.CH
	}
	return d
}

// Logger returns a child logger tagged with the module name
func (d Deps) Logger(module string) *logger.Logger {
	l := d.Log.With().Str("module", module).Logger()
	return &l
}

// HasPG reports whether Postgres is configured
func (d Deps) HasPG() bool { return d.PG != nil }

// HasCH reports whether ClickHouse is configured
func (d Deps) HasCH() bool { return d.CH != nil }
