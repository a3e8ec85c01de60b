package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "certwatch"

// RegisterPgxPoolMetrics registers gauges for the database pool state under
// the certwatch_pgxpool_* names. Call once per process.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	poolGauges := []struct {
		name string
		help string
		read func(*pgxpool.Stat) int32
	}{
		{"acquired_conns", "Connections currently checked out of the pool", (*pgxpool.Stat).AcquiredConns},
		{"idle_conns", "Open connections waiting in the pool", (*pgxpool.Stat).IdleConns},
		{"total_conns", "Open connections, acquired and idle", (*pgxpool.Stat).TotalConns},
		{"max_conns", "Configured pool ceiling", (*pgxpool.Stat).MaxConns},
	}

	for _, g := range poolGauges {
		read := g.read
		prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pgxpool",
			Name:      g.name,
			Help:      g.help,
		}, func() float64 {
			return float64(read(pool.Stat()))
		}))
	}
}
