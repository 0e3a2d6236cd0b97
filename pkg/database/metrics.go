package database

import (
	"database/sql"

	"github.com/prometheus/client_golang/prometheus"
)

// DBStatsCollector implements prometheus.Collector for sql.DB connection metrics.
type DBStatsCollector struct {
	db      *sql.DB
	service string

	openConns     *prometheus.Desc
	inUseConns    *prometheus.Desc
	idleConns     *prometheus.Desc
	maxOpenConns  *prometheus.Desc
	waitCount     *prometheus.Desc
	waitDuration  *prometheus.Desc
	maxIdleClosed *prometheus.Desc
	maxLifeClosed *prometheus.Desc
}

// NewDBStatsCollector creates a Prometheus collector that exports database/sql
// connection pool statistics as metrics.
func NewDBStatsCollector(db *sql.DB, service string) *DBStatsCollector {
	labels := []string{"service"}
	return &DBStatsCollector{
		db:      db,
		service: service,
		openConns: prometheus.NewDesc(
			"db_open_connections",
			"Number of established connections both in use and idle",
			labels, nil,
		),
		inUseConns: prometheus.NewDesc(
			"db_in_use_connections",
			"Number of connections currently in use",
			labels, nil,
		),
		idleConns: prometheus.NewDesc(
			"db_idle_connections",
			"Number of idle connections",
			labels, nil,
		),
		maxOpenConns: prometheus.NewDesc(
			"db_max_open_connections",
			"Maximum number of open connections allowed",
			labels, nil,
		),
		waitCount: prometheus.NewDesc(
			"db_wait_count_total",
			"Total number of connections waited for",
			labels, nil,
		),
		waitDuration: prometheus.NewDesc(
			"db_wait_duration_seconds_total",
			"Total time blocked waiting for a new connection",
			labels, nil,
		),
		maxIdleClosed: prometheus.NewDesc(
			"db_max_idle_closed_total",
			"Total number of connections closed due to SetMaxIdleConns",
			labels, nil,
		),
		maxLifeClosed: prometheus.NewDesc(
			"db_max_lifetime_closed_total",
			"Total number of connections closed due to SetConnMaxLifetime",
			labels, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *DBStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.openConns
	ch <- c.inUseConns
	ch <- c.idleConns
	ch <- c.maxOpenConns
	ch <- c.waitCount
	ch <- c.waitDuration
	ch <- c.maxIdleClosed
	ch <- c.maxLifeClosed
}

// Collect implements prometheus.Collector.
func (c *DBStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.db.Stats()

	ch <- prometheus.MustNewConstMetric(c.openConns, prometheus.GaugeValue, float64(stats.OpenConnections), c.service)
	ch <- prometheus.MustNewConstMetric(c.inUseConns, prometheus.GaugeValue, float64(stats.InUse), c.service)
	ch <- prometheus.MustNewConstMetric(c.idleConns, prometheus.GaugeValue, float64(stats.Idle), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxOpenConns, prometheus.GaugeValue, float64(stats.MaxOpenConnections), c.service)
	ch <- prometheus.MustNewConstMetric(c.waitCount, prometheus.CounterValue, float64(stats.WaitCount), c.service)
	ch <- prometheus.MustNewConstMetric(c.waitDuration, prometheus.CounterValue, stats.WaitDuration.Seconds(), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxIdleClosed, prometheus.CounterValue, float64(stats.MaxIdleClosed), c.service)
	ch <- prometheus.MustNewConstMetric(c.maxLifeClosed, prometheus.CounterValue, float64(stats.MaxLifetimeClosed), c.service)
}

// RegisterDBMetrics registers the sql.DB stats collector with the default
// Prometheus registry. Registration errors (e.g. duplicate registration in
// tests) are ignored.
func RegisterDBMetrics(db *sql.DB, service string) {
	_ = prometheus.Register(NewDBStatsCollector(db, service))
}
