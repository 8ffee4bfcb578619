package observability

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/jeremiahbrem/biztime/internal/platform/logger"
)

type Metrics struct {
	apiRequests *CounterVec
	apiLatency  *HistogramVec
	apiInflight *Gauge
	apiReqTotal *Counter
	apiReqError *Counter
	apiReqGood  *Counter
	dbWrites    *CounterVec
	groupedRows *HistogramVec
	dbStats     *GaugeVec

	latencyThreshold float64
	scrapeInterval   time.Duration
}

type MetricsConfig struct {
	Enabled bool
	// LatencyThreshold splits "good" requests from slow ones, in seconds.
	LatencyThreshold float64
	ScrapeInterval   time.Duration
}

var (
	initOnce sync.Once
	instance *Metrics
)

func Current() *Metrics {
	return instance
}

// Init returns nil when metrics are disabled. Every method on a nil *Metrics
// is a no-op.
func Init(log *logger.Logger, cfg MetricsConfig) *Metrics {
	if !cfg.Enabled {
		return nil
	}
	initOnce.Do(func() {
		instance = NewMetrics(cfg)
		if log != nil {
			log.Info("Observability metrics enabled")
		}
	})
	return instance
}

// NewMetrics builds an unregistered collector set.
func NewMetrics(cfg MetricsConfig) *Metrics {
	threshold := cfg.LatencyThreshold
	if threshold <= 0 {
		threshold = 0.5
	}
	interval := cfg.ScrapeInterval
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Metrics{
		apiRequests: NewCounterVec("biztime_api_requests_total", "Total API requests by resource/op/status.", []string{"resource", "op", "status"}),
		apiLatency: NewHistogramVec(
			"biztime_api_request_duration_seconds",
			"API request latency in seconds by resource/op/status.",
			[]string{"resource", "op", "status"},
			[]float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		),
		apiInflight: NewGauge("biztime_api_inflight_requests", "In-flight API requests."),
		apiReqTotal: NewCounter("biztime_api_requests_total_all", "Total API requests (all)."),
		apiReqError: NewCounter("biztime_api_requests_error_total", "Total API requests with 5xx status."),
		apiReqGood:  NewCounter("biztime_api_requests_good_latency_total", "Total API requests under the latency threshold."),
		dbWrites:    NewCounterVec("biztime_db_writes_total", "Committed writes by entity/action.", []string{"entity", "action"}),
		groupedRows: NewHistogramVec(
			"biztime_grouped_rows",
			"Join rows fed to the row grouper per listing.",
			[]string{"listing"},
			[]float64{0, 1, 5, 10, 50, 100, 500, 1000, 5000},
		),
		dbStats:          NewGaugeVec("biztime_db_pool", "database/sql connection pool stats.", []string{"stat"}),
		latencyThreshold: threshold,
		scrapeInterval:   interval,
	}
}

func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           http.HandlerFunc(m.WriteHTTP),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

type promWriter interface {
	WritePrometheus(w io.Writer) error
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	for _, c := range []promWriter{
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.apiReqTotal,
		m.apiReqError,
		m.apiReqGood,
		m.dbWrites,
		m.groupedRows,
		m.dbStats,
	} {
		if err := c.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

// ObserveAPI records one request against resource (companies, invoices,
// industries, ...) and op (list, get, create, update, delete, associate).
func (m *Metrics) ObserveAPI(resource, op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if resource == "" {
		resource = "unmatched"
	}
	if op == "" {
		op = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.Inc(resource, op, status)
	m.apiLatency.Observe(dur.Seconds(), resource, op, status)
	m.apiReqTotal.Inc()
	if isServerErrorStatus(status) {
		m.apiReqError.Inc()
	}
	if dur.Seconds() <= m.latencyThreshold {
		m.apiReqGood.Inc()
	}
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) IncWrite(entity, action string) {
	if m == nil {
		return
	}
	m.dbWrites.Inc(entity, action)
}

func (m *Metrics) ObserveGroupedRows(listing string, rows int) {
	if m == nil {
		return
	}
	m.groupedRows.Observe(float64(rows), listing)
}

// StartDBCollector samples sql.DBStats until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(m.scrapeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := m.CollectDBStats(db); err != nil && log != nil {
					log.Warn("metrics: db stats unavailable", "error", err)
				}
			}
		}
	}()
}

func (m *Metrics) CollectDBStats(db *gorm.DB) error {
	if m == nil || db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	stats := sqlDB.Stats()
	m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
	m.dbStats.Set(float64(stats.InUse), "in_use")
	m.dbStats.Set(float64(stats.Idle), "idle")
	m.dbStats.Set(float64(stats.WaitCount), "wait_count")
	m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
	m.dbStats.Set(float64(stats.MaxOpenConnections), "max_open_connections")
	m.dbStats.Set(float64(stats.MaxIdleClosed), "max_idle_closed")
	m.dbStats.Set(float64(stats.MaxIdleTimeClosed), "max_idle_time_closed")
	m.dbStats.Set(float64(stats.MaxLifetimeClosed), "max_lifetime_closed")
	return nil
}

func isServerErrorStatus(status string) bool {
	status = strings.TrimSpace(status)
	if len(status) < 3 {
		return false
	}
	return status[0] == '5'
}
