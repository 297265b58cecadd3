// Package metrics exposes engine and evaluation metrics in the Prometheus
// format.
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/limbcalc/internal/logging"
)

const namespace = "limbcalc"

// Metrics owns a private registry so several instances can coexist in one
// process (tests, REPL sessions).
type Metrics struct {
	registry   *prometheus.Registry
	paths      *prometheus.CounterVec
	durations  *prometheus.HistogramVec
	limbs      *prometheus.HistogramVec
	mismatches *prometheus.CounterVec
	handler    http.Handler
}

// New creates the collectors and registers them together with the Go
// runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		paths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_paths_total",
			Help:      "Algorithm paths taken by engine operations.",
		}, []string{"op", "path"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall time of evaluated operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"op"}),
		limbs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operand_limbs",
			Help:      "Length in limbs of the longer operand.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"op"}),
		mismatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verify_mismatches_total",
			Help:      "Cross-check disagreements per engine.",
		}, []string{"engine"}),
	}
	mc := NewMemoryCollector()
	heap := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "heap_alloc_bytes",
		Help:      "Heap bytes in use at scrape time.",
	}, func() float64 { return float64(mc.Snapshot().HeapAlloc) })

	m.registry.MustRegister(
		m.paths, m.durations, m.limbs, m.mismatches, heap,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// RecordPath implements nat.Recorder.
func (m *Metrics) RecordPath(op, path string) {
	m.paths.WithLabelValues(op, path).Inc()
}

// ObserveOperation records the duration and operand size of one evaluation.
func (m *Metrics) ObserveOperation(op string, limbs int, d time.Duration) {
	m.durations.WithLabelValues(op).Observe(d.Seconds())
	m.limbs.WithLabelValues(op).Observe(float64(limbs))
}

// RecordMismatch counts a cross-check disagreement of the named engine.
func (m *Metrics) RecordMismatch(engine string) {
	m.mismatches.WithLabelValues(engine).Inc()
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WritePrometheus serves the metrics in the Prometheus text format. Only GET
// and HEAD are allowed.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	m.handler.ServeHTTP(w, r)
}

// Serve exposes /metrics on addr until ctx is done, then shuts the server
// down gracefully.
func (m *Metrics) Serve(ctx context.Context, addr string, log logging.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return m.serve(ctx, ln, log)
}

func (m *Metrics) serve(ctx context.Context, ln net.Listener, log logging.Logger) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", m.WritePrometheus)
	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("metrics server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn("metrics server shutdown", logging.Err(err))
			return err
		}
		return nil
	}
}
