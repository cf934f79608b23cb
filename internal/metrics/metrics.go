// Copyright (C) NHR@FAU, University Erlangen-Nuremberg.
// All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package metrics implements batch.Metrics against
// github.com/prometheus/client_golang, instrumenting the control-plane
// engine's notices received per kind, pending-set depth, batch commit
// latency, and per-point transform failures. Carried forward from the teacher's
// prometheus/client_golang dependency as part of the ambient observability
// stack. Grounded on the pack's metrics.go pattern (package-level vecs
// registered in init, StartServer over promhttp).
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xapiens/RVPF-sub009/pkg/batch"
	"github.com/xapiens/RVPF-sub009/pkg/log"
)

var (
	noticesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relvald_notices_received_total",
			Help: "Total notices received by the batch engine, by kind.",
		},
		[]string{"kind"},
	)

	pendingDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "relvald_pending_depth",
			Help: "Number of (point, timestamp) entries pending recompute in the current batch.",
		},
	)

	batchCommitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "relvald_batch_commit_seconds",
			Help:    "Time spent committing a drained batch to the store and messaging.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		},
	)

	transformFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relvald_transform_failures_total",
			Help: "Transform evaluation failures, by point name.",
		},
		[]string{"point"},
	)
)

func init() {
	prometheus.MustRegister(noticesReceived)
	prometheus.MustRegister(pendingDepth)
	prometheus.MustRegister(batchCommitSeconds)
	prometheus.MustRegister(transformFailures)
}

// Prometheus is the batch.Metrics implementation registered against the
// package-level collectors above.
type Prometheus struct{}

var _ batch.Metrics = Prometheus{}

func (Prometheus) NoticeReceived(kind batch.NoticeKind) {
	noticesReceived.WithLabelValues(kind.String()).Inc()
}

func (Prometheus) PendingDepth(n int) {
	pendingDepth.Set(float64(n))
}

func (Prometheus) BatchCommitted(d time.Duration) {
	batchCommitSeconds.Observe(d.Seconds())
}

func (Prometheus) TransformFailed(pointName string) {
	transformFailures.WithLabelValues(pointName).Inc()
}

// StartServer exposes the registered collectors on addr's "/metrics"
// endpoint, matching the pack's StartServer(addr) shape.
func StartServer(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	go func() {
		log.Infof("metrics: listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("metrics: server error: %v", err)
		}
	}()
}
