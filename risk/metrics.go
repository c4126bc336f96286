// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package risk

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// averager tracks a running average, adapted from the teacher's
// utils/metric.Averager, used here to track trials-per-second across
// estimator calls within a stage.
type averager struct {
	mu    sync.Mutex
	sum   float64
	count int64
}

func (a *averager) Observe(v float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sum += v
	a.count++
}

func (a *averager) Read() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count == 0 {
		return 0
	}
	return a.sum / float64(a.count)
}

// Metrics holds the Prometheus instrumentation for the estimator:
// per-contest risk gauge and a throughput averager exposed as a gauge.
type Metrics struct {
	risk       *prometheus.GaugeVec
	trialsPerS prometheus.Gauge
	throughput averager
}

// NewMetrics registers the estimator's Prometheus collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	risk := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bayesaudit_contest_risk",
		Help: "Most recently computed Bayesian risk per contest.",
	}, []string{"cid"})
	if err := reg.Register(risk); err != nil {
		return nil, fmt.Errorf("registering bayesaudit_contest_risk: %w", err)
	}

	trialsPerS := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bayesaudit_estimator_trials_per_second",
		Help: "Average Monte-Carlo trial throughput across estimator calls.",
	})
	if err := reg.Register(trialsPerS); err != nil {
		return nil, fmt.Errorf("registering bayesaudit_estimator_trials_per_second: %w", err)
	}

	return &Metrics{risk: risk, trialsPerS: trialsPerS}, nil
}

func (m *Metrics) observe(cid string, r float64, trialsPerSecond float64) {
	if m == nil {
		return
	}
	m.risk.WithLabelValues(cid).Set(r)
	m.throughput.Observe(trialsPerSecond)
	m.trialsPerS.Set(m.throughput.Read())
}
