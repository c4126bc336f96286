// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package stage

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus instrumentation for the stage controller:
// a per-stage wall-clock duration gauge for MeasureContests, the part of
// §4.7's control loop that dominates a stage's runtime.
type Metrics struct {
	duration *prometheus.GaugeVec
}

// NewMetrics registers the controller's Prometheus collectors with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	duration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "bayesaudit_stage_duration_seconds",
		Help: "Wall-clock time spent measuring contest risks in a stage.",
	}, []string{"stage"})
	if err := reg.Register(duration); err != nil {
		return nil, fmt.Errorf("registering bayesaudit_stage_duration_seconds: %w", err)
	}
	return &Metrics{duration: duration}, nil
}

func (m *Metrics) observe(stageLabel string, seconds float64) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(stageLabel).Set(seconds)
}
