// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package metrics defines the Prometheus collectors of the bench workload.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gaissmai/sortedset"
)

const namespace = "sortedset"

// Metrics of a set under a random workload.
type Metrics struct {
	// Operations by outcome: inserted, replaced, deleted, noop
	Operations *prometheus.CounterVec

	// OperateSeconds is the latency of a single Operate call.
	OperateSeconds prometheus.Histogram

	// Mismatches of the set against the reference.
	Mismatches prometheus.Counter

	Entries    prometheus.Gauge
	Branches   prometheus.Gauge
	Collisions prometheus.Gauge
	MaxDepth   prometheus.Gauge
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "The total number of operations by outcome",
		}, []string{"outcome"}),

		OperateSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operate_duration_seconds",
			Help:      "Latency of a single Operate call",
			Buckets:   prometheus.ExponentialBuckets(1e-7, 4, 10),
		}),

		Mismatches: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reference_mismatches_total",
			Help:      "The total number of results differing from the reference",
		}),

		Entries: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entries",
			Help:      "The number of entries in the set",
		}),
		Branches: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "branches",
			Help:      "The number of regular branches in the trie",
		}),
		Collisions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "collisions",
			Help:      "The number of collision nodes in the trie",
		}),
		MaxDepth: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "max_depth",
			Help:      "The deepest slot holding a leaf",
		}),
	}
}

// ObserveShape sets the shape gauges from st.
func (m *Metrics) ObserveShape(st sortedset.Stats) {
	m.Entries.Set(float64(st.Entries))
	m.Branches.Set(float64(st.Branches))
	m.Collisions.Set(float64(st.Collisions))
	m.MaxDepth.Set(float64(st.MaxDepth))
}
