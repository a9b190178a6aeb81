// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package recorder

import (
	m "github.com/Pich78/percussion-studio-sub002/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	CallCount             prometheus.Counter
	AssertionFailureCount prometheus.Counter
	ResetCount            prometheus.Counter
}

func newMetrics() metrics {
	subsystem := "recorder"

	return metrics{
		CallCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "call_count",
			Help:      "Number of recorded calls.",
		}),
		AssertionFailureCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "assertion_failure_count",
			Help:      "Number of call assertions that found no matching call.",
		}),
		ResetCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "reset_count",
			Help:      "Number of registry resets.",
		}),
	}
}

// Metrics returns the prometheus collectors of the registry.
func (r *Registry) Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(r.metrics)
}
