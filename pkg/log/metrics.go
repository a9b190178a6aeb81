// Copyright 2022 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	m "github.com/Pich78/percussion-studio-sub002/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

var _ Hook = (*Metrics)(nil)

// Metrics counts emitted events per severity. Register it as
// a hook with WithLevelHooks(AllSeverities, metrics).
type Metrics struct {
	DebugCount   prometheus.Counter
	InfoCount    prometheus.Counter
	WarnCount    prometheus.Counter
	ErrorCount   prometheus.Counter
	UnknownCount prometheus.Counter
}

// Fire implements Hook interface.
func (mx *Metrics) Fire(s Severity) error {
	switch s {
	case SeverityDebug:
		mx.DebugCount.Inc()
	case SeverityInfo:
		mx.InfoCount.Inc()
	case SeverityWarn:
		mx.WarnCount.Inc()
	case SeverityError:
		mx.ErrorCount.Inc()
	default:
		mx.UnknownCount.Inc()
	}
	return nil
}

// Metrics returns the prometheus collectors of the counters.
func (mx *Metrics) Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(mx)
}

// NewMetrics returns pointer to a new Metrics instance ready to use.
func NewMetrics() *Metrics {
	const subsystem = "log"

	return &Metrics{
		DebugCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "debug_count",
			Help:      "Number of DEBUG events emitted.",
		}),
		InfoCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "info_count",
			Help:      "Number of INFO events emitted.",
		}),
		WarnCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "warn_count",
			Help:      "Number of WARN events emitted.",
		}),
		ErrorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "error_count",
			Help:      "Number of ERROR events emitted.",
		}),
		UnknownCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "unknown_count",
			Help:      "Number of events of an unknown severity emitted.",
		}),
	}
}
