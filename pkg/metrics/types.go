// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import "github.com/prometheus/client_golang/prometheus"

// Namespace is prefixed before every metric. If it is changed, it must be done
// before any metrics collector is registered.
const Namespace = "eventlog"

// Prometheus types aliases
type (
	Registry    = prometheus.Registry
	Metric      = prometheus.Metric
	Counter     = prometheus.Counter
	CounterOpts = prometheus.CounterOpts
)
