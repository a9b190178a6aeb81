// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics holds the prometheus helpers shared by the event logger,
// the call recorder and the command line tool.
package metrics

import (
	"fmt"
	"io"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

func NewCounter(opts CounterOpts) Counter {
	return prometheus.NewCounter(opts)
}

func NewRegistry() *Registry {
	return prometheus.NewRegistry()
}

// Collector is implemented by components that expose their metrics.
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields returns all exported fields of the struct
// pointed to by i that implement prometheus.Collector. Nil and unexported
// fields are skipped.
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	if v.Kind() != reflect.Struct {
		return nil
	}
	for n := 0; n < v.NumField(); n++ {
		f := v.Field(n)
		if !f.CanInterface() {
			continue
		}
		if f.Kind() == reflect.Interface && f.IsNil() {
			continue
		}
		if u, ok := f.Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}

// MustRegister registers all collectors of every given component on r.
func MustRegister(r prometheus.Registerer, components ...Collector) {
	for _, c := range components {
		r.MustRegister(c.Metrics()...)
	}
}

// WriteText writes all metric families gathered from g
// to w in the prometheus text exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
