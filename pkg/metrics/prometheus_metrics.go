/*
Copyright 2022 The Katalyst Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package metrics

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// PrometheusMetricsEmitter keeps every stored metric in a private
// prometheus registry; the content can be rendered with WriteText.
// Raw and up-down-count metrics become gauges, count metrics counters.
type PrometheusMetricsEmitter struct {
	mtx      sync.Mutex
	prefix   string
	registry *prometheus.Registry
	vecs     map[string]*prometheusVec
}

type prometheusVec struct {
	emitType MetricTypeName
	labels   []string

	gauge   *prometheus.GaugeVec
	counter *prometheus.CounterVec
}

var _ MetricEmitter = &PrometheusMetricsEmitter{}

// NewPrometheusMetricsEmitter prepends prefix and an underscore to every
// metric name when prefix is not empty.
func NewPrometheusMetricsEmitter(prefix string) *PrometheusMetricsEmitter {
	return &PrometheusMetricsEmitter{
		prefix:   prefix,
		registry: prometheus.NewRegistry(),
		vecs:     make(map[string]*prometheusVec),
	}
}

func (p *PrometheusMetricsEmitter) StoreInt64(key string, val int64, emitType MetricTypeName, tags ...MetricTag) error {
	return p.StoreFloat64(key, float64(val), emitType, tags...)
}

func (p *PrometheusMetricsEmitter) StoreFloat64(key string, val float64, emitType MetricTypeName, tags ...MetricTag) error {
	name := p.metricName(key)
	labels := tagsToLabels(tags)

	p.mtx.Lock()
	defer p.mtx.Unlock()

	vec, err := p.getOrRegisterVec(name, emitType, labels)
	if err != nil {
		return err
	}

	switch emitType {
	case MetricTypeNameCount:
		if val < 0 {
			return fmt.Errorf("counter %s cannot decrease by %v", name, val)
		}
		vec.counter.With(labels).Add(val)
	case MetricTypeNameUpDownCount:
		vec.gauge.With(labels).Add(val)
	default:
		vec.gauge.With(labels).Set(val)
	}
	return nil
}

func (p *PrometheusMetricsEmitter) WithTags(unit string, commonTags ...MetricTag) MetricEmitter {
	newMetricTagWrapper := &MetricTagWrapper{MetricEmitter: p}
	return newMetricTagWrapper.WithTags(unit, commonTags...)
}

func (p *PrometheusMetricsEmitter) Run(_ context.Context) {}

// Gather returns the stored metric families sorted by name.
func (p *PrometheusMetricsEmitter) Gather() ([]*dto.MetricFamily, error) {
	return p.registry.Gather()
}

// WriteText renders the stored metrics in the prometheus text format.
func (p *PrometheusMetricsEmitter) WriteText(w io.Writer) error {
	families, err := p.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}

func (p *PrometheusMetricsEmitter) getOrRegisterVec(name string, emitType MetricTypeName,
	labels prometheus.Labels,
) (*prometheusVec, error) {
	labelNames := make([]string, 0, len(labels))
	for k := range labels {
		labelNames = append(labelNames, k)
	}
	sort.Strings(labelNames)

	if vec, ok := p.vecs[name]; ok {
		if vec.emitType != emitType {
			return nil, fmt.Errorf("metric %s was stored as %s, got %s", name, vec.emitType, emitType)
		}
		if strings.Join(vec.labels, ",") != strings.Join(labelNames, ",") {
			return nil, fmt.Errorf("metric %s has tags %v, got %v", name, vec.labels, labelNames)
		}
		return vec, nil
	}

	vec := &prometheusVec{emitType: emitType, labels: labelNames}
	var collector prometheus.Collector
	if emitType == MetricTypeNameCount {
		vec.counter = prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: name}, labelNames)
		collector = vec.counter
	} else {
		vec.gauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: name}, labelNames)
		collector = vec.gauge
	}

	if err := p.registry.Register(collector); err != nil {
		return nil, fmt.Errorf("register metric %s failed: %v", name, err)
	}
	p.vecs[name] = vec
	return vec, nil
}

func (p *PrometheusMetricsEmitter) metricName(key string) string {
	if p.prefix == "" {
		return sanitizeName(key)
	}
	return sanitizeName(p.prefix + "_" + key)
}

// tagsToLabels keeps the last value of repeated tag keys.
func tagsToLabels(tags []MetricTag) prometheus.Labels {
	labels := make(prometheus.Labels, len(tags))
	for _, tag := range tags {
		labels[sanitizeName(tag.Key)] = tag.Val
	}
	return labels
}

// sanitizeName maps key onto [a-zA-Z_][a-zA-Z0-9_]*.
func sanitizeName(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if i == 0 {
				b.WriteRune('_')
			}
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
