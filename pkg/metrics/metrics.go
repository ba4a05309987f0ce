/*
Copyright 2026 The Kubernetes Authors.

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

// Package metrics records run outcomes and pushes them to a Prometheus
// Pushgateway, since the process exits before any scrape could happen.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/sirupsen/logrus"

	"k8s.io/release-cherrypicker/pkg/version"
)

// Metrics holds the collectors of one run in their own registry.
type Metrics struct {
	Registry *prometheus.Registry

	Outcomes *prometheus.CounterVec
	Failures prometheus.Counter
	Version  prometheus.Gauge
}

// New returns registered collectors with the version gauge already set.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cherrypicker_outcomes_total",
			Help: "Cherry-pick attempts by outcome.",
		}, []string{"outcome"}),
		Failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cherrypicker_run_failures_total",
			Help: "Runs that ended with a fatal error.",
		}),
		Version: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cherrypicker_version",
			Help: "Build date of the running binary as a unix timestamp.",
		}),
	}
	m.Registry.MustRegister(m.Outcomes, m.Failures, m.Version)

	timestamp, err := version.VersionTimestamp()
	if err != nil {
		// Not worth failing over
		logrus.WithError(err).Debug("Failed to get version timestamp")
		m.Version.Set(-1)
	} else {
		m.Version.Set(float64(timestamp))
	}
	return m
}

// RecordOutcome counts one attempt with the given outcome.
func (m *Metrics) RecordOutcome(outcome string) {
	m.Outcomes.WithLabelValues(outcome).Inc()
}

// RecordFailure counts a run that ended with a fatal error.
func (m *Metrics) RecordFailure() {
	m.Failures.Inc()
}

// Push sends the registry to the Pushgateway at endpoint under job, grouped
// by the given labels. The previous push of the same group is replaced.
func (m *Metrics) Push(endpoint, job string, grouping map[string]string) error {
	pusher := push.New(endpoint, job).Gatherer(m.Registry)
	for name, value := range grouping {
		pusher = pusher.Grouping(name, value)
	}
	if err := pusher.Push(); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", endpoint, err)
	}
	return nil
}
