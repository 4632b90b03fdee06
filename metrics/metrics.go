// Copyright 2025 PolyCrypt GmbH
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics exposes Prometheus instrumentation for the adjudicator and the asset holders.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ComponentAdjudicator = "adjudicator"
	ComponentAssetHolder = "assetholder"

	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics contains all Prometheus metrics of the module.
type Metrics struct {
	Operations   *prometheus.CounterVec
	DisputesOpen prometheus.Gauge
	Deposited    *prometheus.CounterVec
	Withdrawn    *prometheus.CounterVec
}

// New registers the metrics with the default registerer.
func New(namespace string) *Metrics {
	return NewWithRegistry(namespace, nil)
}

// NewWithRegistry registers the metrics with a custom registry.
func NewWithRegistry(namespace string, registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "The total number of operations by component, operation and result",
		}, []string{"component", "op", "result"}),
		DisputesOpen: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disputes_open",
			Help:      "The current number of registered but not concluded channels",
		}),
		Deposited: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposited_total",
			Help:      "The total amount deposited per asset",
		}, []string{"asset"}),
		Withdrawn: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawn_total",
			Help:      "The total amount withdrawn per asset",
		}, []string{"asset"}),
	}
}

// ObserveOperation counts one call of op on component.
func (m *Metrics) ObserveOperation(component, op string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	m.Operations.WithLabelValues(component, op, result).Inc()
}

func (m *Metrics) SetDisputesOpen(n int) {
	if m == nil {
		return
	}
	m.DisputesOpen.Set(float64(n))
}

func (m *Metrics) AddDeposited(asset string, amount *uint256.Int) {
	if m == nil {
		return
	}
	m.Deposited.WithLabelValues(asset).Add(toFloat(amount))
}

func (m *Metrics) AddWithdrawn(asset string, amount *uint256.Int) {
	if m == nil {
		return
	}
	m.Withdrawn.WithLabelValues(asset).Add(toFloat(amount))
}

// toFloat is lossy above 2^53.
func toFloat(x *uint256.Int) float64 {
	f, _ := new(big.Float).SetInt(x.ToBig()).Float64()
	return f
}
