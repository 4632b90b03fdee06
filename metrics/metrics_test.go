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

package metrics_test

import (
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"perun.network/perun-adjudicator/metrics"
)

func TestObserveOperation(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	m.ObserveOperation(metrics.ComponentAdjudicator, "register", nil)
	m.ObserveOperation(metrics.ComponentAdjudicator, "register", errors.New("fail"))
	m.ObserveOperation(metrics.ComponentAdjudicator, "register", nil)

	require.Equal(t, 2.0, testutil.ToFloat64(m.Operations.WithLabelValues("adjudicator", "register", "ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Operations.WithLabelValues("adjudicator", "register", "error")))
}

func TestAmounts(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	m.AddDeposited("a", uint256.NewInt(9))
	m.AddDeposited("a", uint256.NewInt(1))
	m.AddWithdrawn("a", uint256.NewInt(4))
	m.SetDisputesOpen(3)

	require.Equal(t, 10.0, testutil.ToFloat64(m.Deposited.WithLabelValues("a")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.Withdrawn.WithLabelValues("a")))
	require.Equal(t, 3.0, testutil.ToFloat64(m.DisputesOpen))
}

func TestNilMetrics(t *testing.T) {
	var m *metrics.Metrics
	require.NotPanics(t, func() {
		m.ObserveOperation("x", "y", nil)
		m.SetDisputesOpen(1)
		m.AddDeposited("a", uint256.NewInt(1))
		m.AddWithdrawn("a", uint256.NewInt(1))
	})
}
