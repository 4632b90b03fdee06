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

package channel_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	pchannel "perun.network/go-perun/channel"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/channel"
	chtest "perun.network/perun-adjudicator/channel/test"
)

func TestAdjudicatorSubscription(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	rng := pkgtest.Prng(t)
	s := chtest.NewSetup(t, rng, 2, 1, 30)
	other := chtest.NewSetup(t, rng, 2, 1, 30, channel.WithBus(s.Bus))

	sub, err := s.Adj.Subscribe(ctx, s.ID)
	require.NoError(t, err)

	// Events of other channels are filtered.
	o1 := other.NewState(1, 0, []uint64{1, 1})
	require.NoError(t, other.Adj.Register(ctx, other.Params, o1, other.Sign(o1)))

	v1 := s.NewState(1, 0, []uint64{1, 2})
	require.NoError(t, s.Adj.Register(ctx, s.Params, v1, s.Sign(v1)))
	timeout := s.Timeout()

	e := sub.Next()
	reg, ok := e.(*pchannel.RegisteredEvent)
	require.True(t, ok, "expected RegisteredEvent, got %T", e)
	require.Equal(t, s.ID, reg.ID())
	require.Equal(t, uint64(1), reg.Version())
	tt, ok := reg.Timeout().(*pchannel.TimeTimeout)
	require.True(t, ok)
	require.Equal(t, int64(timeout), tt.Unix())

	s.Clock.AdvanceSeconds(30)
	require.NoError(t, s.Adj.ConcludeFromChallenge(ctx, s.Params, v1, timeout))
	e = sub.Next()
	concl, ok := e.(*pchannel.ConcludedEvent)
	require.True(t, ok, "expected ConcludedEvent, got %T", e)
	require.Equal(t, uint64(1), concl.Version())

	require.NoError(t, sub.Close())
	require.Error(t, sub.Close())
	require.Nil(t, sub.Next())
	require.NoError(t, sub.Err())
}

func TestAdjudicatorSubscriptionCanceled(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := chtest.NewSetup(t, rng, 2, 1, 30)
	ctx, cancel := context.WithCancel(context.Background())
	sub, err := s.Adj.Subscribe(ctx, s.ID)
	require.NoError(t, err)

	cancel()
	require.Nil(t, sub.Next())
	require.NoError(t, sub.Err())

	// The bus subscription is released, later events are not queued for it.
	v1 := s.NewState(1, 0, []uint64{1, 2})
	require.NoError(t, s.Adj.Register(context.Background(), s.Params, v1, s.Sign(v1)))
	require.Nil(t, sub.Next())
}
