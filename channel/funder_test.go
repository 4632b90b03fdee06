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

	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/assetholder"
	"perun.network/perun-adjudicator/channel"
	chtest "perun.network/perun-adjudicator/channel/test"
)

func fundersOf(s *chtest.Setup) *channel.Funder {
	deps := make([]channel.Depositor, len(s.Holders))
	for i, h := range s.Holders {
		deps[i] = h
	}
	return channel.NewFunder(deps...)
}

func TestFunder(t *testing.T) {
	ctx := context.Background()
	s := chtest.NewSetup(t, pkgtest.Prng(t), 2, 2, 30)
	state := s.NewState(0, 0, []uint64{10, 20}, []uint64{0, 5})
	f := fundersOf(s)

	require.NoError(t, f.Fund(ctx, s.Params, state, 0))
	require.NoError(t, f.Fund(ctx, s.Params, state, 1))

	require.Equal(t, uint64(10), s.Holding(0, 0))
	require.Equal(t, uint64(20), s.Holding(1, 0))
	require.Equal(t, uint64(0), s.Holding(0, 1))
	require.Equal(t, uint64(5), s.Holding(1, 1))

	require.Error(t, f.Fund(ctx, s.Params, state, 2))
}

func TestFunderUnknownAsset(t *testing.T) {
	ctx := context.Background()
	s := chtest.NewSetup(t, pkgtest.Prng(t), 2, 2, 30)
	state := s.NewState(0, 0, []uint64{10, 20}, []uint64{1, 5})
	f := channel.NewFunder(s.Holders[1])

	require.ErrorIs(t, f.Fund(ctx, s.Params, state, 0), channel.ErrUnknownAsset)
	require.Equal(t, uint64(0), s.Holding(0, 1), "nothing deposited")
}

func TestFundThenSettle(t *testing.T) {
	ctx := context.Background()
	s := chtest.NewSetup(t, pkgtest.Prng(t), 2, 1, 30)
	initial := s.NewState(0, 0, []uint64{10, 20})
	f := fundersOf(s)
	require.NoError(t, f.Fund(ctx, s.Params, initial, 0))
	require.NoError(t, f.Fund(ctx, s.Params, initial, 1))

	final := s.NewState(3, 1, []uint64{18, 12})
	final.IsFinal = true
	require.NoError(t, s.Adj.RegisterFinalState(ctx, s.Params, final, s.Sign(final)))

	require.NoError(t, s.Withdraw(0, 0, 18))
	require.NoError(t, s.Withdraw(1, 0, 12))
	require.ErrorIs(t, s.Withdraw(1, 0, 1), assetholder.ErrInsufficientFunds)
	require.Equal(t, uint64(18), s.Paid(0, 0))
	require.Equal(t, uint64(12), s.Paid(1, 0))
}
