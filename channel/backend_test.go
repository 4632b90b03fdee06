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
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/channel"
	chtest "perun.network/perun-adjudicator/channel/test"
	"perun.network/perun-adjudicator/wallet/types"
	wtest "perun.network/perun-adjudicator/wallet/test"
)

func TestCalcID(t *testing.T) {
	rng := pkgtest.Prng(t)
	_, parts := wtest.NewRandomAccounts(t, rng, 3)
	p, err := channel.NewParams([]byte("app"), 60, chtest.NewRandomNonce(rng), parts)
	require.NoError(t, err)

	id, err := channel.Backend.CalcID(p)
	require.NoError(t, err)
	again, err := p.ID()
	require.NoError(t, err)
	require.Equal(t, id, again)

	variants := []*channel.Params{
		{App: []byte("app2"), ChallengeDuration: 60, Nonce: p.Nonce, Parts: parts},
		{App: p.App, ChallengeDuration: 61, Nonce: p.Nonce, Parts: parts},
		{App: p.App, ChallengeDuration: 60, Nonce: new(uint256.Int).AddUint64(p.Nonce, 1), Parts: parts},
		{App: p.App, ChallengeDuration: 60, Nonce: p.Nonce, Parts: []*types.Address{parts[1], parts[0], parts[2]}},
		{App: p.App, ChallengeDuration: 60, Nonce: p.Nonce, Parts: parts[:2]},
	}
	for i, v := range variants {
		other, err := v.ID()
		require.NoError(t, err)
		require.NotEqual(t, id, other, "variant %d", i)
	}
}

func TestParamsWire(t *testing.T) {
	rng := pkgtest.Prng(t)
	_, parts := wtest.NewRandomAccounts(t, rng, 2)
	p, err := channel.NewParams([]byte{1, 2}, 30, chtest.NewRandomNonce(rng), parts)
	require.NoError(t, err)

	w, err := p.ToWire()
	require.NoError(t, err)
	back, err := channel.ParamsFromWire(w)
	require.NoError(t, err)
	require.Equal(t, p.App, back.App)
	require.True(t, p.Nonce.Eq(back.Nonce))
	for i := range parts {
		require.True(t, parts[i].Equal(back.Parts[i]))
	}
}

func TestParamsInvalid(t *testing.T) {
	rng := pkgtest.Prng(t)
	_, parts := wtest.NewRandomAccounts(t, rng, 2)
	nonce := chtest.NewRandomNonce(rng)

	_, err := channel.NewParams(nil, 30, nonce, nil)
	require.Error(t, err)
	_, err = channel.NewParams(nil, 30, nonce, []*types.Address{parts[0], parts[0]})
	require.Error(t, err)
	_, err = channel.NewParams(nil, 30, nil, parts)
	require.Error(t, err)
}

func TestStateSignatures(t *testing.T) {
	s := chtest.NewSetup(t, pkgtest.Prng(t), 2, 2, 30)
	state := s.NewState(7, 1, []uint64{1, 2}, []uint64{3, 4})

	sig := s.SignBy(0, state)
	ok, err := channel.Backend.Verify(s.Params.Parts[0], state, sig)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = channel.Backend.Verify(s.Params.Parts[1], state, sig)
	require.NoError(t, err)
	require.False(t, ok)

	changed := state.Clone()
	changed.Outcome.Balances[1][0].AddUint64(changed.Outcome.Balances[1][0], 1)
	ok, err = channel.Backend.Verify(s.Params.Parts[0], changed, sig)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, uint64(3), state.Outcome.Balances[1][0].Uint64(), "clone is deep")
}

func TestStateWire(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := chtest.NewSetup(t, rng, 3, 1, 30)
	state := s.NewState(2, 2, []uint64{1, 2, 3})
	state.Outcome.Locked = []channel.SubAlloc{{ID: s.ID, Bals: chtest.Amounts(4)}}
	state.AppData = []byte("data")
	require.NoError(t, state.ValidFor(s.Params))

	w, err := state.ToWire()
	require.NoError(t, err)
	back, err := channel.StateFromWire(w)
	require.NoError(t, err)

	h1, err := channel.HashState(state)
	require.NoError(t, err)
	h2, err := channel.HashState(back)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestFundingID(t *testing.T) {
	s := chtest.NewSetup(t, pkgtest.Prng(t), 2, 1, 30)
	a, b := s.FundingID(0), s.FundingID(1)
	require.NotEqual(t, a, b)
	require.Equal(t, a, s.FundingID(0))

	other := s.ID
	other[31] ^= 1
	c, err := channel.FundingID(other, s.Params.Parts[0])
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestAllocationValid(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := chtest.NewSetup(t, rng, 2, 2, 30)

	dup := s.NewState(1, 0, []uint64{1, 2}, []uint64{3, 4})
	dup.Outcome.Assets[1] = dup.Outcome.Assets[0]
	require.ErrorIs(t, dup.ValidFor(s.Params), channel.ErrInvalidState)

	missing := s.NewState(1, 0, []uint64{1, 2}, []uint64{3, 4})
	missing.Outcome.Balances = missing.Outcome.Balances[:1]
	require.ErrorIs(t, missing.ValidFor(s.Params), channel.ErrInvalidState)

	nilBal := s.NewState(1, 0, []uint64{1, 2}, []uint64{3, 4})
	nilBal.Outcome.Balances[0][1] = nil
	require.ErrorIs(t, nilBal.ValidFor(s.Params), channel.ErrInvalidState)

	shortSub := s.NewState(1, 0, []uint64{1, 2}, []uint64{3, 4})
	shortSub.Outcome.Locked = []channel.SubAlloc{{ID: s.ID, Bals: chtest.Amounts(1)}}
	require.ErrorIs(t, shortSub.ValidFor(s.Params), channel.ErrInvalidState)
}

func TestDisputeRecordWire(t *testing.T) {
	rng := pkgtest.Prng(t)
	var rec channel.DisputeRecord
	rng.Read(rec.StateHash[:])
	rec.Timeout, rec.Version, rec.Concluded = rng.Uint64(), rng.Uint64(), true

	data, err := rec.ToWire().MarshalBinary()
	require.NoError(t, err)
	var back channel.DisputeRecord
	w := rec.ToWire()
	require.NoError(t, w.UnmarshalBinary(data))
	back = channel.DisputeRecordFromWire(w)
	require.Equal(t, rec, back)
}
