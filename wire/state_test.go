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

package wire_test

import (
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/wire"
	"perun.network/perun-adjudicator/wire/scval"
)

func randomAmount(rng *rand.Rand) xdr.UInt256Parts {
	return scval.MakeUint256Parts(uint256.NewInt(rng.Uint64()))
}

func randomState(rng *rand.Rand, numAssets, numParts, numLocked int) wire.State {
	alloc := wire.Allocation{
		Assets:   make([]xdr.ScAddress, numAssets),
		Balances: make([][]xdr.UInt256Parts, numAssets),
		Locked:   make([]wire.SubAlloc, numLocked),
	}
	for i := range alloc.Assets {
		var id xdr.Hash
		rng.Read(id[:])
		alloc.Assets[i] = xdr.ScAddress{Type: xdr.ScAddressTypeScAddressTypeContract, ContractId: &id}
		alloc.Balances[i] = make([]xdr.UInt256Parts, numParts)
		for j := range alloc.Balances[i] {
			alloc.Balances[i][j] = randomAmount(rng)
		}
	}
	for i := range alloc.Locked {
		alloc.Locked[i].ID = randomBytes(rng, wire.HashLength)
		alloc.Locked[i].Balances = make([]xdr.UInt256Parts, numAssets)
		for j := range alloc.Locked[i].Balances {
			alloc.Locked[i].Balances[j] = randomAmount(rng)
		}
	}
	return wire.State{
		ChannelID: randomBytes(rng, wire.HashLength),
		Version:   xdr.Uint64(rng.Uint64()),
		MoverIdx:  xdr.Uint64(rng.Intn(numParts)),
		Outcome:   alloc,
		AppData:   randomBytes(rng, rng.Intn(16)),
		IsFinal:   rng.Intn(2) == 0,
	}
}

func TestStateBinary(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := randomState(rng, 2, 3, 1)
	data, err := s.MarshalBinary()
	require.NoError(t, err)

	var back wire.State
	require.NoError(t, back.UnmarshalBinary(data))
	again, err := back.MarshalBinary()
	require.NoError(t, err)
	require.Equal(t, data, again)
	require.Equal(t, s.Version, back.Version)
	require.Equal(t, s.Outcome.Balances, back.Outcome.Balances)
	require.Equal(t, s.Outcome.Locked, back.Outcome.Locked)
}

func TestStateFieldsAffectEncoding(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := randomState(rng, 1, 2, 0)
	data, err := s.MarshalBinary()
	require.NoError(t, err)

	mutations := map[string]func(*wire.State){
		"version":  func(s *wire.State) { s.Version++ },
		"mover":    func(s *wire.State) { s.MoverIdx ^= 1 },
		"final":    func(s *wire.State) { s.IsFinal = !s.IsFinal },
		"app data": func(s *wire.State) { s.AppData = append(s.AppData, 1) },
		"balance": func(s *wire.State) {
			s.Outcome.Balances = [][]xdr.UInt256Parts{{s.Outcome.Balances[0][1], s.Outcome.Balances[0][0]}}
		},
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			m := s
			mutate(&m)
			other, err := m.MarshalBinary()
			require.NoError(t, err)
			require.NotEqual(t, data, other)
		})
	}
}

func TestStateRejectsShortChannelID(t *testing.T) {
	rng := pkgtest.Prng(t)
	s := randomState(rng, 1, 2, 0)
	s.ChannelID = s.ChannelID[:16]
	_, err := s.MarshalBinary()
	require.ErrorIs(t, err, wire.ErrMalformed)
}

func TestAuthorizationAndDispute(t *testing.T) {
	rng := pkgtest.Prng(t)
	auth := wire.Authorization{
		ChannelID:   randomBytes(rng, wire.HashLength),
		Participant: randomAccount(t),
		Receiver:    randomAccount(t),
		Amount:      randomAmount(rng),
	}
	data, err := auth.MarshalBinary()
	require.NoError(t, err)
	var authBack wire.Authorization
	require.NoError(t, authBack.UnmarshalBinary(data))
	require.Equal(t, auth, authBack)

	d := wire.Dispute{
		StateHash: randomBytes(rng, wire.HashLength),
		Timeout:   xdr.Uint64(rng.Uint64()),
		Version:   xdr.Uint64(rng.Uint64()),
		Concluded: true,
	}
	data, err = d.MarshalBinary()
	require.NoError(t, err)
	var dBack wire.Dispute
	require.NoError(t, dBack.UnmarshalBinary(data))
	require.Equal(t, d, dBack)
}
