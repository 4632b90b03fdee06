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

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/wire"
)

func randomAccount(t *testing.T) xdr.ScAddress {
	t.Helper()
	kp, err := keypair.Random()
	require.NoError(t, err)
	accountID, err := xdr.AddressToAccountId(kp.Address())
	require.NoError(t, err)
	a, err := xdr.NewScAddress(xdr.ScAddressTypeScAddressTypeAccount, accountID)
	require.NoError(t, err)
	return a
}

func randomBytes(rng *rand.Rand, n int) xdr.ScBytes {
	b := make([]byte, n)
	rng.Read(b)
	return b
}

func randomParams(t *testing.T, rng *rand.Rand, numParts int) wire.Params {
	t.Helper()
	parts := make([]xdr.ScAddress, numParts)
	for i := range parts {
		parts[i] = randomAccount(t)
	}
	return wire.Params{
		App:               randomBytes(rng, 8),
		ChallengeDuration: xdr.Uint64(rng.Uint64()),
		Nonce:             randomBytes(rng, wire.NonceLength),
		Participants:      parts,
	}
}

func TestParamsBinary(t *testing.T) {
	rng := pkgtest.Prng(t)
	for _, n := range []int{1, 2, 5} {
		p := randomParams(t, rng, n)
		data, err := p.MarshalBinary()
		require.NoError(t, err)

		var back wire.Params
		require.NoError(t, back.UnmarshalBinary(data))
		require.Equal(t, p, back)

		again, err := back.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, data, again)
	}
}

func TestParamsInjective(t *testing.T) {
	rng := pkgtest.Prng(t)
	p := randomParams(t, rng, 2)
	data, err := p.MarshalBinary()
	require.NoError(t, err)

	q := p
	q.ChallengeDuration++
	other, err := q.MarshalBinary()
	require.NoError(t, err)
	require.NotEqual(t, data, other)

	// Moving bytes between the app and the participants must not collide.
	q = p
	q.Participants = []xdr.ScAddress{p.Participants[1], p.Participants[0]}
	other, err = q.MarshalBinary()
	require.NoError(t, err)
	require.NotEqual(t, data, other)
}

func TestParamsRejectsBadNonce(t *testing.T) {
	rng := pkgtest.Prng(t)
	p := randomParams(t, rng, 2)
	p.Nonce = p.Nonce[:31]
	_, err := p.MarshalBinary()
	require.Error(t, err)
}

func TestParamsKeysSorted(t *testing.T) {
	rng := pkgtest.Prng(t)
	v, err := randomParams(t, rng, 2).ToScVal()
	require.NoError(t, err)
	m, ok := v.GetMap()
	require.True(t, ok)
	var keys []string
	for _, e := range *m {
		keys = append(keys, string(e.Key.MustSym()))
	}
	require.Equal(t, []string{"app", "challenge_duration", "nonce", "participants"}, keys)
}

func TestUnmarshalRejectsTrailingBytes(t *testing.T) {
	rng := pkgtest.Prng(t)
	data, err := randomParams(t, rng, 2).MarshalBinary()
	require.NoError(t, err)

	var p wire.Params
	require.ErrorIs(t, p.UnmarshalBinary(append(data, 0, 0, 0, 0)), wire.ErrMalformed)
}

func TestUnmarshalRejectsWrongType(t *testing.T) {
	rng := pkgtest.Prng(t)
	data, err := randomParams(t, rng, 2).MarshalBinary()
	require.NoError(t, err)

	var s wire.State
	require.ErrorIs(t, s.UnmarshalBinary(data), wire.ErrMalformed)
}
