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

package scval_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/wire/scval"
)

func TestUint256Limbs(t *testing.T) {
	x := new(uint256.Int).Lsh(uint256.NewInt(7), 192)
	x.AddUint64(x, 5)
	p := scval.MakeUint256Parts(x)
	require.Equal(t, xdr.Uint64(7), p.HiHi)
	require.Equal(t, xdr.Uint64(0), p.HiLo)
	require.Equal(t, xdr.Uint64(0), p.LoHi)
	require.Equal(t, xdr.Uint64(5), p.LoLo)
}

func TestUint256Wrap(t *testing.T) {
	rng := pkgtest.Prng(t)
	for i := 0; i < 16; i++ {
		x := &uint256.Int{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
		v := scval.MustWrapUint256(x)
		parts, ok := v.GetU256()
		require.True(t, ok)
		require.True(t, x.Eq(scval.Uint256FromParts(parts)))
	}
}

func TestNilUint256IsZero(t *testing.T) {
	require.True(t, scval.Uint256FromParts(scval.MakeUint256Parts(nil)).IsZero())
}
