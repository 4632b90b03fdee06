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

package test

import (
	"math/rand"

	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"

	"perun.network/perun-adjudicator/channel/types"
)

// NewRandomAsset returns an asset with a random contract ID.
func NewRandomAsset(rng *rand.Rand) types.Asset {
	var contractID xdr.Hash
	rng.Read(contractID[:])
	return types.NewAsset(contractID)
}

// NewRandomAssets returns n distinct random assets.
func NewRandomAssets(rng *rand.Rand, n int) []types.Asset {
	assets := make([]types.Asset, n)
	for i := range assets {
		assets[i] = NewRandomAsset(rng)
	}
	return assets
}

// NewRandomNonce returns a random 256 bit nonce.
func NewRandomNonce(rng *rand.Rand) *uint256.Int {
	return &uint256.Int{rng.Uint64(), rng.Uint64(), rng.Uint64(), rng.Uint64()}
}

// Amounts converts plain integers into amounts.
func Amounts(xs ...uint64) []*uint256.Int {
	amounts := make([]*uint256.Int, len(xs))
	for i, x := range xs {
		amounts[i] = uint256.NewInt(x)
	}
	return amounts
}
