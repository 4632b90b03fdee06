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

package types_test

import (
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/xdr"
	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/channel/types"
)

func TestAssetScAddress(t *testing.T) {
	rng := pkgtest.Prng(t)
	var hash xdr.Hash
	rng.Read(hash[:])
	asset := types.NewAsset(hash)

	address, err := asset.MakeScAddress()
	require.NoError(t, err)
	require.Equal(t, xdr.ScAddressTypeScAddressTypeContract, address.Type)

	back, err := types.AssetFromScAddress(address)
	require.NoError(t, err)
	require.True(t, asset.Equal(back))
	require.Equal(t, asset.MapKey(), back.MapKey())
}

func TestAssetRejectsAccountAddress(t *testing.T) {
	kp, err := keypair.Random()
	require.NoError(t, err)
	accountID, err := xdr.AddressToAccountId(kp.Address())
	require.NoError(t, err)
	address, err := xdr.NewScAddress(xdr.ScAddressTypeScAddressTypeAccount, accountID)
	require.NoError(t, err)

	_, err = types.AssetFromScAddress(address)
	require.Error(t, err)
}

func TestAssetUnmarshalLength(t *testing.T) {
	var a types.Asset
	require.Error(t, a.UnmarshalBinary(make([]byte, 31)))
	require.NoError(t, a.UnmarshalBinary(make([]byte, types.HashLenXdr)))
}
