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

package types

import (
	"errors"
	"fmt"

	"github.com/stellar/go/xdr"
)

// HashLenXdr is the length of an asset identifier.
const HashLenXdr = 32

// Asset identifies the token an AssetHolder keeps custody of. It is the 32 byte id of the token
// contract.
type Asset struct {
	contractID xdr.Hash
}

// AssetMapKey is the map key representation of an asset.
type AssetMapKey string

// NewAsset creates a new asset with the given contract ID.
func NewAsset(contractID xdr.Hash) Asset {
	return Asset{contractID: contractID}
}

// ContractID returns the contract ID of the asset.
func (a Asset) ContractID() xdr.Hash {
	return a.contractID
}

// Equal checks if the given asset is the same asset.
func (a Asset) Equal(other Asset) bool {
	return a.contractID == other.contractID
}

// MapKey returns the asset's map key representation.
func (a Asset) MapKey() AssetMapKey {
	return AssetMapKey(a.contractID[:])
}

// String returns the hex representation of the contract ID.
func (a Asset) String() string {
	return a.contractID.HexString()
}

// MarshalBinary marshals the asset into its binary representation.
func (a Asset) MarshalBinary() (data []byte, err error) {
	return a.contractID.MarshalBinary()
}

// UnmarshalBinary unmarshals the asset from its binary representation.
func (a *Asset) UnmarshalBinary(data []byte) error {
	if len(data) != HashLenXdr {
		return fmt.Errorf("expected asset of %d bytes, got %d", HashLenXdr, len(data))
	}
	copy(a.contractID[:], data)
	return nil
}

// MakeScAddress returns the contract ScAddress of the asset.
func (a Asset) MakeScAddress() (xdr.ScAddress, error) {
	return MakeContractAddress(a.contractID)
}

// FromScAddress sets the asset from a contract ScAddress.
func (a *Asset) FromScAddress(address xdr.ScAddress) error {
	if address.Type != xdr.ScAddressTypeScAddressTypeContract || address.ContractId == nil {
		return errors.New("invalid address type")
	}
	a.contractID = *address.ContractId
	return nil
}

// AssetFromScAddress creates an asset from the given contract ScAddress.
func AssetFromScAddress(address xdr.ScAddress) (Asset, error) {
	var a Asset
	err := a.FromScAddress(address)
	return a, err
}

// MakeContractAddress generates a contract address from the given contract ID.
func MakeContractAddress(contractID xdr.Hash) (xdr.ScAddress, error) {
	return xdr.NewScAddress(xdr.ScAddressTypeScAddressTypeContract, contractID)
}
