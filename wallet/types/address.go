// Copyright 2024 PolyCrypt GmbH
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
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/xdr"
)

// AddressLength is the length of the raw public key behind an Address.
const AddressLength = ed25519.PublicKeySize

var ErrInvalidAddress = errors.New("invalid address")

// Address is a Stellar account address. It identifies channel participants, withdrawal receivers
// and the adjudicator an asset holder is bound to. The address is the ed25519 public key that
// verifies the participant's signatures.
type Address keypair.FromAddress

// ParseAddress parses a strkey encoded account address (G...).
func ParseAddress(addr string) (*Address, error) {
	kp, err := keypair.ParseAddress(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	return (*Address)(kp), nil
}

// MustParseAddress is like ParseAddress but panics on error.
func MustParseAddress(addr string) *Address {
	a, err := ParseAddress(addr)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromKeyPair returns the address of the given key pair.
func AddressFromKeyPair(kp keypair.KP) (*Address, error) {
	return ParseAddress(kp.Address())
}

// AddressFromPublicKey builds the address of a raw ed25519 public key.
func AddressFromPublicKey(pk ed25519.PublicKey) (*Address, error) {
	if len(pk) != AddressLength {
		return nil, fmt.Errorf("%w: public key of length %d", ErrInvalidAddress, len(pk))
	}
	s, err := strkey.Encode(strkey.VersionByteAccountID, pk)
	if err != nil {
		return nil, err
	}
	return ParseAddress(s)
}

// ZeroAddress returns the address of the all-zero public key.
func ZeroAddress() (*Address, error) {
	zeros := [AddressLength]byte{}
	return AddressFromPublicKey(zeros[:])
}

func (a *Address) kp() *keypair.FromAddress {
	return (*keypair.FromAddress)(a)
}

// Equal compares two addresses for equality.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.kp().Equal(other.kp())
}

// String returns the strkey representation of the address.
func (a *Address) String() string {
	return a.kp().Address()
}

// PublicKey returns the ed25519 public key behind the address.
func (a *Address) PublicKey() (ed25519.PublicKey, error) {
	return strkey.Decode(strkey.VersionByteAccountID, a.String())
}

// Verify checks an ed25519 signature of msg against this address.
func (a *Address) Verify(msg, sig []byte) error {
	return a.kp().Verify(msg, sig)
}

// MarshalBinary implements the encoding.BinaryMarshaler interface.
func (a *Address) MarshalBinary() ([]byte, error) {
	return a.kp().MarshalBinary()
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
func (a *Address) UnmarshalBinary(data []byte) error {
	return a.kp().UnmarshalBinary(data)
}

// ScAddress returns the account ScAddress of the address.
func (a *Address) ScAddress() (xdr.ScAddress, error) {
	accountID, err := xdr.AddressToAccountId(a.String())
	if err != nil {
		return xdr.ScAddress{}, err
	}
	return xdr.NewScAddress(xdr.ScAddressTypeScAddressTypeAccount, accountID)
}

// AddressFromScAddress converts an account ScAddress back to an Address.
func AddressFromScAddress(address xdr.ScAddress) (*Address, error) {
	if address.Type != xdr.ScAddressTypeScAddressTypeAccount || address.AccountId == nil {
		return nil, fmt.Errorf("%w: expected account address", ErrInvalidAddress)
	}
	return ParseAddress(address.AccountId.Address())
}
