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

package wallet

import (
	"errors"
	"math/rand"

	"github.com/stellar/go/keypair"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/wallet/types"
)

// Account is used for signing channel states and withdrawal authorizations.
type Account struct {
	kp      *keypair.Full
	address *types.Address
}

// NewAccount wraps the given key pair.
func NewAccount(kp *keypair.Full) (*Account, error) {
	if kp == nil {
		return nil, errors.New("nil key pair")
	}
	addr, err := types.AddressFromKeyPair(kp)
	if err != nil {
		return nil, err
	}
	return &Account{kp: kp, address: addr}, nil
}

// NewRandomAccount creates an account whose seed is drawn from rng, so seeded test runs produce
// the same accounts.
func NewRandomAccount(rng *rand.Rand) (*Account, error) {
	var seed [32]byte
	if _, err := rng.Read(seed[:]); err != nil {
		return nil, err
	}
	kp, err := keypair.FromRawSeed(seed)
	if err != nil {
		return nil, err
	}
	return NewAccount(kp)
}

// Address returns the address this account signs for.
func (a Account) Address() *types.Address {
	return a.address
}

// KeyPair returns the underlying key pair.
func (a Account) KeyPair() *keypair.Full {
	return a.kp
}

// SignData signs the given data with the account's private key.
func (a Account) SignData(data []byte) (pwallet.Sig, error) {
	if a.kp == nil {
		return nil, errors.New("account has no key")
	}
	return a.kp.Sign(data)
}
