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
	"testing"

	"github.com/stretchr/testify/require"

	"perun.network/perun-adjudicator/wallet"
	"perun.network/perun-adjudicator/wallet/types"
)

// NewRandomAccount creates an account seeded from rng.
func NewRandomAccount(t require.TestingT, rng *rand.Rand) *wallet.Account {
	acc, err := wallet.NewRandomAccount(rng)
	require.NoError(t, err)
	return acc
}

// NewRandomAccounts creates n accounts and returns them with their addresses.
func NewRandomAccounts(t *testing.T, rng *rand.Rand, n int) ([]*wallet.Account, []*types.Address) {
	t.Helper()
	accs := make([]*wallet.Account, n)
	addrs := make([]*types.Address, n)
	for i := range accs {
		accs[i] = NewRandomAccount(t, rng)
		addrs[i] = accs[i].Address()
	}
	return accs, addrs
}

// NewRandomAddress returns the address of a fresh account.
func NewRandomAddress(t require.TestingT, rng *rand.Rand) *types.Address {
	return NewRandomAccount(t, rng).Address()
}
