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

package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	pkgtest "polycry.pt/poly-go/test"

	"perun.network/perun-adjudicator/wallet"
	"perun.network/perun-adjudicator/wallet/types"
	wtest "perun.network/perun-adjudicator/wallet/test"
)

func TestSignVerify(t *testing.T) {
	rng := pkgtest.Prng(t)
	acc := wtest.NewRandomAccount(t, rng)
	other := wtest.NewRandomAccount(t, rng)
	msg := []byte("perun")

	sig, err := acc.SignData(msg)
	require.NoError(t, err)
	require.Len(t, sig, wallet.SignatureLength)

	ok, err := wallet.Backend.VerifySignature(msg, sig, acc.Address())
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = wallet.Backend.VerifySignature(msg, sig, other.Address())
	require.NoError(t, err)
	require.False(t, ok, "signature must not verify for another address")

	ok, err = wallet.Backend.VerifySignature([]byte("nurep"), sig, acc.Address())
	require.NoError(t, err)
	require.False(t, ok)

	_, err = wallet.Backend.VerifySignature(msg, sig[:10], acc.Address())
	require.ErrorIs(t, err, wallet.ErrInvalidSignatureSize)
}

func TestDeterministicAccounts(t *testing.T) {
	a, err := wallet.NewRandomAccount(pkgtest.Prng(t))
	require.NoError(t, err)
	b, err := wallet.NewRandomAccount(pkgtest.Prng(t))
	require.NoError(t, err)
	require.True(t, a.Address().Equal(b.Address()))
}

func TestEphemeralWallet(t *testing.T) {
	rng := pkgtest.Prng(t)
	w := wallet.NewEphemeralWallet()
	acc, err := w.AddNewAccount(rng)
	require.NoError(t, err)

	unlocked, err := w.Unlock(acc.Address())
	require.NoError(t, err)
	require.Equal(t, acc, unlocked)

	require.Error(t, w.AddAccount(acc))
	_, err = w.Unlock(wtest.NewRandomAddress(t, rng))
	require.Error(t, err)
}

func TestAddressScAddress(t *testing.T) {
	rng := pkgtest.Prng(t)
	addr := wtest.NewRandomAddress(t, rng)
	sc, err := addr.ScAddress()
	require.NoError(t, err)
	back, err := types.AddressFromScAddress(sc)
	require.NoError(t, err)
	require.True(t, addr.Equal(back))

	pk, err := addr.PublicKey()
	require.NoError(t, err)
	require.Len(t, pk, 32)
}
