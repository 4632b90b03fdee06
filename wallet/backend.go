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
	"crypto/ed25519"
	"errors"

	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/wallet/types"
)

// SignatureLength is the length of a signature in bytes.
const SignatureLength = ed25519.SignatureSize

// ErrInvalidSignatureSize is returned for signatures that are not SignatureLength bytes long.
var ErrInvalidSignatureSize = errors.New("invalid signature size")

type backend struct{}

// Backend verifies signatures produced by an Account.
var Backend = backend{}

// VerifySignature reports whether sig is a signature of msg by the owner of a. Malformed input is
// reported as an error, a well-formed but wrong signature as false.
func (b backend) VerifySignature(msg []byte, sig pwallet.Sig, a *types.Address) (bool, error) {
	if a == nil {
		return false, errors.New("nil address")
	}
	if len(sig) != SignatureLength {
		return false, ErrInvalidSignatureSize
	}
	return a.Verify(msg, sig) == nil, nil
}
