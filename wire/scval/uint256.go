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

package scval

import (
	"github.com/holiman/uint256"
	"github.com/stellar/go/xdr"
)

// MakeUint256Parts splits a 256 bit integer into its four big-endian 64 bit limbs.
func MakeUint256Parts(x *uint256.Int) xdr.UInt256Parts {
	if x == nil {
		return xdr.UInt256Parts{}
	}
	return xdr.UInt256Parts{
		HiHi: xdr.Uint64(x[3]),
		HiLo: xdr.Uint64(x[2]),
		LoHi: xdr.Uint64(x[1]),
		LoLo: xdr.Uint64(x[0]),
	}
}

// Uint256FromParts is the inverse of MakeUint256Parts.
func Uint256FromParts(p xdr.UInt256Parts) *uint256.Int {
	return &uint256.Int{uint64(p.LoLo), uint64(p.LoHi), uint64(p.HiLo), uint64(p.HiHi)}
}

func WrapUint256(x *uint256.Int) (xdr.ScVal, error) {
	return WrapUint256Parts(MakeUint256Parts(x))
}

func MustWrapUint256(x *uint256.Int) xdr.ScVal {
	return must(WrapUint256(x))
}
