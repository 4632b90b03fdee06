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

// Package scval wraps plain values into xdr.ScVal.
package scval

import "github.com/stellar/go/xdr"

func WrapScAddress(address xdr.ScAddress) (xdr.ScVal, error) {
	return xdr.NewScVal(xdr.ScValTypeScvAddress, address)
}

func MustWrapScAddress(address xdr.ScAddress) xdr.ScVal {
	return must(WrapScAddress(address))
}

func WrapScMap(m xdr.ScMap) (xdr.ScVal, error) {
	return xdr.NewScVal(xdr.ScValTypeScvMap, &m)
}

func MustWrapScMap(m xdr.ScMap) xdr.ScVal {
	return must(WrapScMap(m))
}

// WrapVec wraps a vector. A nil vector is encoded as an empty one.
func WrapVec(v xdr.ScVec) (xdr.ScVal, error) {
	if v == nil {
		v = xdr.ScVec{}
	}
	return xdr.NewScVal(xdr.ScValTypeScvVec, &v)
}

func MustWrapVec(v xdr.ScVec) xdr.ScVal {
	return must(WrapVec(v))
}

func WrapScSymbol(symbol xdr.ScSymbol) (xdr.ScVal, error) {
	return xdr.NewScVal(xdr.ScValTypeScvSymbol, symbol)
}

func MustWrapScSymbol(symbol xdr.ScSymbol) xdr.ScVal {
	return must(WrapScSymbol(symbol))
}

// WrapScBytes wraps a byte string. A nil slice is encoded as an empty one.
func WrapScBytes(b xdr.ScBytes) (xdr.ScVal, error) {
	if b == nil {
		b = xdr.ScBytes{}
	}
	return xdr.NewScVal(xdr.ScValTypeScvBytes, b)
}

func MustWrapScBytes(b xdr.ScBytes) xdr.ScVal {
	return must(WrapScBytes(b))
}

func WrapUint64(i xdr.Uint64) (xdr.ScVal, error) {
	return xdr.NewScVal(xdr.ScValTypeScvU64, i)
}

func MustWrapUint64(i xdr.Uint64) xdr.ScVal {
	return must(WrapUint64(i))
}

func WrapUint256Parts(parts xdr.UInt256Parts) (xdr.ScVal, error) {
	return xdr.NewScVal(xdr.ScValTypeScvU256, parts)
}

func MustWrapUint256Parts(parts xdr.UInt256Parts) xdr.ScVal {
	return must(WrapUint256Parts(parts))
}

func must(v xdr.ScVal, err error) xdr.ScVal {
	if err != nil {
		panic(err)
	}
	return v
}
