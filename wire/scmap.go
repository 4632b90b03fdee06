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

package wire

import (
	"bytes"
	"sort"
	"strings"

	"github.com/pkg/errors"
	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-adjudicator/wire/scval"
)

// HashLength is the length of channel identifiers, nonces and state hashes.
const HashLength = 32

var ErrMalformed = errors.New("malformed encoding")

// MakeSymbolScMap creates a xdr.ScMap from a slice of symbols and a slice of values.
// The entries are sorted lexicographically by symbol. We expect that keys does not contain duplicates.
func MakeSymbolScMap(keys []xdr.ScSymbol, values []xdr.ScVal) (xdr.ScMap, error) {
	if len(keys) != len(values) {
		return xdr.ScMap{}, errors.New("keys and values must have the same length")
	}
	m := make(xdr.ScMap, len(keys))
	for i, k := range keys {
		m[i] = xdr.ScMapEntry{
			Key: scval.MustWrapScSymbol(k),
			Val: values[i],
		}
	}
	sort.Slice(m, func(i, j int) bool {
		return strings.Compare(string(m[i].Key.MustSym()), string(m[j].Key.MustSym())) < 0
	})
	return m, nil
}

// GetScMapValueFromSymbol looks up the value stored under the given symbol.
func GetScMapValueFromSymbol(key xdr.ScSymbol, m xdr.ScMap) (xdr.ScVal, error) {
	k := scval.MustWrapScSymbol(key)
	for _, e := range m {
		if e.Key.Equals(k) {
			return e.Val, nil
		}
	}
	return xdr.ScVal{}, errors.Wrapf(ErrMalformed, "key %q not found", key)
}

// symbolMap unwraps v as a map with exactly n entries.
func symbolMap(v xdr.ScVal, n int, what string) (xdr.ScMap, error) {
	m, ok := v.GetMap()
	if !ok || m == nil {
		return nil, errors.Wrapf(ErrMalformed, "expected map decoding %s", what)
	}
	if len(*m) != n {
		return nil, errors.Wrapf(ErrMalformed, "expected map of length %d decoding %s", n, what)
	}
	return *m, nil
}

func getBytes(m xdr.ScMap, key xdr.ScSymbol) (xdr.ScBytes, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return nil, err
	}
	b, ok := v.GetBytes()
	if !ok {
		return nil, errors.Wrapf(ErrMalformed, "expected bytes for %q", key)
	}
	return b, nil
}

func getHash(m xdr.ScMap, key xdr.ScSymbol) (xdr.ScBytes, error) {
	b, err := getBytes(m, key)
	if err != nil {
		return nil, err
	}
	if len(b) != HashLength {
		return nil, errors.Wrapf(ErrMalformed, "expected %d bytes for %q, got %d", HashLength, key, len(b))
	}
	return b, nil
}

func getUint64(m xdr.ScMap, key xdr.ScSymbol) (xdr.Uint64, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return 0, err
	}
	u, ok := v.GetU64()
	if !ok {
		return 0, errors.Wrapf(ErrMalformed, "expected uint64 for %q", key)
	}
	return u, nil
}

func getBool(m xdr.ScMap, key xdr.ScSymbol) (bool, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return false, err
	}
	b, ok := v.GetB()
	if !ok {
		return false, errors.Wrapf(ErrMalformed, "expected bool for %q", key)
	}
	return b, nil
}

func getAddress(m xdr.ScMap, key xdr.ScSymbol) (xdr.ScAddress, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return xdr.ScAddress{}, err
	}
	a, ok := v.GetAddress()
	if !ok {
		return xdr.ScAddress{}, errors.Wrapf(ErrMalformed, "expected address for %q", key)
	}
	return a, nil
}

func getUint256(m xdr.ScMap, key xdr.ScSymbol) (xdr.UInt256Parts, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return xdr.UInt256Parts{}, err
	}
	u, ok := v.GetU256()
	if !ok {
		return xdr.UInt256Parts{}, errors.Wrapf(ErrMalformed, "expected uint256 for %q", key)
	}
	return u, nil
}

func getVec(m xdr.ScMap, key xdr.ScSymbol) (xdr.ScVec, error) {
	v, err := GetScMapValueFromSymbol(key, m)
	if err != nil {
		return nil, err
	}
	return asVec(v, string(key))
}

func asVec(v xdr.ScVal, what string) (xdr.ScVec, error) {
	vec, ok := v.GetVec()
	if !ok || vec == nil {
		return nil, errors.Wrapf(ErrMalformed, "expected vec for %s", what)
	}
	return *vec, nil
}

func wrapAddresses(as []xdr.ScAddress) (xdr.ScVal, error) {
	vec := make(xdr.ScVec, len(as))
	for i, a := range as {
		v, err := scval.WrapScAddress(a)
		if err != nil {
			return xdr.ScVal{}, err
		}
		vec[i] = v
	}
	return scval.WrapVec(vec)
}

func unwrapAddresses(vec xdr.ScVec, what string) ([]xdr.ScAddress, error) {
	as := make([]xdr.ScAddress, len(vec))
	for i, v := range vec {
		a, ok := v.GetAddress()
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "expected address in %s[%d]", what, i)
		}
		as[i] = a
	}
	return as, nil
}

func wrapAmounts(amounts []xdr.UInt256Parts) (xdr.ScVal, error) {
	vec := make(xdr.ScVec, len(amounts))
	for i, a := range amounts {
		v, err := scval.WrapUint256Parts(a)
		if err != nil {
			return xdr.ScVal{}, err
		}
		vec[i] = v
	}
	return scval.WrapVec(vec)
}

func unwrapAmounts(v xdr.ScVal, what string) ([]xdr.UInt256Parts, error) {
	vec, err := asVec(v, what)
	if err != nil {
		return nil, err
	}
	amounts := make([]xdr.UInt256Parts, len(vec))
	for i, a := range vec {
		u, ok := a.GetU256()
		if !ok {
			return nil, errors.Wrapf(ErrMalformed, "expected uint256 in %s[%d]", what, i)
		}
		amounts[i] = u
	}
	return amounts, nil
}

// scValer is implemented by every type with a canonical ScVal representation.
type scValer interface {
	ToScVal() (xdr.ScVal, error)
}

func encodeTo(e *xdr3.Encoder, s scValer) error {
	v, err := s.ToScVal()
	if err != nil {
		return err
	}
	_, err = e.Encode(v)
	return err
}

func decodeFrom(d *xdr3.Decoder, fromScVal func(xdr.ScVal) error) (int, error) {
	var v xdr.ScVal
	n, err := d.Decode(&v)
	if err != nil {
		return n, err
	}
	return n, fromScVal(v)
}

func marshal(s scValer) ([]byte, error) {
	buf := bytes.Buffer{}
	err := encodeTo(xdr3.NewEncoder(&buf), s)
	return buf.Bytes(), err
}

// unmarshal decodes exactly one ScVal from data. Trailing bytes are rejected so every value has a
// single valid encoding.
func unmarshal(data []byte, fromScVal func(xdr.ScVal) error) error {
	r := bytes.NewReader(data)
	if _, err := decodeFrom(xdr3.NewDecoder(r), fromScVal); err != nil {
		return err
	}
	if r.Len() != 0 {
		return errors.Wrapf(ErrMalformed, "%d trailing bytes", r.Len())
	}
	return nil
}
