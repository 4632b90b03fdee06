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
	xdr3 "github.com/stellar/go-xdr/xdr3"
	"github.com/stellar/go/xdr"

	"perun.network/perun-adjudicator/wire/scval"
)

const (
	SymbolDisputeConcluded xdr.ScSymbol = "concluded"
	SymbolDisputeStateHash xdr.ScSymbol = "state_hash"
	SymbolDisputeTimeout   xdr.ScSymbol = "timeout"
	SymbolDisputeVersion   xdr.ScSymbol = "version"
)

// Dispute is the encoding of the adjudicator's record for one channel.
type Dispute struct {
	StateHash xdr.ScBytes
	Timeout   xdr.Uint64
	Version   xdr.Uint64
	Concluded bool
}

func (d Dispute) ToScVal() (xdr.ScVal, error) {
	if len(d.StateHash) != HashLength {
		return xdr.ScVal{}, ErrMalformed
	}
	concluded, err := scval.WrapBool(d.Concluded)
	if err != nil {
		return xdr.ScVal{}, err
	}
	stateHash, err := scval.WrapScBytes(d.StateHash)
	if err != nil {
		return xdr.ScVal{}, err
	}
	timeout, err := scval.WrapUint64(d.Timeout)
	if err != nil {
		return xdr.ScVal{}, err
	}
	version, err := scval.WrapUint64(d.Version)
	if err != nil {
		return xdr.ScVal{}, err
	}
	m, err := MakeSymbolScMap(
		[]xdr.ScSymbol{
			SymbolDisputeConcluded,
			SymbolDisputeStateHash,
			SymbolDisputeTimeout,
			SymbolDisputeVersion,
		},
		[]xdr.ScVal{concluded, stateHash, timeout, version},
	)
	if err != nil {
		return xdr.ScVal{}, err
	}
	return scval.WrapScMap(m)
}

func (d *Dispute) FromScVal(v xdr.ScVal) error {
	m, err := symbolMap(v, 4, "Dispute") //nolint:gomnd
	if err != nil {
		return err
	}
	concluded, err := getBool(m, SymbolDisputeConcluded)
	if err != nil {
		return err
	}
	stateHash, err := getHash(m, SymbolDisputeStateHash)
	if err != nil {
		return err
	}
	timeout, err := getUint64(m, SymbolDisputeTimeout)
	if err != nil {
		return err
	}
	version, err := getUint64(m, SymbolDisputeVersion)
	if err != nil {
		return err
	}
	d.Concluded = concluded
	d.StateHash = stateHash
	d.Timeout = timeout
	d.Version = version
	return nil
}

func (d Dispute) EncodeTo(e *xdr3.Encoder) error {
	return encodeTo(e, d)
}

func (d *Dispute) DecodeFrom(dec *xdr3.Decoder) (int, error) {
	return decodeFrom(dec, d.FromScVal)
}

func (d Dispute) MarshalBinary() ([]byte, error) {
	return marshal(d)
}

func (d *Dispute) UnmarshalBinary(data []byte) error {
	return unmarshal(data, d.FromScVal)
}
