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

package channel

import (
	"fmt"

	"github.com/stellar/go/xdr"
	pchannel "perun.network/go-perun/channel"

	"perun.network/perun-adjudicator/wire"
)

// State is an off-chain channel state. It is only valid together with a signature of every
// participant over its encoding.
type State struct {
	ID       pchannel.ID
	Version  uint64
	MoverIdx uint64
	Outcome  Allocation
	AppData  []byte
	IsFinal  bool
}

// Clone returns a deep copy of the state.
func (s *State) Clone() *State {
	return &State{
		ID:       s.ID,
		Version:  s.Version,
		MoverIdx: s.MoverIdx,
		Outcome:  s.Outcome.Clone(),
		AppData:  append([]byte(nil), s.AppData...),
		IsFinal:  s.IsFinal,
	}
}

// ValidFor checks that the state belongs to the channel with the given parameters and is well
// formed for it.
func (s *State) ValidFor(params *Params) error {
	id, err := params.ID()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidChannelID, err)
	}
	if s.ID != id {
		return ErrInvalidChannelID
	}
	if s.MoverIdx >= uint64(params.NumParts()) {
		return fmt.Errorf("%w: mover index %d out of range", ErrInvalidState, s.MoverIdx)
	}
	return s.Outcome.Valid(params.NumParts())
}

// ToWire converts the state into its canonical encoding.
func (s *State) ToWire() (wire.State, error) {
	outcome, err := s.Outcome.ToWire()
	if err != nil {
		return wire.State{}, err
	}
	id := s.ID
	return wire.State{
		ChannelID: id[:],
		Version:   xdr.Uint64(s.Version),
		MoverIdx:  xdr.Uint64(s.MoverIdx),
		Outcome:   outcome,
		AppData:   append(xdr.ScBytes{}, s.AppData...),
		IsFinal:   s.IsFinal,
	}, nil
}

// StateFromWire decodes a state from its canonical encoding.
func StateFromWire(w wire.State) (*State, error) {
	outcome, err := AllocationFromWire(w.Outcome)
	if err != nil {
		return nil, err
	}
	s := &State{
		Version:  uint64(w.Version),
		MoverIdx: uint64(w.MoverIdx),
		Outcome:  outcome,
		AppData:  w.AppData,
		IsFinal:  w.IsFinal,
	}
	copy(s.ID[:], w.ChannelID)
	return s, nil
}
