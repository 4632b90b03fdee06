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

// Package event defines the events emitted by the adjudicator and the asset holders and an
// in-process bus to observe them.
package event

import (
	"fmt"

	"github.com/holiman/uint256"
	pchannel "perun.network/go-perun/channel"

	"perun.network/perun-adjudicator/channel/types"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

type EventType int

const (
	EventTypeStored     EventType = iota // dispute registered or advanced
	EventTypePayout                      // channel concluded, outcome pushed to the asset holders
	EventTypeDeposited                   // funds credited to a funding ID
	EventTypeOutcomeSet                  // asset holder settled a channel
	EventTypeWithdrawn                   // funds paid out to a receiver
)

func (t EventType) String() string {
	switch t {
	case EventTypeStored:
		return "stored"
	case EventTypePayout:
		return "payout"
	case EventTypeDeposited:
		return "deposited"
	case EventTypeOutcomeSet:
		return "outcome_set"
	case EventTypeWithdrawn:
		return "withdrawn"
	default:
		return fmt.Sprintf("unknown(%d)", int(t))
	}
}

// Event is implemented by all events published on a Bus.
type Event interface {
	Type() EventType
}

type (
	// StoredEvent is emitted when a dispute record is created or replaced.
	StoredEvent struct {
		ID      pchannel.ID
		Version uint64
		Timeout uint64 // unix seconds
	}

	// PayoutEvent is emitted once a channel is concluded.
	PayoutEvent struct {
		ID      pchannel.ID
		Version uint64
	}

	DepositedEvent struct {
		Asset     types.Asset
		FundingID pchannel.ID
		Amount    *uint256.Int
	}

	OutcomeSetEvent struct {
		Asset types.Asset
		ID    pchannel.ID
	}

	WithdrawnEvent struct {
		Asset       types.Asset
		ID          pchannel.ID
		Participant *wtypes.Address
		Receiver    *wtypes.Address
		Amount      *uint256.Int
	}
)

func (StoredEvent) Type() EventType     { return EventTypeStored }
func (PayoutEvent) Type() EventType     { return EventTypePayout }
func (DepositedEvent) Type() EventType  { return EventTypeDeposited }
func (OutcomeSetEvent) Type() EventType { return EventTypeOutcomeSet }
func (WithdrawnEvent) Type() EventType  { return EventTypeWithdrawn }
