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

package assetholder

import (
	"errors"

	"perun.network/perun-adjudicator/channel"
)

var (
	ErrInsufficientValue = errors.New("attached value does not match amount")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAlreadySettled    = channel.ErrAlreadySettled
	ErrNotSettled        = errors.New("channel not settled")
	ErrInvalidOutcome    = errors.New("invalid outcome")
	ErrBalanceOverflow   = errors.New("balance overflow")
)
