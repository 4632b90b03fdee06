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

import "errors"

var (
	ErrInvalidChannelID            = errors.New("channel ID does not match parameters")
	ErrSignatureVerificationFailed = errors.New("signature verification failed")
	ErrStaleState                  = errors.New("state and timeout do not match the stored dispute")
	ErrVersionNotIncreased         = errors.New("version not increased")
	ErrVersionMismatch             = errors.New("version must increase by exactly one")
	ErrWrongMover                  = errors.New("state not signed by the next mover")
	ErrAlreadyRegistered           = errors.New("channel already registered")
	ErrNotRegistered               = errors.New("channel not registered")
	ErrTimeoutPassed               = errors.New("challenge timeout passed")
	ErrTimeoutNotPassed            = errors.New("challenge timeout not passed")
	ErrFinalState                  = errors.New("stored state is final")
	ErrNotFinal                    = errors.New("state is not final")
	ErrChannelConcluded            = errors.New("channel already concluded")
	ErrInvalidState                = errors.New("invalid state")
	ErrUnknownAsset                = errors.New("no asset holder bound for asset")
	ErrInvalidTransition           = errors.New("invalid app transition")
	ErrAlreadySettled              = errors.New("channel already settled")
	ErrHolderMismatch              = errors.New("asset holder bound to another adjudicator")
)
