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
	"context"
	"fmt"

	"github.com/holiman/uint256"
	"polycry.pt/poly-go/sync"

	"perun.network/perun-adjudicator/channel/types"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

// Payer transfers withdrawn funds to their receiver.
type Payer interface {
	Pay(ctx context.Context, asset types.Asset, receiver *wtypes.Address, amount *uint256.Int) error
}

// Bank is an in-memory Payer that credits receivers.
type Bank struct {
	mu       sync.Mutex
	balances map[string]*uint256.Int
}

// NewBank returns an empty Bank.
func NewBank() *Bank {
	return &Bank{balances: make(map[string]*uint256.Int)}
}

func bankKey(asset types.Asset, receiver *wtypes.Address) string {
	return string(asset.MapKey()) + receiver.String()
}

// Pay credits amount of asset to receiver.
func (b *Bank) Pay(ctx context.Context, asset types.Asset, receiver *wtypes.Address, amount *uint256.Int) error {
	if !b.mu.TryLockCtx(ctx) {
		return ctx.Err()
	}
	defer b.mu.Unlock()
	k := bankKey(asset, receiver)
	bal, ok := b.balances[k]
	if !ok {
		bal = new(uint256.Int)
	}
	sum, overflow := new(uint256.Int).AddOverflow(bal, amount)
	if overflow {
		return fmt.Errorf("%w: paying %v", ErrBalanceOverflow, receiver)
	}
	b.balances[k] = sum
	return nil
}

// Balance returns the amount of asset paid to receiver so far.
func (b *Bank) Balance(asset types.Asset, receiver *wtypes.Address) *uint256.Int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if bal, ok := b.balances[bankKey(asset, receiver)]; ok {
		return bal.Clone()
	}
	return new(uint256.Int)
}
