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
	"bytes"

	"github.com/google/btree"
	"github.com/holiman/uint256"
	pchannel "perun.network/go-perun/channel"
)

const storeDegree = 8

type amountItem struct {
	key    []byte
	amount *uint256.Int
}

// amountStore maps byte keys to amounts. Missing keys read as zero.
type amountStore struct {
	tree *btree.BTreeG[amountItem]
}

func newAmountStore() *amountStore {
	return &amountStore{
		tree: btree.NewG(storeDegree, func(a, b amountItem) bool {
			return bytes.Compare(a.key, b.key) < 0
		}),
	}
}

func (s *amountStore) get(key []byte) *uint256.Int {
	if item, ok := s.tree.Get(amountItem{key: key}); ok {
		return item.amount.Clone()
	}
	return new(uint256.Int)
}

func (s *amountStore) set(key []byte, amount *uint256.Int) {
	if amount.IsZero() {
		s.tree.Delete(amountItem{key: key})
		return
	}
	s.tree.ReplaceOrInsert(amountItem{key: append([]byte(nil), key...), amount: amount.Clone()})
}

// idSet is a set of channel IDs.
type idSet struct {
	tree *btree.BTreeG[pchannel.ID]
}

func newIDSet() *idSet {
	return &idSet{
		tree: btree.NewG(storeDegree, func(a, b pchannel.ID) bool {
			return bytes.Compare(a[:], b[:]) < 0
		}),
	}
}

func (s *idSet) has(id pchannel.ID) bool {
	return s.tree.Has(id)
}

func (s *idSet) add(id pchannel.ID) {
	s.tree.ReplaceOrInsert(id)
}

func lockedKey(channelID, subID pchannel.ID) []byte {
	return append(channelID[:], subID[:]...)
}
