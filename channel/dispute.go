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
	"bytes"

	"github.com/google/btree"
	"github.com/stellar/go/xdr"
	pchannel "perun.network/go-perun/channel"

	"perun.network/perun-adjudicator/wire"
)

const storeDegree = 8

// DisputeRecord is the adjudicator's view of a channel: the hash of the best state registered so
// far, the deadline until which it can be challenged and its version. Concluded records are kept
// to reject any further operation on the channel.
type DisputeRecord struct {
	StateHash pchannel.ID
	Timeout   uint64
	Version   uint64
	Concluded bool
}

// ToWire converts the record into its canonical encoding.
func (r DisputeRecord) ToWire() wire.Dispute {
	h := r.StateHash
	return wire.Dispute{
		StateHash: h[:],
		Timeout:   xdr.Uint64(r.Timeout),
		Version:   xdr.Uint64(r.Version),
		Concluded: r.Concluded,
	}
}

// DisputeRecordFromWire decodes a record from its canonical encoding.
func DisputeRecordFromWire(w wire.Dispute) DisputeRecord {
	r := DisputeRecord{
		Timeout:   uint64(w.Timeout),
		Version:   uint64(w.Version),
		Concluded: w.Concluded,
	}
	copy(r.StateHash[:], w.StateHash)
	return r
}

type recordItem struct {
	id   pchannel.ID
	data []byte
}

// recordStore maps channel IDs to encoded dispute records.
type recordStore struct {
	tree *btree.BTreeG[recordItem]
	open int
}

func newRecordStore() *recordStore {
	return &recordStore{
		tree: btree.NewG(storeDegree, func(a, b recordItem) bool {
			return bytes.Compare(a.id[:], b.id[:]) < 0
		}),
	}
}

func (s *recordStore) get(id pchannel.ID) (DisputeRecord, bool, error) {
	item, ok := s.tree.Get(recordItem{id: id})
	if !ok {
		return DisputeRecord{}, false, nil
	}
	var w wire.Dispute
	if err := w.UnmarshalBinary(item.data); err != nil {
		return DisputeRecord{}, false, err
	}
	return DisputeRecordFromWire(w), true, nil
}

func (s *recordStore) put(id pchannel.ID, r DisputeRecord) error {
	data, err := r.ToWire().MarshalBinary()
	if err != nil {
		return err
	}
	prev, replaced := s.tree.ReplaceOrInsert(recordItem{id: id, data: data})
	if replaced {
		var w wire.Dispute
		if err := w.UnmarshalBinary(prev.data); err == nil && !w.Concluded {
			s.open--
		}
	}
	if !r.Concluded {
		s.open++
	}
	return nil
}

// openDisputes returns the number of registered channels that are not concluded.
func (s *recordStore) openDisputes() int {
	return s.open
}

// ids returns the IDs of all channels with a record in ascending order.
func (s *recordStore) ids() []pchannel.ID {
	ids := make([]pchannel.ID, 0, s.tree.Len())
	s.tree.Ascend(func(item recordItem) bool {
		ids = append(ids, item.id)
		return true
	})
	return ids
}
