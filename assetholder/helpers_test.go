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

package assetholder_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	pchannel "perun.network/go-perun/channel"
	pwallet "perun.network/go-perun/wallet"

	"perun.network/perun-adjudicator/channel"
	"perun.network/perun-adjudicator/wallet"
	wtypes "perun.network/perun-adjudicator/wallet/types"
)

func fundingID(t *testing.T, id pchannel.ID, part *wtypes.Address) pchannel.ID {
	t.Helper()
	fid, err := channel.FundingID(id, part)
	require.NoError(t, err)
	return fid
}

func signOutcome(t *testing.T, acc *wallet.Account, o channel.Outcome) pwallet.Sig {
	t.Helper()
	sig, err := o.Sign(acc)
	require.NoError(t, err)
	return sig
}
