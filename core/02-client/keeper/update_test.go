package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/testutil"
)

func TestUpgradeClientReplacesStateWithValidProof(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	clientID := f.Host.ClientA()

	newClient := &mock.ClientState{LatestHeightValue: exported.NewHeight(2, 1)}
	newConsensus := &mock.ConsensusState{Timestamp: 2, Root: []byte("root-a-upgraded")}

	msg := clienttypes.MsgUpgradeClient{
		ClientID:                   clientID,
		ClientState:                newClient,
		ConsensusState:             newConsensus,
		ProofUpgradeClient:         newClient.Marshal(),
		ProofUpgradeConsensusState: newConsensus.Marshal(),
		Signer:                     "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, msg))
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, msg)
	require.NoError(t, err)

	stored, found := f.Host.ClientState(ctx, clientID)
	require.True(t, found)
	require.Equal(t, newClient.LatestHeightValue, stored.LatestHeight())

	events := f.Host.EventsOfType(clienttypes.EventTypeUpgradeClient)
	require.Len(t, events, 1)
}

// TestUpgradeClientRejectsUnverifiedProof confirms that an upgrade whose
// proof bytes do not actually commit to the replacement client/consensus
// state is rejected rather than silently accepted: the security-critical
// check UpgradeClient exists for is that the counterparty chain, not an
// arbitrary caller, authorized this exact replacement.
func TestUpgradeClientRejectsUnverifiedProof(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	clientID := f.Host.ClientA()

	newClient := &mock.ClientState{LatestHeightValue: exported.NewHeight(2, 1)}
	newConsensus := &mock.ConsensusState{Timestamp: 2, Root: []byte("root-a-upgraded")}

	msg := clienttypes.MsgUpgradeClient{
		ClientID:                   clientID,
		ClientState:                newClient,
		ConsensusState:             newConsensus,
		ProofUpgradeClient:         []byte("not-the-committed-client-bytes"),
		ProofUpgradeConsensusState: newConsensus.Marshal(),
		Signer:                     "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.ErrorIs(t, err, clienttypes.ErrUpgradeVerificationFailed)

	stored, found := f.Host.ClientState(ctx, clientID)
	require.True(t, found)
	require.NotEqual(t, newClient.LatestHeightValue, stored.LatestHeight())
}
