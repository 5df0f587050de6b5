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

func TestCreateClient(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := clienttypes.MsgCreateClient{
		ClientState:    &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)},
		ConsensusState: &mock.ConsensusState{Timestamp: 1, Root: []byte("root")},
		Signer:         "alice",
	}

	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, msg))

	clientID, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, msg)
	require.NoError(t, err)
	require.Contains(t, clientID, mock.ClientType)

	clients := f.Host.ListClients(ctx)
	// the two pre-registered fixture clients plus the freshly minted one.
	require.Len(t, clients, 3)

	events := f.Host.EventsOfType(clienttypes.EventTypeCreateClient)
	require.Len(t, events, 1)
}

func TestCreateClientRejectsNilClientState(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := clienttypes.MsgCreateClient{
		ConsensusState: &mock.ConsensusState{Timestamp: 1, Root: []byte("root")},
		Signer:         "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.ErrorIs(t, err, clienttypes.ErrInvalidClientState)
}

func TestCreateClientRejectsEmptySigner(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := clienttypes.MsgCreateClient{
		ClientState:    &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)},
		ConsensusState: &mock.ConsensusState{Timestamp: 1, Root: []byte("root")},
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.Error(t, err)
}

func TestTwoCreateClientsMintDistinctIDs(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := clienttypes.MsgCreateClient{
		ClientState:    &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)},
		ConsensusState: &mock.ConsensusState{Timestamp: 1, Root: []byte("root")},
		Signer:         "alice",
	}

	idOne, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, msg)
	require.NoError(t, err)
	idTwo, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, msg)
	require.NoError(t, err)
	require.NotEqual(t, idOne, idTwo)
}

func TestUpdateClientRejectsFrozenClient(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	clientID := f.Host.ClientA()
	clientState, found := f.Host.ClientState(ctx, clientID)
	require.True(t, found)
	mockState := clientState.(*mock.ClientState)
	mockState.Frozen = true
	f.Host.StoreClientState(ctx, clientID, mockState)

	updateMsg := clienttypes.MsgUpdateClient{
		ClientID:      clientID,
		ClientMessage: mock.Header{Height: exported.NewHeight(1, 2), Timestamp: 2, Root: []byte("root-a")},
		Signer:        "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, updateMsg)
	require.ErrorIs(t, err, clienttypes.ErrClientFrozen)
}
