package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/apps/mock"
	mockclient "github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/testutil"
)

const portID = "transfer"

// openConnectionPair drives the ICS-03 handshake to completion between
// the fixture's two mock clients and returns the resulting pair of Open
// connection IDs, the shared setup every channel test in this package
// builds on.
func openConnectionPair(t *testing.T, f *testutil.Fixture) (connA, connB string) {
	t.Helper()
	ctx := context.Background()
	clientA := f.Host.ClientA()
	clientB := f.Host.ClientB()
	height := exported.NewHeight(1, 1)
	prefix := f.Host.CommitmentPrefix(ctx)

	hostConsensus := &mockclient.ConsensusState{Timestamp: 1, Root: []byte("root-host")}
	f.Host.StoreHostConsensusState(ctx, height, hostConsensus)

	initMsg := connectiontypes.MsgConnectionOpenInit{
		ClientID:     clientA,
		Counterparty: connectiontypes.Counterparty{ClientID: clientB, Prefix: prefix},
		Signer:       "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, initMsg))
	connA, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, initMsg)
	require.NoError(t, err)
	storedA, _ := f.Host.ConnectionEnd(ctx, connA)

	counterpartyClientState := &mockclient.ClientState{LatestHeightValue: height}
	tryMsg := connectiontypes.MsgConnectionOpenTry{
		ClientID:             clientB,
		ClientState:          counterpartyClientState,
		Counterparty:         connectiontypes.Counterparty{ClientID: clientA, ConnectionID: connA, Prefix: prefix},
		CounterpartyVersions: connectiontypes.SupportedVersions,
		ProofHeight:          height,
		ConsensusHeight:      height,
		ProofInit:            storedA.Marshal(),
		ProofClient:          counterpartyClientState.Marshal(),
		ProofConsensus:       hostConsensus.Marshal(),
		Signer:               "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, tryMsg))
	connB, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, tryMsg)
	require.NoError(t, err)
	storedB, _ := f.Host.ConnectionEnd(ctx, connB)

	selfClientState := &mockclient.ClientState{LatestHeightValue: height}
	ackMsg := connectiontypes.MsgConnectionOpenAck{
		ConnectionID:             connA,
		ClientState:              selfClientState,
		Version:                  connectiontypes.DefaultVersion,
		CounterpartyConnectionID: connB,
		ProofHeight:              height,
		ConsensusHeight:          height,
		ProofTry:                 storedB.Marshal(),
		ProofClient:              selfClientState.Marshal(),
		ProofConsensus:           hostConsensus.Marshal(),
		Signer:                   "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, ackMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, ackMsg)
	require.NoError(t, err)
	storedA, _ = f.Host.ConnectionEnd(ctx, connA)

	confirmMsg := connectiontypes.MsgConnectionOpenConfirm{
		ConnectionID: connB,
		ProofHeight:  height,
		ProofAck:     storedA.Marshal(),
		Signer:       "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, confirmMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, confirmMsg)
	require.NoError(t, err)

	return connA, connB
}

// openChannelPair drives the ICS-04 handshake to completion over an
// already-open connection pair and returns the resulting Open channel
// IDs on port portID, both bound to a fresh mock echo module.
func openChannelPair(t *testing.T, f *testutil.Fixture, connA, connB string, ordering channeltypes.Order) (channelA, channelB string) {
	t.Helper()
	ctx := context.Background()
	height := exported.NewHeight(1, 1)

	require.NoError(t, f.Router.BindPort(portID, mock.NewModule()))

	initMsg := channeltypes.MsgChannelOpenInit{
		PortID:         portID,
		Ordering:       ordering,
		ConnectionHops: []string{connA},
		Counterparty:   channeltypes.Counterparty{PortID: portID},
		Version:        mock.Version,
		Signer:         "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, initMsg))
	channelA, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, initMsg)
	require.NoError(t, err)
	storedA, _ := f.Host.ChannelEnd(ctx, portID, channelA)

	tryMsg := channeltypes.MsgChannelOpenTry{
		PortID:              portID,
		Ordering:            ordering,
		ConnectionHops:      []string{connB},
		Counterparty:        channeltypes.Counterparty{PortID: portID, ChannelID: channelA},
		CounterpartyVersion: mock.Version,
		ProofHeight:         height,
		ProofInit:           storedA.Marshal(),
		Signer:              "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, tryMsg))
	channelB, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, tryMsg)
	require.NoError(t, err)
	storedB, _ := f.Host.ChannelEnd(ctx, portID, channelB)

	ackMsg := channeltypes.MsgChannelOpenAck{
		PortID:                portID,
		ChannelID:             channelA,
		CounterpartyChannelID: channelB,
		CounterpartyVersion:   mock.Version,
		ProofHeight:           height,
		ProofTry:              storedB.Marshal(),
		Signer:                "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, ackMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, ackMsg)
	require.NoError(t, err)
	storedA, _ = f.Host.ChannelEnd(ctx, portID, channelA)

	confirmMsg := channeltypes.MsgChannelOpenConfirm{
		PortID:      portID,
		ChannelID:   channelB,
		ProofHeight: height,
		ProofAck:    storedA.Marshal(),
		Signer:      "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, confirmMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, confirmMsg)
	require.NoError(t, err)

	return channelA, channelB
}

func TestChannelHandshake(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	endA, found := f.Host.ChannelEnd(ctx, portID, channelA)
	require.True(t, found)
	require.True(t, endA.IsOpen())
	require.Equal(t, channelB, endA.Counterparty.ChannelID)

	endB, found := f.Host.ChannelEnd(ctx, portID, channelB)
	require.True(t, found)
	require.True(t, endB.IsOpen())
	require.Equal(t, channelA, endB.Counterparty.ChannelID)
}

func TestChannelOpenInitRejectsUnboundPort(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, _ := openConnectionPair(t, f)

	msg := channeltypes.MsgChannelOpenInit{
		PortID:         "unbound",
		Ordering:       channeltypes.Unordered,
		ConnectionHops: []string{connA},
		Counterparty:   channeltypes.Counterparty{PortID: "unbound"},
		Version:        mock.Version,
		Signer:         "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.Error(t, err)
}

func TestChannelCloseInitThenCloseConfirm(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	closeInit := channeltypes.MsgChannelCloseInit{PortID: portID, ChannelID: channelA, Signer: "alice"}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, closeInit))
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, closeInit)
	require.NoError(t, err)

	closedA, found := f.Host.ChannelEnd(ctx, portID, channelA)
	require.True(t, found)
	require.Equal(t, channeltypes.Closed, closedA.State)

	closeConfirm := channeltypes.MsgChannelCloseConfirm{
		PortID:      portID,
		ChannelID:   channelB,
		ProofHeight: exported.NewHeight(1, 1),
		ProofInit:   closedA.Marshal(),
		Signer:      "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, closeConfirm))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, closeConfirm)
	require.NoError(t, err)

	closedB, found := f.Host.ChannelEnd(ctx, portID, channelB)
	require.True(t, found)
	require.Equal(t, channeltypes.Closed, closedB.State)
}

func TestChannelCloseInitRejectsAlreadyClosed(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, _ := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	closeInit := channeltypes.MsgChannelCloseInit{PortID: portID, ChannelID: channelA, Signer: "alice"}
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, closeInit)
	require.NoError(t, err)

	err = f.Dispatcher.ValidateMsg(ctx, f.Host, closeInit)
	require.ErrorIs(t, err, channeltypes.ErrInvalidChannelState)
}
