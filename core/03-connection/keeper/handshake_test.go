package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/testutil"
)

// TestConnectionHandshake drives the full four-step ICS-03 handshake
// (OpenInit -> OpenTry -> OpenAck -> OpenConfirm) through a single fixture.
// The mock light client's VerifyMembership only checks that a proof equals
// the expected value byte-for-byte (modules/lightclients/mock.verifyProof),
// so every proof below is built by recomputing, in the test, the exact
// ConnectionEnd/ClientState/ConsensusState bytes the keeper itself expects -
// mirroring how ibc-go's own connection keeper tests drive the handshake
// against a mock client without a real counterparty chain.
func TestConnectionHandshake(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	clientA := f.Host.ClientA()
	clientB := f.Host.ClientB()
	height := exported.NewHeight(1, 1)
	prefix := f.Host.CommitmentPrefix(ctx)

	hostConsensus := &mock.ConsensusState{Timestamp: 1, Root: []byte("root-host")}
	f.Host.StoreHostConsensusState(ctx, height, hostConsensus)

	// --- OpenInit (chain A) ---
	initMsg := connectiontypes.MsgConnectionOpenInit{
		ClientID: clientA,
		Counterparty: connectiontypes.Counterparty{
			ClientID: clientB,
			Prefix:   prefix,
		},
		Signer: "alice",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, initMsg))
	connA, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, initMsg)
	require.NoError(t, err)

	storedA, found := f.Host.ConnectionEnd(ctx, connA)
	require.True(t, found)
	require.Equal(t, connectiontypes.Init, storedA.State)

	// --- OpenTry (chain B) ---
	counterpartyClientState := &mock.ClientState{LatestHeightValue: height}
	tryMsg := connectiontypes.MsgConnectionOpenTry{
		ClientID:    clientB,
		ClientState: counterpartyClientState,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     clientA,
			ConnectionID: connA,
			Prefix:       prefix,
		},
		CounterpartyVersions: connectiontypes.SupportedVersions,
		ProofHeight:          height,
		ConsensusHeight:      height,
		ProofInit:            storedA.Marshal(),
		ProofClient:          counterpartyClientState.Marshal(),
		ProofConsensus:       hostConsensus.Marshal(),
		Signer:               "bob",
	}
	// expectedConn, as ValidateConnectionOpenTry computes it, must equal the
	// connection OpenInit just stored.
	expectedFromInit := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Init,
		ClientID: tryMsg.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID: tryMsg.ClientID,
			Prefix:   prefix,
		},
		Versions:    tryMsg.CounterpartyVersions,
		DelayPeriod: tryMsg.DelayPeriod,
	}
	require.Equal(t, expectedFromInit.Marshal(), storedA.Marshal())

	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, tryMsg))
	connB, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, tryMsg)
	require.NoError(t, err)

	storedB, found := f.Host.ConnectionEnd(ctx, connB)
	require.True(t, found)
	require.Equal(t, connectiontypes.TryOpen, storedB.State)

	// --- OpenAck (chain A) ---
	selfClientState := &mock.ClientState{LatestHeightValue: height}
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

	storedA, found = f.Host.ConnectionEnd(ctx, connA)
	require.True(t, found)
	require.Equal(t, connectiontypes.Open, storedA.State)
	require.Equal(t, connB, storedA.Counterparty.ConnectionID)

	// --- OpenConfirm (chain B) ---
	confirmMsg := connectiontypes.MsgConnectionOpenConfirm{
		ConnectionID: connB,
		ProofHeight:  height,
		ProofAck:     storedA.Marshal(),
		Signer:       "bob",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, confirmMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, confirmMsg)
	require.NoError(t, err)

	storedB, found = f.Host.ConnectionEnd(ctx, connB)
	require.True(t, found)
	require.Equal(t, connectiontypes.Open, storedB.State)
	require.True(t, storedB.IsOpen())
	require.True(t, storedA.IsOpen())
}

func TestConnectionOpenInitRejectsUnknownClient(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := connectiontypes.MsgConnectionOpenInit{
		ClientID: "99-mock-0",
		Counterparty: connectiontypes.Counterparty{
			ClientID: "counterparty-client",
			Prefix:   f.Host.CommitmentPrefix(ctx),
		},
		Signer: "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.Error(t, err)
}

func TestConnectionOpenInitRejectsUnsupportedVersion(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	bogus := connectiontypes.NewVersion("unsupported-version")
	msg := connectiontypes.MsgConnectionOpenInit{
		ClientID: f.Host.ClientA(),
		Counterparty: connectiontypes.Counterparty{
			ClientID: f.Host.ClientB(),
			Prefix:   f.Host.CommitmentPrefix(ctx),
		},
		Version: &bogus,
		Signer:  "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.ErrorIs(t, err, connectiontypes.ErrInvalidVersion)
}

func TestConnectionOpenAckRejectsUnknownConnection(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	msg := connectiontypes.MsgConnectionOpenAck{
		ConnectionID:             "connection-404",
		ClientState:              &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)},
		Version:                  connectiontypes.DefaultVersion,
		CounterpartyConnectionID: "connection-405",
		ProofHeight:              exported.NewHeight(1, 1),
		ConsensusHeight:          exported.NewHeight(1, 1),
		Signer:                   "alice",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.ErrorIs(t, err, connectiontypes.ErrConnectionNotFound)
}

func TestConnectionOpenTryRejectsFutureConsensusHeight(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	future := exported.NewHeight(1, 1000)
	msg := connectiontypes.MsgConnectionOpenTry{
		ClientID:    f.Host.ClientB(),
		ClientState: &mock.ClientState{LatestHeightValue: future},
		Counterparty: connectiontypes.Counterparty{
			ClientID:     f.Host.ClientA(),
			ConnectionID: "connection-0",
			Prefix:       f.Host.CommitmentPrefix(ctx),
		},
		CounterpartyVersions: connectiontypes.SupportedVersions,
		ProofHeight:          future,
		ConsensusHeight:      future,
		Signer:               "bob",
	}
	err := f.Dispatcher.ValidateMsg(ctx, f.Host, msg)
	require.ErrorIs(t, err, connectiontypes.ErrConsensusHeightTooHigh)
}
