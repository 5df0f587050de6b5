package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// checkConsensusHeight is the validation shared by every handshake step
// that carries a consensus_height: it must not be
// ahead of the host's own height, and the host must not have pruned its
// own historical consensus state at that height.
func checkConsensusHeight(ctx context.Context, vctx host.ValidationContext, consensusHeight exported.Height) error {
	if consensusHeight.GT(vctx.HostHeight(ctx)) {
		return errorsmod.Wrapf(connectiontypes.ErrConsensusHeightTooHigh, "height %s", consensusHeight)
	}
	if _, found := vctx.HostConsensusState(ctx, consensusHeight); !found {
		return errorsmod.Wrapf(connectiontypes.ErrConsensusStatePruned, "height %s", consensusHeight)
	}
	return nil
}

// ValidateConnectionOpenInit checks the read-only preconditions for
// OpenInit: the local client is active, and
// any offered version is one this engine actually supports.
func (k Keeper) ValidateConnectionOpenInit(ctx context.Context, vctx host.ValidationContext, msg connectiontypes.MsgConnectionOpenInit) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	if _, err := k.clientKeeper.RequireActive(ctx, vctx, msg.ClientID); err != nil {
		return err
	}
	if err := host.ValidateIdentifier(msg.Counterparty.ClientID, "counterparty client"); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrInvalidCounterparty, err.Error())
	}
	if msg.Version != nil && !connectiontypes.ContainsVersion(connectiontypes.SupportedVersions, *msg.Version) {
		return errorsmod.Wrapf(connectiontypes.ErrInvalidVersion, "unsupported version %q", msg.Version.Identifier)
	}
	return nil
}

// ExecuteConnectionOpenInit mints a connection ID and stores the new
// connection in the Init state. Returns the minted connection ID.
func (k Keeper) ExecuteConnectionOpenInit(ctx context.Context, ectx host.ExecutionContext, msg connectiontypes.MsgConnectionOpenInit) (string, error) {
	counter := ectx.IncreaseConnectionCounter(ctx)
	if counter == math.MaxUint64 {
		return "", errorsmod.Wrap(connectiontypes.ErrConnectionCounterExceed, "cannot mint a new connection identifier")
	}
	connectionID := host.FormatCounterID("connection", counter)

	versions := connectiontypes.SupportedVersions
	if msg.Version != nil {
		versions = []connectiontypes.Version{*msg.Version}
	}

	conn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Init,
		ClientID: msg.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID: msg.Counterparty.ClientID,
			Prefix:   msg.Counterparty.Prefix,
		},
		Versions:    versions,
		DelayPeriod: msg.DelayPeriod,
	}
	ectx.StoreConnection(ctx, connectionID, conn)
	ectx.StoreConnectionToClient(ctx, msg.ClientID, connectionID)

	ectx.EmitEvent(ctx, host.NewEvent(connectiontypes.EventTypeConnectionOpenInit,
		host.NewAttribute(connectiontypes.AttributeKeyConnectionID, connectionID),
		host.NewAttribute(connectiontypes.AttributeKeyClientID, msg.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyClientID, msg.Counterparty.ClientID),
	))
	ectx.LogMessage(ctx, "connection "+connectionID+" initialized")
	return connectionID, nil
}

// ValidateConnectionOpenTry checks OpenTry's preconditions: the local
// client of the initiator is active, the consensus height is usable, a
// mutually supported version exists, the initiator's self-reported
// client state of this chain validates, and all three proofs (init,
// client, consensus) verify against the initiator's committed state.
func (k Keeper) ValidateConnectionOpenTry(ctx context.Context, vctx host.ValidationContext, msg connectiontypes.MsgConnectionOpenTry) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	clientState, err := k.clientKeeper.RequireActive(ctx, vctx, msg.ClientID)
	if err != nil {
		return err
	}
	if err := checkConsensusHeight(ctx, vctx, msg.ConsensusHeight); err != nil {
		return err
	}
	if _, ok := connectiontypes.PickVersion(connectiontypes.SupportedVersions, msg.CounterpartyVersions); !ok {
		return errorsmod.Wrap(connectiontypes.ErrInvalidVersion, "no mutually supported version")
	}
	if err := vctx.ValidateSelfClient(ctx, msg.ClientState); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrClientVerification, err.Error())
	}

	clientStore := vctx.ClientStore(ctx, msg.ClientID)
	hostConsensus, _ := vctx.HostConsensusState(ctx, msg.ConsensusHeight)

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Init,
		ClientID: msg.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID: msg.ClientID,
			Prefix:   vctx.CommitmentPrefix(ctx),
		},
		Versions:    msg.CounterpartyVersions,
		DelayPeriod: msg.DelayPeriod,
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofInit, msg.Counterparty.Prefix, host.ConnectionPath(msg.Counterparty.ConnectionID), expectedConn.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrConnectionVerification, err.Error())
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofClient, msg.Counterparty.Prefix, host.ClientStatePath(msg.Counterparty.ClientID), msg.ClientState.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrClientVerification, err.Error())
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofConsensus, msg.Counterparty.Prefix, host.ConsensusStatePath(msg.Counterparty.ClientID, msg.ConsensusHeight), hostConsensus.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrConsensusVerification, err.Error())
	}
	return nil
}

// ExecuteConnectionOpenTry mints a connection ID, picks the version, and
// stores the new connection in the TryOpen state.
func (k Keeper) ExecuteConnectionOpenTry(ctx context.Context, ectx host.ExecutionContext, msg connectiontypes.MsgConnectionOpenTry) (string, error) {
	counter := ectx.IncreaseConnectionCounter(ctx)
	if counter == math.MaxUint64 {
		return "", errorsmod.Wrap(connectiontypes.ErrConnectionCounterExceed, "cannot mint a new connection identifier")
	}
	connectionID := host.FormatCounterID("connection", counter)

	version, _ := connectiontypes.PickVersion(connectiontypes.SupportedVersions, msg.CounterpartyVersions)
	conn := connectiontypes.ConnectionEnd{
		State:        connectiontypes.TryOpen,
		ClientID:     msg.ClientID,
		Counterparty: msg.Counterparty,
		Versions:     []connectiontypes.Version{version},
		DelayPeriod:  msg.DelayPeriod,
	}
	ectx.StoreConnection(ctx, connectionID, conn)
	ectx.StoreConnectionToClient(ctx, msg.ClientID, connectionID)

	ectx.EmitEvent(ctx, host.NewEvent(connectiontypes.EventTypeConnectionOpenTry,
		host.NewAttribute(connectiontypes.AttributeKeyConnectionID, connectionID),
		host.NewAttribute(connectiontypes.AttributeKeyClientID, msg.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyClientID, msg.Counterparty.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyConnectionID, msg.Counterparty.ConnectionID),
	))
	ectx.LogMessage(ctx, "connection "+connectionID+" set to try-open")
	return connectionID, nil
}

// ValidateConnectionOpenAck checks OpenAck's preconditions: the
// connection exists and is in Init or TryOpen, the counterparty's chosen
// version is one this chain actually offered, and the try/client/
// consensus proofs verify against the counterparty's committed TryOpen
// state.
func (k Keeper) ValidateConnectionOpenAck(ctx context.Context, vctx host.ValidationContext, msg connectiontypes.MsgConnectionOpenAck) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	conn, found := vctx.ConnectionEnd(ctx, msg.ConnectionID)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s", msg.ConnectionID)
	}
	if conn.State != connectiontypes.Init && conn.State != connectiontypes.TryOpen {
		return errorsmod.Wrapf(connectiontypes.ErrInvalidConnectionState, "connection %s is in state %s", msg.ConnectionID, conn.State)
	}
	clientState, err := k.clientKeeper.RequireActive(ctx, vctx, conn.ClientID)
	if err != nil {
		return err
	}
	if !connectiontypes.ContainsVersion(connectiontypes.SupportedVersions, msg.Version) {
		return errorsmod.Wrapf(connectiontypes.ErrInvalidVersion, "version %q was never offered", msg.Version.Identifier)
	}
	if err := checkConsensusHeight(ctx, vctx, msg.ConsensusHeight); err != nil {
		return err
	}
	if err := vctx.ValidateSelfClient(ctx, msg.ClientState); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrClientVerification, err.Error())
	}

	clientStore := vctx.ClientStore(ctx, conn.ClientID)
	hostConsensus, _ := vctx.HostConsensusState(ctx, msg.ConsensusHeight)

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.TryOpen,
		ClientID: conn.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     conn.ClientID,
			ConnectionID: msg.ConnectionID,
			Prefix:       vctx.CommitmentPrefix(ctx),
		},
		Versions:    []connectiontypes.Version{msg.Version},
		DelayPeriod: conn.DelayPeriod,
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofTry, conn.Counterparty.Prefix, host.ConnectionPath(msg.CounterpartyConnectionID), expectedConn.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrConnectionVerification, err.Error())
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofClient, conn.Counterparty.Prefix, host.ClientStatePath(conn.Counterparty.ClientID), msg.ClientState.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrClientVerification, err.Error())
	}
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofConsensus, conn.Counterparty.Prefix, host.ConsensusStatePath(conn.Counterparty.ClientID, msg.ConsensusHeight), hostConsensus.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrConsensusVerification, err.Error())
	}
	return nil
}

// ExecuteConnectionOpenAck transitions the connection to Open, recording
// the counterparty's connection ID and the single negotiated version.
func (k Keeper) ExecuteConnectionOpenAck(ctx context.Context, ectx host.ExecutionContext, msg connectiontypes.MsgConnectionOpenAck) error {
	conn, found := ectx.ConnectionEnd(ctx, msg.ConnectionID)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s", msg.ConnectionID)
	}
	conn.State = connectiontypes.Open
	conn.Counterparty.ConnectionID = msg.CounterpartyConnectionID
	conn.Versions = []connectiontypes.Version{msg.Version}
	ectx.StoreConnection(ctx, msg.ConnectionID, conn)

	ectx.EmitEvent(ctx, host.NewEvent(connectiontypes.EventTypeConnectionOpenAck,
		host.NewAttribute(connectiontypes.AttributeKeyConnectionID, msg.ConnectionID),
		host.NewAttribute(connectiontypes.AttributeKeyClientID, conn.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyClientID, conn.Counterparty.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyConnectionID, msg.CounterpartyConnectionID),
	))
	ectx.LogMessage(ctx, "connection "+msg.ConnectionID+" opened")
	return nil
}

// ValidateConnectionOpenConfirm checks OpenConfirm's preconditions: the
// connection exists and is TryOpen, and the ack proof verifies the
// counterparty already observed this connection as Open.
func (k Keeper) ValidateConnectionOpenConfirm(ctx context.Context, vctx host.ValidationContext, msg connectiontypes.MsgConnectionOpenConfirm) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	conn, found := vctx.ConnectionEnd(ctx, msg.ConnectionID)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s", msg.ConnectionID)
	}
	if conn.State != connectiontypes.TryOpen {
		return errorsmod.Wrapf(connectiontypes.ErrInvalidConnectionState, "connection %s is in state %s", msg.ConnectionID, conn.State)
	}
	clientState, err := k.clientKeeper.RequireActive(ctx, vctx, conn.ClientID)
	if err != nil {
		return err
	}

	expectedConn := connectiontypes.ConnectionEnd{
		State:    connectiontypes.Open,
		ClientID: conn.Counterparty.ClientID,
		Counterparty: connectiontypes.Counterparty{
			ClientID:     conn.ClientID,
			ConnectionID: msg.ConnectionID,
			Prefix:       vctx.CommitmentPrefix(ctx),
		},
		Versions:    conn.Versions,
		DelayPeriod: conn.DelayPeriod,
	}
	clientStore := vctx.ClientStore(ctx, conn.ClientID)
	if err := clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofAck, conn.Counterparty.Prefix, host.ConnectionPath(conn.Counterparty.ConnectionID), expectedConn.Marshal()); err != nil {
		return errorsmod.Wrap(connectiontypes.ErrConnectionVerification, err.Error())
	}
	return nil
}

// ExecuteConnectionOpenConfirm transitions the connection to Open.
func (k Keeper) ExecuteConnectionOpenConfirm(ctx context.Context, ectx host.ExecutionContext, msg connectiontypes.MsgConnectionOpenConfirm) error {
	conn, found := ectx.ConnectionEnd(ctx, msg.ConnectionID)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s", msg.ConnectionID)
	}
	conn.State = connectiontypes.Open
	ectx.StoreConnection(ctx, msg.ConnectionID, conn)

	ectx.EmitEvent(ctx, host.NewEvent(connectiontypes.EventTypeConnectionOpenConfirm,
		host.NewAttribute(connectiontypes.AttributeKeyConnectionID, msg.ConnectionID),
		host.NewAttribute(connectiontypes.AttributeKeyClientID, conn.ClientID),
		host.NewAttribute(connectiontypes.AttributeKeyCounterpartyConnectionID, conn.Counterparty.ConnectionID),
	))
	ectx.LogMessage(ctx, "connection "+msg.ConnectionID+" confirmed open")
	return nil
}

// RequireOpen returns an error unless connectionID names an Open
// connection whose client is active, the shared precondition every
// channel operation that flows over it checks.
func (k Keeper) RequireOpen(ctx context.Context, vctx host.ValidationContext, connectionID string) (connectiontypes.ConnectionEnd, exported.ClientState, error) {
	conn, found := vctx.ConnectionEnd(ctx, connectionID)
	if !found {
		return connectiontypes.ConnectionEnd{}, nil, errorsmod.Wrapf(connectiontypes.ErrConnectionNotFound, "connection %s", connectionID)
	}
	if conn.State != connectiontypes.Open {
		return connectiontypes.ConnectionEnd{}, nil, errorsmod.Wrapf(connectiontypes.ErrInvalidConnectionState, "connection %s is in state %s", connectionID, conn.State)
	}
	clientState, err := k.clientKeeper.RequireActive(ctx, vctx, conn.ClientID)
	if err != nil {
		return connectiontypes.ConnectionEnd{}, nil, err
	}
	return conn, clientState, nil
}
