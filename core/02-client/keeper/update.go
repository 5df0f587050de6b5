package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	"github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// ValidateUpdateClient checks that the client exists, is not frozen, and
// that the supplied client message verifies against it.
// VerifyClientMessage is itself a read-only check: it is the client
// variant's job to prove the message is internally consistent without
// mutating any stored state.
func (k Keeper) ValidateUpdateClient(ctx context.Context, vctx host.ValidationContext, msg clienttypes.MsgUpdateClient) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}

	clientState, found := vctx.ClientState(ctx, msg.ClientID)
	if !found {
		return errorsmod.Wrapf(clienttypes.ErrClientNotFound, "client %s", msg.ClientID)
	}
	if status(ctx, vctx, msg.ClientID, clientState) == exported.Frozen {
		return errorsmod.Wrapf(clienttypes.ErrClientFrozen, "client %s", msg.ClientID)
	}

	store := vctx.ClientStore(ctx, msg.ClientID)
	ctx = exported.WithHostTimestamp(ctx, vctx.HostTimestamp(ctx))
	if err := clientState.VerifyClientMessage(ctx, store, msg.ClientMessage); err != nil {
		return errorsmod.Wrap(clienttypes.ErrClientMessageVerification, err.Error())
	}
	return nil
}

// ExecuteUpdateClient re-derives the (already verified) outcome of
// ValidateUpdateClient and applies it: on detected misbehaviour the
// client is frozen and a misbehaviour event is emitted instead of a
// normal update; otherwise UpdateState's new heights are stored with
// their processed time/height bookkeeping.
func (k Keeper) ExecuteUpdateClient(ctx context.Context, ectx host.ExecutionContext, msg clienttypes.MsgUpdateClient) error {
	clientState, found := ectx.ClientState(ctx, msg.ClientID)
	if !found {
		return errorsmod.Wrapf(clienttypes.ErrClientNotFound, "client %s", msg.ClientID)
	}
	store := ectx.ClientStore(ctx, msg.ClientID)

	if clientState.CheckForMisbehaviour(ctx, store, msg.ClientMessage) {
		clientState.UpdateStateOnMisbehaviour(ctx, store, msg.ClientMessage)
		ectx.StoreClientState(ctx, msg.ClientID, clientState)
		ectx.EmitEvent(ctx, host.NewEvent(clienttypes.EventTypeMisbehaviour,
			host.NewAttribute(clienttypes.AttributeKeyClientID, msg.ClientID),
			host.NewAttribute(clienttypes.AttributeKeyClientType, clientState.ClientType()),
		))
		ectx.LogMessage(ctx, "froze client "+msg.ClientID+" on detected misbehaviour")
		return nil
	}

	updates := clientState.UpdateState(ctx, store, msg.ClientMessage)
	ectx.StoreClientState(ctx, msg.ClientID, clientState)
	for _, u := range updates {
		ectx.StoreConsensusState(ctx, msg.ClientID, u.Height, u.ConsensusState)
		ectx.StoreUpdateTime(ctx, msg.ClientID, u.Height, ectx.HostTimestamp(ctx))
		ectx.StoreUpdateHeight(ctx, msg.ClientID, u.Height, ectx.HostHeight(ctx))
	}

	ectx.EmitEvent(ctx, host.NewEvent(clienttypes.EventTypeUpdateClient,
		host.NewAttribute(clienttypes.AttributeKeyClientID, msg.ClientID),
		host.NewAttribute(clienttypes.AttributeKeyClientType, clientState.ClientType()),
		host.NewAttribute(clienttypes.AttributeKeyHeight, clientState.LatestHeight().String()),
	))
	ectx.LogMessage(ctx, "updated client "+msg.ClientID)
	return nil
}

// ValidateUpgradeClient and ExecuteUpgradeClient implement ICS-02
// UpgradeClient: the client's identity (its ID) is
// preserved while its state and latest consensus state are replaced
// wholesale, subject to the client's own proof that the upgrade was
// actually committed by the counterparty chain it represents.
func (k Keeper) ValidateUpgradeClient(ctx context.Context, vctx host.ValidationContext, msg clienttypes.MsgUpgradeClient) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	existing, found := vctx.ClientState(ctx, msg.ClientID)
	if !found {
		return errorsmod.Wrapf(clienttypes.ErrClientNotFound, "client %s", msg.ClientID)
	}
	if status(ctx, vctx, msg.ClientID, existing) == exported.Frozen {
		return errorsmod.Wrapf(clienttypes.ErrClientFrozen, "client %s", msg.ClientID)
	}
	if msg.ClientState == nil || msg.ConsensusState == nil {
		return errorsmod.Wrap(clienttypes.ErrInvalidUpgrade, "upgraded client or consensus state is nil")
	}
	if msg.ClientState.ClientType() != existing.ClientType() {
		return errorsmod.Wrap(clienttypes.ErrInvalidUpgrade, "upgrade cannot change client type")
	}
	if len(msg.ProofUpgradeClient) == 0 || len(msg.ProofUpgradeConsensusState) == 0 {
		return errorsmod.Wrap(clienttypes.ErrInvalidUpgrade, "missing upgrade proof")
	}
	store := vctx.ClientStore(ctx, msg.ClientID)
	if err := existing.VerifyUpgrade(ctx, store, msg.ClientState, msg.ConsensusState, msg.ProofUpgradeClient, msg.ProofUpgradeConsensusState); err != nil {
		return errorsmod.Wrap(clienttypes.ErrUpgradeVerificationFailed, err.Error())
	}
	return nil
}

// ExecuteUpgradeClient overwrites the stored client and consensus state
// at the new client's latest height. ValidateUpgradeClient has already
// proven, via the existing client's own VerifyUpgrade, that the
// counterparty chain committed to this exact replacement; this method
// only applies what validation already verified.
func (k Keeper) ExecuteUpgradeClient(ctx context.Context, ectx host.ExecutionContext, msg clienttypes.MsgUpgradeClient) error {
	latest := msg.ClientState.LatestHeight()
	store := ectx.ClientStore(ctx, msg.ClientID)
	if err := msg.ClientState.Initialize(ctx, store, msg.ConsensusState); err != nil {
		return errorsmod.Wrap(clienttypes.ErrInvalidUpgrade, err.Error())
	}

	ectx.StoreClientState(ctx, msg.ClientID, msg.ClientState)
	ectx.StoreConsensusState(ctx, msg.ClientID, latest, msg.ConsensusState)
	ectx.StoreUpdateTime(ctx, msg.ClientID, latest, ectx.HostTimestamp(ctx))
	ectx.StoreUpdateHeight(ctx, msg.ClientID, latest, ectx.HostHeight(ctx))

	ectx.EmitEvent(ctx, host.NewEvent(clienttypes.EventTypeUpgradeClient,
		host.NewAttribute(clienttypes.AttributeKeyClientID, msg.ClientID),
		host.NewAttribute(clienttypes.AttributeKeyHeight, latest.String()),
	))
	ectx.LogMessage(ctx, "upgraded client "+msg.ClientID)
	return nil
}
