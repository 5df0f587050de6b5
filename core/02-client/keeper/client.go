package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"

	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	"github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// ValidateCreateClient performs the read-only checks CreateClient must
// pass before any state is touched: the signer is well formed, and both
// the client state and the consensus state are present. It does not run
// the variant's own initial-state check; that check is
// ClientState.Initialize, which ExecuteCreateClient calls and whose error
// fails the execution.
func (k Keeper) ValidateCreateClient(ctx context.Context, vctx host.ValidationContext, msg clienttypes.MsgCreateClient) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	if msg.ClientState == nil {
		return errorsmod.Wrap(clienttypes.ErrInvalidClientState, "client state is nil")
	}
	if msg.ConsensusState == nil {
		return errorsmod.Wrap(clienttypes.ErrInvalidConsensusState, "consensus state is nil")
	}
	return nil
}

// ExecuteCreateClient mints "<client_type>-<counter>", lets the client
// variant initialize its store, and persists the client state and
// initial consensus state. Returns the minted client ID.
func (k Keeper) ExecuteCreateClient(ctx context.Context, ectx host.ExecutionContext, msg clienttypes.MsgCreateClient) (string, error) {
	counter := ectx.IncreaseClientCounter(ctx)
	if counter == math.MaxUint64 {
		return "", errorsmod.Wrap(clienttypes.ErrClientCounterOverflow, "cannot mint a new client identifier")
	}
	clientID := host.FormatCounterID(msg.ClientState.ClientType(), counter)

	store := ectx.ClientStore(ctx, clientID)
	if err := msg.ClientState.Initialize(ctx, store, msg.ConsensusState); err != nil {
		return "", errorsmod.Wrap(clienttypes.ErrInvalidClientState, err.Error())
	}

	latest := msg.ClientState.LatestHeight()
	ectx.StoreClientState(ctx, clientID, msg.ClientState)
	ectx.StoreClientType(ctx, clientID, msg.ClientState.ClientType())
	ectx.StoreConsensusState(ctx, clientID, latest, msg.ConsensusState)
	ectx.StoreUpdateTime(ctx, clientID, latest, ectx.HostTimestamp(ctx))
	ectx.StoreUpdateHeight(ctx, clientID, latest, ectx.HostHeight(ctx))

	ectx.EmitEvent(ctx, host.NewEvent(clienttypes.EventTypeCreateClient,
		host.NewAttribute(clienttypes.AttributeKeyClientID, clientID),
		host.NewAttribute(clienttypes.AttributeKeyClientType, msg.ClientState.ClientType()),
		host.NewAttribute(clienttypes.AttributeKeyHeight, latest.String()),
	))
	ectx.LogMessage(ctx, "created client "+clientID)

	return clientID, nil
}

// status derives the client's current status, the Active/Frozen/Expired
// check every proof-bearing ICS-03/04 operation gates on.
// The host's current time is threaded into ctx so a client variant that
// tracks a trusting period (e.g. modules/lightclients/tendermint) can
// derive Expired without depending on host.ValidationContext itself.
func status(ctx context.Context, vctx host.ValidationContext, clientID string, clientState exported.ClientState) exported.ClientStatus {
	ctx = exported.WithHostTimestamp(ctx, vctx.HostTimestamp(ctx))
	return clientState.Status(ctx, clientID, vctx.ClientStore(ctx, clientID))
}

// RequireActive returns an error unless the named client exists and is
// Active, the precondition shared by every connection and channel
// operation that consumes a proof against this client.
func (k Keeper) RequireActive(ctx context.Context, vctx host.ValidationContext, clientID string) (exported.ClientState, error) {
	clientState, found := vctx.ClientState(ctx, clientID)
	if !found {
		return nil, errorsmod.Wrapf(clienttypes.ErrClientNotFound, "client %s", clientID)
	}
	switch status(ctx, vctx, clientID, clientState) {
	case exported.Active:
		return clientState, nil
	case exported.Frozen:
		return nil, errorsmod.Wrapf(clienttypes.ErrClientFrozen, "client %s", clientID)
	case exported.Expired:
		return nil, errorsmod.Wrapf(clienttypes.ErrClientExpired, "client %s", clientID)
	default:
		return nil, errorsmod.Wrapf(clienttypes.ErrClientNotFound, "client %s has unknown status", clientID)
	}
}
