package keeper

import (
	"context"
	"math"

	errorsmod "cosmossdk.io/errors"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// resolvedHop bundles a channel's single connection hop with its
// resolved Open ConnectionEnd and active client state, avoiding a second
// lookup across a handshake step's Validate/Execute pair.
type resolvedHop struct {
	connectionID string
	connection   connectiontypes.ConnectionEnd
	clientState  exported.ClientState
}

// requireSingleHop is the structural check every channel handshake step
// shares: exactly one connection hop, naming an Open connection. The
// protocol allows connection_hops longer than one in principle; this
// engine, like ibc-go, supports exactly one.
func (k Keeper) requireSingleHop(ctx context.Context, vctx host.ValidationContext, hops []string) (resolvedHop, error) {
	if len(hops) != 1 {
		return resolvedHop{}, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "connection_hops must have length 1")
	}
	conn, clientState, err := k.connectionKeeper.RequireOpen(ctx, vctx, hops[0])
	if err != nil {
		return resolvedHop{}, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, err.Error())
	}
	return resolvedHop{connectionID: hops[0], connection: conn, clientState: clientState}, nil
}

// ValidateChanOpenInit checks OpenInit's only precondition: the channel's
// single connection hop is Open. The module callback that may propose a
// version is invoked in ExecuteChanOpenInit, once a channel ID exists to
// hand it.
func (k Keeper) ValidateChanOpenInit(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelOpenInit) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	_, err := k.requireSingleHop(ctx, vctx, msg.ConnectionHops)
	return err
}

// ExecuteChanOpenInit mints a channel ID, lets the module propose a
// version, and stores the new channel in the Init state with its three
// sequence counters initialized to 1.
func (k Keeper) ExecuteChanOpenInit(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelOpenInit, mod channeltypes.Module) (string, error) {
	if _, err := k.requireSingleHop(ctx, ectx, msg.ConnectionHops); err != nil {
		return "", err
	}
	counter := ectx.IncreaseChannelCounter(ctx)
	if counter == math.MaxUint64 {
		return "", errorsmod.Wrap(channeltypes.ErrChannelCounterOverflow, "cannot mint a new channel identifier")
	}
	channelID := host.FormatCounterID("channel", counter)

	version, err := mod.OnChanOpenInit(ctx, msg.Ordering, msg.ConnectionHops, msg.PortID, channelID, msg.Counterparty, msg.Version)
	if err != nil {
		return "", errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel := channeltypes.ChannelEnd{
		State:          channeltypes.Init,
		Ordering:       msg.Ordering,
		Counterparty:   msg.Counterparty,
		ConnectionHops: msg.ConnectionHops,
		Version:        version,
	}
	ectx.StoreChannel(ctx, msg.PortID, channelID, channel)
	ectx.StoreNextSequenceSend(ctx, msg.PortID, channelID, 1)
	ectx.StoreNextSequenceRecv(ctx, msg.PortID, channelID, 1)
	ectx.StoreNextSequenceAck(ctx, msg.PortID, channelID, 1)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelOpenInit,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, channelID),
		host.NewAttribute(channeltypes.AttributeKeyConnectionID, msg.ConnectionHops[0]),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, msg.Counterparty.PortID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+channelID+" initialized")
	return channelID, nil
}

// ValidateChanOpenTry checks OpenTry's preconditions: the connection hop
// is Open, and a membership proof shows the initiator stored a matching
// Init channel. The module callback runs in Execute, once a channel ID
// exists.
func (k Keeper) ValidateChanOpenTry(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelOpenTry) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	hop, err := k.requireSingleHop(ctx, vctx, msg.ConnectionHops)
	if err != nil {
		return err
	}

	expectedChan := channeltypes.ChannelEnd{
		State:          channeltypes.Init,
		Ordering:       msg.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: msg.PortID},
		ConnectionHops: []string{hop.connection.Counterparty.ConnectionID},
		Version:        msg.CounterpartyVersion,
	}
	path := host.ChannelPath(msg.Counterparty.PortID, msg.Counterparty.ChannelID)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofInit, hop.connection.Counterparty.Prefix, path, expectedChan.Marshal()); err != nil {
		return errorsmod.Wrap(channeltypes.ErrChannelVerification, err.Error())
	}
	return nil
}

// ExecuteChanOpenTry mints a channel ID, lets the module accept or
// renegotiate the counterparty's version, and stores the new channel in
// the TryOpen state.
func (k Keeper) ExecuteChanOpenTry(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelOpenTry, mod channeltypes.Module) (string, error) {
	if _, err := k.requireSingleHop(ctx, ectx, msg.ConnectionHops); err != nil {
		return "", err
	}
	counter := ectx.IncreaseChannelCounter(ctx)
	if counter == math.MaxUint64 {
		return "", errorsmod.Wrap(channeltypes.ErrChannelCounterOverflow, "cannot mint a new channel identifier")
	}
	channelID := host.FormatCounterID("channel", counter)

	version, err := mod.OnChanOpenTry(ctx, msg.Ordering, msg.ConnectionHops, msg.PortID, channelID, msg.Counterparty, msg.CounterpartyVersion)
	if err != nil {
		return "", errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel := channeltypes.ChannelEnd{
		State:          channeltypes.TryOpen,
		Ordering:       msg.Ordering,
		Counterparty:   msg.Counterparty,
		ConnectionHops: msg.ConnectionHops,
		Version:        version,
	}
	ectx.StoreChannel(ctx, msg.PortID, channelID, channel)
	ectx.StoreNextSequenceSend(ctx, msg.PortID, channelID, 1)
	ectx.StoreNextSequenceRecv(ctx, msg.PortID, channelID, 1)
	ectx.StoreNextSequenceAck(ctx, msg.PortID, channelID, 1)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelOpenTry,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, channelID),
		host.NewAttribute(channeltypes.AttributeKeyConnectionID, msg.ConnectionHops[0]),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, msg.Counterparty.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, msg.Counterparty.ChannelID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+channelID+" set to try-open")
	return channelID, nil
}

// ValidateChanOpenAck checks OpenAck's preconditions: the channel exists,
// is Init or TryOpen, and a membership proof shows the counterparty
// stored a matching TryOpen channel.
func (k Keeper) ValidateChanOpenAck(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelOpenAck) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	channel, found := vctx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if channel.State != channeltypes.Init && channel.State != channeltypes.TryOpen {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", msg.PortID, msg.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	expectedChan := channeltypes.ChannelEnd{
		State:          channeltypes.TryOpen,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: msg.PortID, ChannelID: msg.ChannelID},
		ConnectionHops: []string{hop.connection.Counterparty.ConnectionID},
		Version:        msg.CounterpartyVersion,
	}
	path := host.ChannelPath(channel.Counterparty.PortID, msg.CounterpartyChannelID)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofTry, hop.connection.Counterparty.Prefix, path, expectedChan.Marshal()); err != nil {
		return errorsmod.Wrap(channeltypes.ErrChannelVerification, err.Error())
	}
	return nil
}

// ExecuteChanOpenAck transitions the channel to Open, recording the
// counterparty's channel ID and letting the module observe the final
// negotiated version.
func (k Keeper) ExecuteChanOpenAck(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelOpenAck, mod channeltypes.Module) error {
	channel, found := ectx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if err := mod.OnChanOpenAck(ctx, msg.PortID, msg.ChannelID, msg.CounterpartyVersion); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel.State = channeltypes.Open
	channel.Counterparty.ChannelID = msg.CounterpartyChannelID
	ectx.StoreChannel(ctx, msg.PortID, msg.ChannelID, channel)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelOpenAck,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, msg.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, channel.Counterparty.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, msg.CounterpartyChannelID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+msg.ChannelID+" opened")
	return nil
}

// ValidateChanOpenConfirm checks OpenConfirm's preconditions: the channel
// exists, is TryOpen, and a membership proof shows the counterparty
// already observed it as Open.
func (k Keeper) ValidateChanOpenConfirm(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelOpenConfirm) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	channel, found := vctx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if channel.State != channeltypes.TryOpen {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", msg.PortID, msg.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	expectedChan := channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: msg.PortID, ChannelID: msg.ChannelID},
		ConnectionHops: []string{hop.connection.Counterparty.ConnectionID},
		Version:        channel.Version,
	}
	path := host.ChannelPath(channel.Counterparty.PortID, channel.Counterparty.ChannelID)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofAck, hop.connection.Counterparty.Prefix, path, expectedChan.Marshal()); err != nil {
		return errorsmod.Wrap(channeltypes.ErrChannelVerification, err.Error())
	}
	return nil
}

// ExecuteChanOpenConfirm transitions the channel to Open.
func (k Keeper) ExecuteChanOpenConfirm(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelOpenConfirm, mod channeltypes.Module) error {
	channel, found := ectx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if err := mod.OnChanOpenConfirm(ctx, msg.PortID, msg.ChannelID); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel.State = channeltypes.Open
	ectx.StoreChannel(ctx, msg.PortID, msg.ChannelID, channel)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelOpenConfirm,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, msg.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, channel.Counterparty.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, channel.Counterparty.ChannelID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+msg.ChannelID+" confirmed open")
	return nil
}

// ValidateChanCloseInit checks that the channel exists and is Open: a
// local close decision needs no proof.
func (k Keeper) ValidateChanCloseInit(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelCloseInit) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	channel, found := vctx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if channel.State == channeltypes.Closed {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is already closed", msg.PortID, msg.ChannelID)
	}
	if channel.State != channeltypes.Open {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", msg.PortID, msg.ChannelID, channel.State)
	}
	return nil
}

// ExecuteChanCloseInit closes the channel directly, emitting the
// close-init event with the counterparty's identifiers.
func (k Keeper) ExecuteChanCloseInit(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelCloseInit, mod channeltypes.Module) error {
	channel, found := ectx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if err := mod.OnChanCloseInit(ctx, msg.PortID, msg.ChannelID); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel.State = channeltypes.Closed
	ectx.StoreChannel(ctx, msg.PortID, msg.ChannelID, channel)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelCloseInit,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, msg.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, channel.Counterparty.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, channel.Counterparty.ChannelID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+msg.ChannelID+" closed locally")
	return nil
}

// ValidateChanCloseConfirm checks that the channel exists, is Open, and a
// membership proof shows the counterparty already closed its end.
func (k Keeper) ValidateChanCloseConfirm(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgChannelCloseConfirm) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	channel, found := vctx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if channel.State == channeltypes.Closed {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is already closed", msg.PortID, msg.ChannelID)
	}
	if channel.State != channeltypes.Open {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", msg.PortID, msg.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	expectedChan := channeltypes.ChannelEnd{
		State:          channeltypes.Closed,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.Counterparty{PortID: msg.PortID, ChannelID: msg.ChannelID},
		ConnectionHops: []string{hop.connection.Counterparty.ConnectionID},
		Version:        channel.Version,
	}
	path := host.ChannelPath(channel.Counterparty.PortID, channel.Counterparty.ChannelID)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofInit, hop.connection.Counterparty.Prefix, path, expectedChan.Marshal()); err != nil {
		return errorsmod.Wrap(channeltypes.ErrChannelVerification, err.Error())
	}
	return nil
}

// ExecuteChanCloseConfirm closes the channel in response to the verified
// counterparty closure.
func (k Keeper) ExecuteChanCloseConfirm(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgChannelCloseConfirm, mod channeltypes.Module) error {
	channel, found := ectx.ChannelEnd(ctx, msg.PortID, msg.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortID, msg.ChannelID)
	}
	if err := mod.OnChanCloseConfirm(ctx, msg.PortID, msg.ChannelID); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	channel.State = channeltypes.Closed
	ectx.StoreChannel(ctx, msg.PortID, msg.ChannelID, channel)

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeChannelCloseConfirm,
		host.NewAttribute(channeltypes.AttributeKeyPortID, msg.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, msg.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, channel.Counterparty.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, channel.Counterparty.ChannelID),
	))
	ectx.LogMessage(ctx, "channel "+msg.PortID+"/"+msg.ChannelID+" closed on counterparty confirmation")
	return nil
}
