package keeper

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// timeoutElapsed reports whether packet's timeout has already passed
// relative to a chain at (height, timestamp): true if either dimension
// of the timeout that the packet actually sets has been reached.
func timeoutElapsed(height exported.Height, timestamp uint64, packet channeltypes.Packet) bool {
	if !packet.TimeoutHeight.IsZero() && height.GTE(packet.TimeoutHeight) {
		return true
	}
	if packet.TimeoutTimestamp != 0 && timestamp >= packet.TimeoutTimestamp {
		return true
	}
	return false
}

func sendPacketEvent(packet channeltypes.Packet) host.Event {
	return host.NewEvent(channeltypes.EventTypeSendPacket,
		host.NewAttribute(channeltypes.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		host.NewAttribute(channeltypes.AttributeKeyPortID, packet.Source.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, packet.Source.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyPortID, packet.Destination.PortID),
		host.NewAttribute(channeltypes.AttributeKeyCounterpartyChannelID, packet.Destination.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyDataHex, hex.EncodeToString(packet.Data)),
		host.NewAttribute(channeltypes.AttributeKeyTimeoutHeight, packet.TimeoutHeight.String()),
		host.NewAttribute(channeltypes.AttributeKeyTimeoutTimestamp, strconv.FormatUint(packet.TimeoutTimestamp, 10)),
	)
}

// SendPacket is an application module's direct call into the engine to
// commit a new outgoing packet. It is not driven by a MsgXxx dispatch,
// so unlike the handshake and relayer-facing packet operations it
// performs its checks and writes in one pass; re-entrant calls from
// within a module callback the router is currently invoking are bounded
// via checkReentryDepth.
func (k Keeper) SendPacket(ctx context.Context, ectx host.ExecutionContext, packet channeltypes.Packet) error {
	if err := checkReentryDepth(ctx); err != nil {
		return err
	}
	if !packet.HasValidTimeout() {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacket, "packet must set a non-zero timeout height or timestamp")
	}

	channel, found := ectx.ChannelEnd(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}
	if channel.State != channeltypes.Open {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", packet.Source.PortID, packet.Source.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, ectx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	latestHeight := hop.clientState.LatestHeight()
	latestConsensus, found := ectx.ConsensusState(ctx, hop.connection.ClientID, latestHeight)
	if !found {
		return errorsmod.Wrap(channeltypes.ErrPacketVerification, "no consensus state at counterparty's latest known height")
	}
	if timeoutElapsed(latestHeight, latestConsensus.GetTimestamp(), packet) {
		return errorsmod.Wrap(channeltypes.ErrPacketTimeoutElapsed, "timeout already elapsed relative to counterparty's latest known state")
	}

	nextSend, found := ectx.GetNextSequenceSend(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "no next send sequence for %s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}
	if packet.Sequence != nextSend {
		return errorsmod.Wrapf(channeltypes.ErrSequenceSendMismatch, "expected %d, got %d", nextSend, packet.Sequence)
	}
	if nextSend == math.MaxUint64 {
		return errorsmod.Wrapf(channeltypes.ErrSequenceCounterOverflow, "next send sequence on %s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}

	commitment := channeltypes.CommitPacketFromPacket(packet)
	ectx.StorePacketCommitment(ctx, packet.Source.PortID, packet.Source.ChannelID, packet.Sequence, commitment)
	ectx.StoreNextSequenceSend(ctx, packet.Source.PortID, packet.Source.ChannelID, nextSend+1)

	ectx.EmitEvent(ctx, sendPacketEvent(packet))
	ectx.LogMessage(ctx, fmt.Sprintf("sent packet %d on %s/%s", packet.Sequence, packet.Source.PortID, packet.Source.ChannelID))
	return nil
}

// ValidateRecvPacket checks RecvPacket's preconditions: the destination
// channel is Open, the connection's delay period has
// elapsed for the supplied proof height, the packet has not yet timed
// out locally, the sequence is admissible for the channel's ordering,
// and the membership proof of the source chain's commitment verifies.
func (k Keeper) ValidateRecvPacket(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgRecvPacket) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	packet := msg.Packet
	channel, found := vctx.ChannelEnd(ctx, packet.Destination.PortID, packet.Destination.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Destination.PortID, packet.Destination.ChannelID)
	}
	if channel.State != channeltypes.Open {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", packet.Destination.PortID, packet.Destination.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}
	if err := k.connectionKeeper.CheckDelayPeriod(ctx, vctx, hop.connection.ClientID, msg.ProofHeight, hop.connection.DelayPeriod); err != nil {
		return err
	}
	if timeoutElapsed(vctx.HostHeight(ctx), vctx.HostTimestamp(ctx), packet) {
		return errorsmod.Wrap(channeltypes.ErrPacketTimeoutElapsed, "packet has timed out locally; route through TimeoutPacket instead")
	}

	switch channel.Ordering {
	case channeltypes.Ordered:
		nextRecv, found := vctx.GetNextSequenceRecv(ctx, packet.Destination.PortID, packet.Destination.ChannelID)
		if !found {
			return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "no next recv sequence for %s/%s", packet.Destination.PortID, packet.Destination.ChannelID)
		}
		if packet.Sequence != nextRecv {
			return errorsmod.Wrapf(channeltypes.ErrSequenceRecvMismatch, "expected %d, got %d", nextRecv, packet.Sequence)
		}
	default:
		if vctx.GetPacketReceipt(ctx, packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence) {
			return errorsmod.Wrapf(channeltypes.ErrPacketReceived, "packet %d already received on %s/%s", packet.Sequence, packet.Destination.PortID, packet.Destination.ChannelID)
		}
	}

	path := host.PacketCommitmentPath(packet.Source.PortID, packet.Source.ChannelID, packet.Sequence)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofCommitment, hop.connection.Counterparty.Prefix, path, channeltypes.CommitPacketFromPacket(packet)); err != nil {
		return errorsmod.Wrap(channeltypes.ErrPacketVerification, err.Error())
	}
	return nil
}

// ExecuteRecvPacket advances the receive sequence bookkeeping, invokes
// the owning module, and writes the resulting acknowledgement if the
// module returned one synchronously.
func (k Keeper) ExecuteRecvPacket(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgRecvPacket, mod channeltypes.Module) error {
	packet := msg.Packet
	channel, found := ectx.ChannelEnd(ctx, packet.Destination.PortID, packet.Destination.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Destination.PortID, packet.Destination.ChannelID)
	}

	switch channel.Ordering {
	case channeltypes.Ordered:
		nextRecv, _ := ectx.GetNextSequenceRecv(ctx, packet.Destination.PortID, packet.Destination.ChannelID)
		ectx.StoreNextSequenceRecv(ctx, packet.Destination.PortID, packet.Destination.ChannelID, nextRecv+1)
	default:
		if ectx.GetPacketReceipt(ctx, packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence) {
			return errorsmod.Wrapf(channeltypes.ErrPacketReceived, "packet %d already received on %s/%s", packet.Sequence, packet.Destination.PortID, packet.Destination.ChannelID)
		}
		ectx.StorePacketReceipt(ctx, packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence)
	}

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeRecvPacket,
		host.NewAttribute(channeltypes.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		host.NewAttribute(channeltypes.AttributeKeyPortID, packet.Destination.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, packet.Destination.ChannelID),
		host.NewAttribute(channeltypes.AttributeKeyDataHex, hex.EncodeToString(packet.Data)),
	))

	ack := mod.OnRecvPacket(ctx, packet, msg.Signer)
	if ack != nil {
		ackBytes := channeltypes.EncodeAcknowledgement(*ack)
		ectx.StorePacketAcknowledgement(ctx, packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence, channeltypes.CommitAcknowledgement(ackBytes))
		ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeWriteAcknowledgement,
			host.NewAttribute(channeltypes.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
			host.NewAttribute(channeltypes.AttributeKeyPortID, packet.Destination.PortID),
			host.NewAttribute(channeltypes.AttributeKeyChannelID, packet.Destination.ChannelID),
			host.NewAttribute(channeltypes.AttributeKeyAckHex, hex.EncodeToString(ackBytes)),
		))
	}
	ectx.LogMessage(ctx, fmt.Sprintf("received packet %d on %s/%s", packet.Sequence, packet.Destination.PortID, packet.Destination.ChannelID))
	return nil
}

// ValidateAcknowledgePacket checks AcknowledgePacket's preconditions:
// the source channel is Open, a commitment for this
// packet exists and matches its recomputed hash, the sequence is
// admissible for ordered channels, and the membership proof of the
// destination chain's ack verifies.
func (k Keeper) ValidateAcknowledgePacket(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgAcknowledgePacket) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	packet := msg.Packet
	channel, found := vctx.ChannelEnd(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}
	if channel.State != channeltypes.Open {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel %s/%s is in state %s", packet.Source.PortID, packet.Source.ChannelID, channel.State)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	commitment, found := vctx.GetPacketCommitment(ctx, packet.Source.PortID, packet.Source.ChannelID, packet.Sequence)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrPacketCommitmentNotFound, "packet %d on %s/%s", packet.Sequence, packet.Source.PortID, packet.Source.ChannelID)
	}
	if !bytes.Equal(commitment, channeltypes.CommitPacketFromPacket(packet)) {
		return errorsmod.Wrap(channeltypes.ErrPacketCommitmentMismatch, "recomputed commitment does not match stored commitment")
	}

	if channel.Ordering == channeltypes.Ordered {
		nextAck, found := vctx.GetNextSequenceAck(ctx, packet.Source.PortID, packet.Source.ChannelID)
		if !found {
			return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "no next ack sequence for %s/%s", packet.Source.PortID, packet.Source.ChannelID)
		}
		if packet.Sequence != nextAck {
			return errorsmod.Wrapf(channeltypes.ErrSequenceAckMismatch, "expected %d, got %d", nextAck, packet.Sequence)
		}
	}

	if err := k.connectionKeeper.CheckDelayPeriod(ctx, vctx, hop.connection.ClientID, msg.ProofHeight, hop.connection.DelayPeriod); err != nil {
		return err
	}

	path := host.PacketAcknowledgementPath(packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence)
	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
		msg.ProofAcked, hop.connection.Counterparty.Prefix, path, channeltypes.CommitAcknowledgement(msg.Acknowledgement)); err != nil {
		return errorsmod.Wrap(channeltypes.ErrPacketVerification, err.Error())
	}
	return nil
}

// ExecuteAcknowledgePacket deletes the commitment (the idempotence gate
// for replayed acknowledgements) and, on ordered channels, advances the
// ack sequence, then invokes the owning module.
func (k Keeper) ExecuteAcknowledgePacket(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgAcknowledgePacket, mod channeltypes.Module) error {
	packet := msg.Packet
	channel, found := ectx.ChannelEnd(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}

	ectx.DeletePacketCommitment(ctx, packet.Source.PortID, packet.Source.ChannelID, packet.Sequence)
	if channel.Ordering == channeltypes.Ordered {
		nextAck, _ := ectx.GetNextSequenceAck(ctx, packet.Source.PortID, packet.Source.ChannelID)
		ectx.StoreNextSequenceAck(ctx, packet.Source.PortID, packet.Source.ChannelID, nextAck+1)
	}

	ack := channeltypes.DecodeAcknowledgement(msg.Acknowledgement)
	if err := mod.OnAcknowledgementPacket(ctx, packet, ack, msg.Signer); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeAcknowledgePacket,
		host.NewAttribute(channeltypes.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		host.NewAttribute(channeltypes.AttributeKeyPortID, packet.Source.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, packet.Source.ChannelID),
	))
	ectx.LogMessage(ctx, fmt.Sprintf("acknowledged packet %d on %s/%s", packet.Sequence, packet.Source.PortID, packet.Source.ChannelID))
	return nil
}

// ValidateTimeoutPacket checks TimeoutPacket's preconditions: a
// commitment for this packet exists and matches its recomputed
// hash, the counterparty's state at proof_height shows the timeout has
// elapsed, and either a non-membership proof of no receipt (unordered)
// or a membership proof that next_sequence_recv has not advanced past
// the packet (ordered) verifies.
func (k Keeper) ValidateTimeoutPacket(ctx context.Context, vctx host.ValidationContext, msg channeltypes.MsgTimeoutPacket) error {
	if err := vctx.ValidateMessageSigner(ctx, msg.Signer); err != nil {
		return err
	}
	packet := msg.Packet
	channel, found := vctx.ChannelEnd(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}
	hop, err := k.requireSingleHop(ctx, vctx, channel.ConnectionHops)
	if err != nil {
		return err
	}

	commitment, found := vctx.GetPacketCommitment(ctx, packet.Source.PortID, packet.Source.ChannelID, packet.Sequence)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrPacketCommitmentNotFound, "packet %d on %s/%s", packet.Sequence, packet.Source.PortID, packet.Source.ChannelID)
	}
	if !bytes.Equal(commitment, channeltypes.CommitPacketFromPacket(packet)) {
		return errorsmod.Wrap(channeltypes.ErrPacketCommitmentMismatch, "recomputed commitment does not match stored commitment")
	}

	counterpartyConsensus, found := vctx.ConsensusState(ctx, hop.connection.ClientID, msg.ProofHeight)
	if !found {
		return errorsmod.Wrap(channeltypes.ErrPacketVerification, "no consensus state at proof height")
	}
	if !timeoutElapsed(msg.ProofHeight, counterpartyConsensus.GetTimestamp(), packet) {
		return errorsmod.Wrap(channeltypes.ErrPacketTimeoutNotReached, "timeout has not elapsed at proof height")
	}

	if err := k.connectionKeeper.CheckDelayPeriod(ctx, vctx, hop.connection.ClientID, msg.ProofHeight, hop.connection.DelayPeriod); err != nil {
		return err
	}

	clientStore := vctx.ClientStore(ctx, hop.connection.ClientID)
	switch channel.Ordering {
	case channeltypes.Ordered:
		if msg.NextSequenceRecv > packet.Sequence {
			return errorsmod.Wrap(channeltypes.ErrPacketTimeoutNotReached, "counterparty already advanced past this sequence")
		}
		path := host.NextSequenceRecvPath(packet.Destination.PortID, packet.Destination.ChannelID)
		if err := hop.clientState.VerifyMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
			msg.ProofUnreceived, hop.connection.Counterparty.Prefix, path, channeltypes.EncodeSequence(msg.NextSequenceRecv)); err != nil {
			return errorsmod.Wrap(channeltypes.ErrPacketVerification, err.Error())
		}
	default:
		path := host.PacketReceiptPath(packet.Destination.PortID, packet.Destination.ChannelID, packet.Sequence)
		if err := hop.clientState.VerifyNonMembership(ctx, clientStore, msg.ProofHeight, 0, 0,
			msg.ProofUnreceived, hop.connection.Counterparty.Prefix, path); err != nil {
			return errorsmod.Wrap(channeltypes.ErrPacketVerification, err.Error())
		}
	}
	return nil
}

// ExecuteTimeoutPacket deletes the commitment and, on ordered channels,
// closes the channel (an ordered-delivery violation), then invokes the
// owning module.
func (k Keeper) ExecuteTimeoutPacket(ctx context.Context, ectx host.ExecutionContext, msg channeltypes.MsgTimeoutPacket, mod channeltypes.Module) error {
	packet := msg.Packet
	channel, found := ectx.ChannelEnd(ctx, packet.Source.PortID, packet.Source.ChannelID)
	if !found {
		return errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.Source.PortID, packet.Source.ChannelID)
	}

	ectx.DeletePacketCommitment(ctx, packet.Source.PortID, packet.Source.ChannelID, packet.Sequence)
	if channel.Ordering == channeltypes.Ordered && channel.State != channeltypes.Closed {
		channel.State = channeltypes.Closed
		ectx.StoreChannel(ctx, packet.Source.PortID, packet.Source.ChannelID, channel)
	}

	if err := mod.OnTimeoutPacket(ctx, packet, msg.Signer); err != nil {
		return errorsmod.Wrap(channeltypes.ErrModuleCallbackFailed, err.Error())
	}

	ectx.EmitEvent(ctx, host.NewEvent(channeltypes.EventTypeTimeoutPacket,
		host.NewAttribute(channeltypes.AttributeKeySequence, strconv.FormatUint(packet.Sequence, 10)),
		host.NewAttribute(channeltypes.AttributeKeyPortID, packet.Source.PortID),
		host.NewAttribute(channeltypes.AttributeKeyChannelID, packet.Source.ChannelID),
	))
	ectx.LogMessage(ctx, fmt.Sprintf("timed out packet %d on %s/%s", packet.Sequence, packet.Source.PortID, packet.Source.ChannelID))
	return nil
}
