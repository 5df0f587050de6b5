package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-channel"

// Channel and packet errors.
var (
	ErrChannelNotFound         = errorsmod.Register(ModuleName, 2, "channel not found")
	ErrChannelExists           = errorsmod.Register(ModuleName, 3, "channel already exists")
	ErrInvalidChannelState     = errorsmod.Register(ModuleName, 4, "channel state is not valid for this operation")
	ErrInvalidChannelOrdering  = errorsmod.Register(ModuleName, 5, "channel ordering is invalid for this operation")
	ErrConnectionNotOpen       = errorsmod.Register(ModuleName, 6, "connection for this channel is not open")
	ErrSequenceSendMismatch    = errorsmod.Register(ModuleName, 7, "packet sequence does not match next send sequence")
	ErrSequenceRecvMismatch    = errorsmod.Register(ModuleName, 8, "packet sequence does not match next recv sequence")
	ErrSequenceAckMismatch     = errorsmod.Register(ModuleName, 9, "packet sequence does not match next ack sequence")
	ErrPacketCommitmentNotFound = errorsmod.Register(ModuleName, 10, "packet commitment not found")
	ErrPacketCommitmentMismatch = errorsmod.Register(ModuleName, 11, "packet commitment bytes do not match recomputed hash")
	ErrPacketReceived          = errorsmod.Register(ModuleName, 12, "packet already received")
	ErrAcknowledgementExists   = errorsmod.Register(ModuleName, 13, "acknowledgement for packet already exists")
	ErrPacketTimeoutElapsed    = errorsmod.Register(ModuleName, 14, "packet timeout elapsed, must be routed through timeout")
	ErrPacketTimeoutNotReached = errorsmod.Register(ModuleName, 15, "packet timeout has not yet elapsed")
	ErrInvalidPacket           = errorsmod.Register(ModuleName, 16, "packet is malformed")
	ErrModuleCallbackFailed    = errorsmod.Register(ModuleName, 17, "module callback returned an error")
	ErrOrderedChannelUnreceivedPacketsUndefined = errorsmod.Register(
		ModuleName, 18, "UnreceivedPackets is only defined for unordered channels",
	)
	ErrSequenceCounterOverflow = errorsmod.Register(ModuleName, 19, "sequence counter overflow")
	ErrChannelCounterOverflow  = errorsmod.Register(ModuleName, 24, "channel counter overflow")
	ErrPortNotBound            = errorsmod.Register(ModuleName, 20, "port is not bound to a module")
	ErrReentryDepthExceeded    = errorsmod.Register(ModuleName, 21, "maximum re-entrant SendPacket depth exceeded")
	ErrChannelVerification     = errorsmod.Register(ModuleName, 22, "channel state verification failed")
	ErrPacketVerification      = errorsmod.Register(ModuleName, 23, "packet proof verification failed")
)
