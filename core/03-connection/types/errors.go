package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-connection"

// Connection errors.
var (
	ErrConnectionNotFound      = errorsmod.Register(ModuleName, 2, "connection not found")
	ErrConnectionExists        = errorsmod.Register(ModuleName, 3, "connection already exists")
	ErrInvalidConnectionState  = errorsmod.Register(ModuleName, 4, "connection state is not valid for this operation")
	ErrClientNotActive         = errorsmod.Register(ModuleName, 5, "client is not active")
	ErrInvalidVersion          = errorsmod.Register(ModuleName, 6, "invalid or unsupported version")
	ErrInvalidCounterparty     = errorsmod.Register(ModuleName, 7, "invalid counterparty")
	ErrConsensusHeightTooHigh  = errorsmod.Register(ModuleName, 8, "consensus height exceeds host's current height")
	ErrConsensusStatePruned    = errorsmod.Register(ModuleName, 9, "consensus state at given height has been pruned")
	ErrConnectionVerification  = errorsmod.Register(ModuleName, 10, "connection state verification failed")
	ErrClientVerification      = errorsmod.Register(ModuleName, 11, "client state verification failed")
	ErrConsensusVerification   = errorsmod.Register(ModuleName, 12, "consensus state verification failed")
	ErrInvalidDelayPeriod      = errorsmod.Register(ModuleName, 13, "delay period has not yet elapsed")
	ErrIdentifierInvalid       = errorsmod.Register(ModuleName, 14, "invalid identifier")
	ErrConnectionCounterExceed = errorsmod.Register(ModuleName, 15, "connection counter overflow")
)
