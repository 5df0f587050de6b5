// Package types holds ICS-02 errors and event attribute keys. The
// ClientState/ConsensusState capability set itself lives in
// core/exported, shared with every other core package.
package types

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-client"

// Client errors.
var (
	ErrClientNotFound            = errorsmod.Register(ModuleName, 2, "light client not found")
	ErrClientExists              = errorsmod.Register(ModuleName, 3, "light client already exists")
	ErrClientFrozen              = errorsmod.Register(ModuleName, 4, "light client is frozen")
	ErrClientExpired             = errorsmod.Register(ModuleName, 5, "light client consensus state has expired")
	ErrInvalidClientState        = errorsmod.Register(ModuleName, 6, "invalid initial client state")
	ErrInvalidConsensusState     = errorsmod.Register(ModuleName, 7, "invalid initial consensus state")
	ErrClientMessageVerification = errorsmod.Register(ModuleName, 8, "client message failed verification")
	ErrMisbehaviourDetected      = errorsmod.Register(ModuleName, 9, "misbehaviour detected")
	ErrClientCounterOverflow     = errorsmod.Register(ModuleName, 10, "client counter overflow")
	ErrInvalidHeight             = errorsmod.Register(ModuleName, 11, "invalid height")
	ErrInvalidUpgrade            = errorsmod.Register(ModuleName, 12, "invalid client upgrade")
	ErrUpgradeVerificationFailed = errorsmod.Register(ModuleName, 13, "client upgrade proof verification failed")
)
