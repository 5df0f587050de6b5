package tendermint

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this variant's error codespace.
const ModuleName = "ibc-lightclient-tendermint"

var (
	errInvalidConsensusState         = errorsmod.Register(ModuleName, 2, "invalid consensus state")
	errUnknownClientMessage          = errorsmod.Register(ModuleName, 3, "unknown client message type")
	errInvalidHeader                 = errorsmod.Register(ModuleName, 4, "invalid header")
	errChainIDMismatch               = errorsmod.Register(ModuleName, 5, "header chain id does not match client")
	errValidatorSetMismatch          = errorsmod.Register(ModuleName, 6, "validator set hash does not match header")
	errTrustedConsensusStateNotFound = errorsmod.Register(ModuleName, 7, "trusted consensus state not found")
	errTrustedValidatorSetMismatch   = errorsmod.Register(ModuleName, 8, "trusted validator set does not match stored next validators hash")
	errTrustingPeriodExpired         = errorsmod.Register(ModuleName, 9, "trusted consensus state has expired")
	errHeaderFromFuture              = errorsmod.Register(ModuleName, 10, "header time exceeds max clock drift")
	errConsensusStateNotFound        = errorsmod.Register(ModuleName, 11, "consensus state not found at height")
)
