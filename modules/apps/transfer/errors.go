package transfer

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this module's error codespace.
const ModuleName = "ibc-app-transfer"

var (
	errOrderedChannelUnsupported = errorsmod.Register(ModuleName, 2, "transfer only supports unordered channels")
	errInvalidVersion            = errorsmod.Register(ModuleName, 3, "channel version must be "+Version)
)
