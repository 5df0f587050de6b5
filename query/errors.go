package query

import (
	errorsmod "cosmossdk.io/errors"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-query"

var (
	errInvalidCursor  = errorsmod.Register(ModuleName, 2, "cursor does not match any known entry")
	errChannelNotFound = errorsmod.Register(ModuleName, 3, "channel not found")
)
