// Package keeper implements ICS-03: the four-step connection handshake
// (OpenInit/OpenTry/OpenAck/OpenConfirm) authenticating a pair of light
// clients against each other via the proof facade in core/23-commitment.
package keeper

import (
	clientkeeper "github.com/tokenize-x/ibc-core/core/02-client/keeper"
)

// Keeper implements ICS-03 connection handshakes. It constructor-injects
// the client Keeper it sits above: connection handling cannot proceed
// without first establishing the counterparty client is active.
type Keeper struct {
	clientKeeper clientkeeper.Keeper
}

// NewKeeper returns a new connection Keeper wired to clientKeeper.
func NewKeeper(clientKeeper clientkeeper.Keeper) Keeper {
	return Keeper{clientKeeper: clientKeeper}
}
