// Package keeper implements ICS-04: the channel handshake and the packet
// engine's send/receive/acknowledge/timeout operations. Like
// core/03-connection/keeper, it is stateless
// and depends on the connection Keeper it sits above.
package keeper

import (
	connectionkeeper "github.com/tokenize-x/ibc-core/core/03-connection/keeper"
)

// Keeper implements ICS-04 channel handshakes and packet flow.
type Keeper struct {
	connectionKeeper connectionkeeper.Keeper
}

// NewKeeper returns a new channel Keeper wired to connectionKeeper.
func NewKeeper(connectionKeeper connectionkeeper.Keeper) Keeper {
	return Keeper{connectionKeeper: connectionKeeper}
}
