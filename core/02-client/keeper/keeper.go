// Package keeper implements ICS-02: CreateClient, UpdateClient, and
// UpgradeClient, driving the polymorphic exported.ClientState capability
// set. The Keeper itself is stateless: it is built once by the host and
// its methods take the per-call host.ValidationContext/ExecutionContext
// as parameters rather than caching anything between calls.
package keeper

// Keeper implements ICS-02 client handling.
type Keeper struct{}

// NewKeeper returns a new client Keeper. It takes no dependencies because
// ICS-02 sits at the bottom of the protocol's dependency order: nothing
// it does requires knowledge of connections or channels.
func NewKeeper() Keeper {
	return Keeper{}
}
