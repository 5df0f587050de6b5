package routing

import (
	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/pkg/orderedmap"
)

// ModuleName is this package's error codespace.
const ModuleName = "ibc-routing"

var (
	ErrPortAlreadyBound = errorsmod.Register(ModuleName, 2, "port is already bound to a module")
	ErrModuleNotFound   = errorsmod.Register(ModuleName, 3, "no module registered for this port")
	ErrUnknownMessage   = errorsmod.Register(ModuleName, 4, "message type is not recognized by this engine")
)

// Router resolves which application module owns a port, the table ICS-26
// maintains on top of the channel engine. Iteration order
// over bound ports is deterministic (pkg/orderedmap), matching this
// engine's commitment that log and query iteration order never depends on
// Go map order.
type Router struct {
	portToModule *orderedmap.Map[string, channeltypes.Module]
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	return &Router{portToModule: orderedmap.New[string, channeltypes.Module]()}
}

// BindPort registers module as the sole owner of portID. Rebinding an
// already-bound port is rejected outright: a host wanting to replace a
// module's callbacks must construct a new Router, a capability this
// engine does not need to expose since no example host swaps a module
// out from under a live port.
func (r *Router) BindPort(portID string, module channeltypes.Module) error {
	if err := host.ValidateIdentifier(portID, "port"); err != nil {
		return errorsmod.Wrap(channeltypes.ErrPortNotBound, err.Error())
	}
	if module == nil {
		return errorsmod.Wrap(channeltypes.ErrPortNotBound, "module is nil")
	}
	if r.portToModule.Has(portID) {
		return errorsmod.Wrapf(ErrPortAlreadyBound, "port %s", portID)
	}
	r.portToModule.Set(portID, module)
	return nil
}

// Route resolves the module bound to portID.
func (r *Router) Route(portID string) (channeltypes.Module, error) {
	mod, ok := r.portToModule.Get(portID)
	if !ok {
		return nil, errorsmod.Wrapf(ErrModuleNotFound, "port %s", portID)
	}
	return mod, nil
}

// HasRoute reports whether portID is bound.
func (r *Router) HasRoute(portID string) bool {
	return r.portToModule.Has(portID)
}

// Ports returns every bound port ID in binding order.
func (r *Router) Ports() []string {
	return r.portToModule.Keys()
}
