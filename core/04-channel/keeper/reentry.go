package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
)

// maxReentryDepth bounds how many times SendPacket may be called
// re-entrantly from within a module callback the router itself invoked:
// a module's OnRecvPacket calling back into SendPacket
// is the one level this engine's defined callbacks ever need.
const maxReentryDepth = 2

type reentryDepthKey struct{}

// WithReentryDepth marks ctx as being one level deeper inside a
// module-callback re-entrant call. The router calls this immediately
// before invoking a module callback that is permitted to call back into
// SendPacket.
func WithReentryDepth(ctx context.Context) context.Context {
	return context.WithValue(ctx, reentryDepthKey{}, reentryDepth(ctx)+1)
}

func reentryDepth(ctx context.Context) int {
	d, _ := ctx.Value(reentryDepthKey{}).(int)
	return d
}

// checkReentryDepth rejects a SendPacket call once the bound is exceeded.
func checkReentryDepth(ctx context.Context) error {
	if reentryDepth(ctx) > maxReentryDepth {
		return errorsmod.Wrap(channeltypes.ErrReentryDepthExceeded, "SendPacket")
	}
	return nil
}
