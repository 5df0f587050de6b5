package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// CheckDelayPeriod enforces the connection's delay-period gate before a
// packet proof asserted at proofHeight may be consumed:
// host_time_now >= processed_time[proofHeight] + delayPeriod, and the
// equivalent check in block-height units. The engine performs this check
// itself, using ValidationContext's processed-time/height bookkeeping,
// rather than asking each light client variant to track it independently;
// delayTimePeriod/delayBlockPeriod are therefore passed to
// ClientState.VerifyMembership as already-satisfied (zero) once this
// check has passed.
func (k Keeper) CheckDelayPeriod(ctx context.Context, vctx host.ValidationContext, clientID string, proofHeight exported.Height, delayPeriod uint64) error {
	if delayPeriod == 0 {
		return nil
	}
	processedTime, found := vctx.ProcessedTime(ctx, clientID, proofHeight)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConsensusStatePruned, "no processed time recorded for height %s", proofHeight)
	}
	if vctx.HostTimestamp(ctx) < processedTime+delayPeriod {
		return errorsmod.Wrap(connectiontypes.ErrInvalidDelayPeriod, "connection delay period has not elapsed")
	}

	processedHeight, found := vctx.ProcessedHeight(ctx, clientID, proofHeight)
	if !found {
		return errorsmod.Wrapf(connectiontypes.ErrConsensusStatePruned, "no processed height recorded for height %s", proofHeight)
	}
	blockDelay := calcBlockDelay(vctx.MaxExpectedTimePerBlock(ctx), delayPeriod)
	if vctx.HostHeight(ctx).RevisionHeight < processedHeight.RevisionHeight+blockDelay {
		return errorsmod.Wrap(connectiontypes.ErrInvalidDelayPeriod, "connection delay period has not elapsed")
	}
	return nil
}

// calcBlockDelay converts a delay period in nanoseconds to a number of
// blocks, rounding up, using the host's own estimate of its average block
// time (its MaxExpectedTimePerBlock).
func calcBlockDelay(maxExpectedTimePerBlock, delayPeriod uint64) uint64 {
	if maxExpectedTimePerBlock == 0 {
		return 0
	}
	blocks := delayPeriod / maxExpectedTimePerBlock
	if delayPeriod%maxExpectedTimePerBlock != 0 {
		blocks++
	}
	return blocks
}
