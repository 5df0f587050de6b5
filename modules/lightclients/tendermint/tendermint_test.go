package tendermint_test

import (
	"context"
	"testing"
	"time"

	cmtmath "github.com/cometbft/cometbft/libs/math"
	cmttypes "github.com/cometbft/cometbft/types"
	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/tendermint"
)

// memClientStore is the throwaway exported.ClientStore these tests hand
// the client variant; the engine-side Host store is exercised by the
// keeper tests, not here.
type memClientStore map[string][]byte

func (s memClientStore) Get(key string) ([]byte, bool) {
	v, ok := s[key]
	return v, ok
}

func (s memClientStore) Set(key string, value []byte) { s[key] = value }

func (s memClientStore) Delete(key string) { delete(s, key) }

func newClientState(latest exported.Height) *tendermint.ClientState {
	return &tendermint.ClientState{
		ChainID:           "testchain-1",
		TrustLevel:        cmtmath.Fraction{Numerator: 1, Denominator: 3},
		TrustingPeriod:    2 * time.Hour,
		UnbondingPeriod:   3 * time.Hour,
		MaxClockDrift:     10 * time.Second,
		LatestHeightValue: latest,
	}
}

func headerAt(height exported.Height, blockHash []byte, t time.Time) tendermint.Header {
	return tendermint.Header{
		SignedHeader: cmttypes.SignedHeader{
			Header: &cmttypes.Header{
				ChainID:            "testchain-1",
				Time:               t,
				AppHash:            []byte("app-hash"),
				NextValidatorsHash: []byte("next-vals"),
			},
			Commit: &cmttypes.Commit{BlockID: cmttypes.BlockID{Hash: blockHash}},
		},
		Height: height,
	}
}

func TestStatusFrozen(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	cs.FrozenHeight = exported.NewHeight(1, 5)
	require.Equal(t, exported.Frozen, cs.Status(context.Background(), "07-tendermint-0", memClientStore{}))
}

func TestStatusUnknownWithoutConsensusState(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	require.Equal(t, exported.Unknown, cs.Status(context.Background(), "07-tendermint-0", memClientStore{}))
}

func TestStatusExpiresAfterTrustingPeriod(t *testing.T) {
	latest := exported.NewHeight(1, 10)
	cs := newClientState(latest)
	store := memClientStore{}
	stored := time.Unix(0, 1_700_000_000_000_000_000)
	require.NoError(t, cs.Initialize(context.Background(), store, consensusStateAt(stored)))

	within := exported.WithHostTimestamp(context.Background(), uint64(stored.Add(time.Hour).UnixNano()))
	require.Equal(t, exported.Active, cs.Status(within, "07-tendermint-0", store))

	beyond := exported.WithHostTimestamp(context.Background(), uint64(stored.Add(3*time.Hour).UnixNano()))
	require.Equal(t, exported.Expired, cs.Status(beyond, "07-tendermint-0", store))
}

func consensusStateAt(t time.Time) *tendermint.ConsensusState {
	return &tendermint.ConsensusState{
		Timestamp:          uint64(t.UnixNano()),
		Root:               []byte("app-hash"),
		NextValidatorsHash: []byte("next-vals"),
	}
}

func TestCheckForMisbehaviourConflictingCommits(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	ctx := context.Background()
	height := exported.NewHeight(1, 7)

	conflicting := tendermint.Misbehaviour{
		HeaderOne: headerAt(height, []byte("block-one"), time.Unix(0, 1)),
		HeaderTwo: headerAt(height, []byte("block-two"), time.Unix(0, 2)),
	}
	require.True(t, cs.CheckForMisbehaviour(ctx, memClientStore{}, conflicting))

	agreeing := tendermint.Misbehaviour{
		HeaderOne: headerAt(height, []byte("block-one"), time.Unix(0, 1)),
		HeaderTwo: headerAt(height, []byte("block-one"), time.Unix(0, 1)),
	}
	require.False(t, cs.CheckForMisbehaviour(ctx, memClientStore{}, agreeing))

	require.False(t, cs.CheckForMisbehaviour(ctx, memClientStore{}, headerAt(height, []byte("block-one"), time.Unix(0, 1))))
}

func TestUpdateStateOnMisbehaviourFreezes(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	height := exported.NewHeight(1, 7)
	cs.UpdateStateOnMisbehaviour(context.Background(), memClientStore{}, tendermint.Misbehaviour{
		HeaderOne: headerAt(height, []byte("block-one"), time.Unix(0, 1)),
		HeaderTwo: headerAt(height, []byte("block-two"), time.Unix(0, 2)),
	})
	require.True(t, height.EQ(cs.FrozenHeight))
	require.Equal(t, exported.Frozen, cs.Status(context.Background(), "07-tendermint-0", memClientStore{}))
}

func TestUpdateStateAdvancesLatestHeight(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	store := memClientStore{}
	headerTime := time.Unix(0, 1_700_000_000_000_000_000)
	header := headerAt(exported.NewHeight(1, 12), []byte("block"), headerTime)

	updates := cs.UpdateState(context.Background(), store, header)
	require.Len(t, updates, 1)
	require.True(t, header.Height.EQ(updates[0].Height))
	require.True(t, header.Height.EQ(cs.LatestHeightValue))
	require.Equal(t, uint64(headerTime.UnixNano()), updates[0].ConsensusState.GetTimestamp())

	// the variant's own store must now be able to serve this height as a
	// trusted one for a later skipping update.
	require.Equal(t, exported.Active, cs.Status(context.Background(), "07-tendermint-0", store))
}

func TestVerifyClientMessageRejectsIncompleteHeader(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	err := cs.VerifyClientMessage(context.Background(), memClientStore{}, tendermint.Header{Height: exported.NewHeight(1, 11)})
	require.Error(t, err)
}

func TestVerifyClientMessageRejectsWrongChainID(t *testing.T) {
	cs := newClientState(exported.NewHeight(1, 10))
	header := headerAt(exported.NewHeight(1, 11), []byte("block"), time.Unix(0, 1))
	header.SignedHeader.Header.ChainID = "otherchain-9"
	header.ValidatorSet = &cmttypes.ValidatorSet{}
	header.TrustedValidators = &cmttypes.ValidatorSet{}
	err := cs.VerifyClientMessage(context.Background(), memClientStore{}, header)
	require.Error(t, err)
}
