package query_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/query"
	"github.com/tokenize-x/ibc-core/testutil"
)

func TestReaderClientStateLookup(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	r := query.NewReader(ctx, f.Host)

	cs, found := r.ClientState(f.Host.ClientA())
	require.True(t, found)
	require.Equal(t, mock.ClientType, cs.ClientType())

	_, found = r.ClientState("06-mock-999")
	require.False(t, found)
}

func TestReaderClientsPagination(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	r := query.NewReader(ctx, f.Host)

	page, err := r.Clients("", 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.NotEmpty(t, page.NextCursor)

	rest, err := r.Clients(page.NextCursor, 10)
	require.NoError(t, err)
	require.Len(t, rest.Items, 1)
	require.Empty(t, rest.NextCursor)
}

func TestReaderUnreceivedPacketsRejectsOrderedChannel(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	f.Host.StoreChannel(ctx, "transfer", "channel-0", channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       channeltypes.Ordered,
		ConnectionHops: []string{"connection-0"},
	})

	r := query.NewReader(ctx, f.Host)
	_, err := r.UnreceivedPackets("transfer", "channel-0", []uint64{1, 2, 3})
	require.ErrorIs(t, err, channeltypes.ErrOrderedChannelUnreceivedPacketsUndefined)
}

func TestReaderUnreceivedPacketsOnUnorderedChannel(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	f.Host.StoreChannel(ctx, "transfer", "channel-0", channeltypes.ChannelEnd{
		State:          channeltypes.Open,
		Ordering:       channeltypes.Unordered,
		ConnectionHops: []string{"connection-0"},
	})
	f.Host.StorePacketReceipt(ctx, "transfer", "channel-0", 2)

	r := query.NewReader(ctx, f.Host)
	unreceived, err := r.UnreceivedPackets("transfer", "channel-0", []uint64{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, []uint64{1, 3}, unreceived)
}

func TestReaderUnreceivedAcks(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()

	f.Host.StorePacketCommitment(ctx, "transfer", "channel-0", 1, []byte("commitment"))

	r := query.NewReader(ctx, f.Host)
	pending := r.UnreceivedAcks("transfer", "channel-0", []uint64{1, 2})
	require.Equal(t, []uint64{1}, pending)
}

func TestReaderUnreceivedPacketsUnknownChannel(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	r := query.NewReader(ctx, f.Host)

	_, err := r.UnreceivedPackets("transfer", "channel-404", nil)
	require.Error(t, err)
}
