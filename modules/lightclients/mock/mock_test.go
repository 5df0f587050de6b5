package mock_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
)

func TestClientStateStatus(t *testing.T) {
	cs := &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)}
	require.Equal(t, exported.Active, cs.Status(context.Background(), "06-mock-0", nil))

	cs.Frozen = true
	require.Equal(t, exported.Frozen, cs.Status(context.Background(), "06-mock-0", nil))
}

func TestClientTypeAndLatestHeight(t *testing.T) {
	height := exported.NewHeight(2, 7)
	cs := &mock.ClientState{LatestHeightValue: height}
	require.Equal(t, mock.ClientType, cs.ClientType())
	require.True(t, height.EQ(cs.LatestHeight()))
}

func TestCheckForMisbehaviour(t *testing.T) {
	cs := &mock.ClientState{}
	ctx := context.Background()

	require.False(t, cs.CheckForMisbehaviour(ctx, nil, mock.Header{Height: exported.NewHeight(1, 2)}))
	require.True(t, cs.CheckForMisbehaviour(ctx, nil, mock.Misbehaviour{
		HeaderOne: mock.Header{Height: exported.NewHeight(1, 2)},
		HeaderTwo: mock.Header{Height: exported.NewHeight(1, 2)},
	}))
}

func TestUpdateStateOnMisbehaviourFreezes(t *testing.T) {
	cs := &mock.ClientState{}
	cs.UpdateStateOnMisbehaviour(context.Background(), nil, mock.Misbehaviour{})
	require.True(t, cs.Frozen)
	require.Equal(t, exported.Frozen, cs.Status(context.Background(), "06-mock-0", nil))
}

func TestUpdateStateAdvancesHeightAndReturnsConsensusUpdate(t *testing.T) {
	cs := &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 1)}
	header := mock.Header{Height: exported.NewHeight(1, 5), Timestamp: 42, Root: []byte("root")}

	updates := cs.UpdateState(context.Background(), nil, header)
	require.Len(t, updates, 1)
	require.True(t, header.Height.EQ(updates[0].Height))
	require.True(t, header.Height.EQ(cs.LatestHeightValue))

	consensus, ok := updates[0].ConsensusState.(*mock.ConsensusState)
	require.True(t, ok)
	require.Equal(t, uint64(42), consensus.GetTimestamp())
	require.Equal(t, []byte("root"), consensus.GetRoot())
}

func TestUpdateStateIgnoresOlderHeight(t *testing.T) {
	cs := &mock.ClientState{LatestHeightValue: exported.NewHeight(1, 10)}
	cs.UpdateState(context.Background(), nil, mock.Header{Height: exported.NewHeight(1, 3), Timestamp: 1})
	require.True(t, exported.NewHeight(1, 10).EQ(cs.LatestHeightValue))
}

func TestVerifyMembershipRequiresExactProof(t *testing.T) {
	cs := &mock.ClientState{}
	ctx := context.Background()
	value := []byte("committed-value")

	require.NoError(t, cs.VerifyMembership(ctx, nil, exported.NewHeight(1, 1), 0, 0, value, exported.NewMerklePath("ibc"), "some/path", value))
	require.Error(t, cs.VerifyMembership(ctx, nil, exported.NewHeight(1, 1), 0, 0, []byte("wrong"), exported.NewMerklePath("ibc"), "some/path", value))
}

func TestVerifyNonMembershipRequiresEmptyProof(t *testing.T) {
	cs := &mock.ClientState{}
	ctx := context.Background()

	require.NoError(t, cs.VerifyNonMembership(ctx, nil, exported.NewHeight(1, 1), 0, 0, nil, exported.NewMerklePath("ibc"), "some/path"))
	require.Error(t, cs.VerifyNonMembership(ctx, nil, exported.NewHeight(1, 1), 0, 0, []byte("present"), exported.NewMerklePath("ibc"), "some/path"))
}

func TestClientStateMarshalEncodesFields(t *testing.T) {
	cs := &mock.ClientState{LatestHeightValue: exported.NewHeight(3, 9), Frozen: true}
	b := cs.Marshal()
	require.NotEmpty(t, b)
	require.Contains(t, string(b), `"frozen":true`)
}

func TestConsensusStateMarshalEncodesFields(t *testing.T) {
	cs := &mock.ConsensusState{Timestamp: 99, Root: []byte("abc")}
	require.Equal(t, mock.ClientType, cs.ClientType())
	b := cs.Marshal()
	require.Contains(t, string(b), `"timestamp":99`)
}
