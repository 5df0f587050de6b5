package keeper_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	"github.com/tokenize-x/ibc-core/core/exported"
	mockclient "github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	"github.com/tokenize-x/ibc-core/testutil"
)

func TestSendRecvAcknowledgePacket(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	packet := channeltypes.Packet{
		Sequence:         1,
		Source:           channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelA},
		Destination:      channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelB},
		Data:             []byte("hello"),
		TimeoutHeight:    exported.NewHeight(1, 1000),
		TimeoutTimestamp: 0,
	}
	require.NoError(t, f.ChannelKeeper.SendPacket(ctx, f.Host, packet))

	commitment, found := f.Host.GetPacketCommitment(ctx, portID, channelA, 1)
	require.True(t, found)
	require.Equal(t, channeltypes.CommitPacketFromPacket(packet), commitment)

	recvMsg := channeltypes.MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: channeltypes.CommitPacketFromPacket(packet),
		ProofHeight:     exported.NewHeight(1, 1),
		Signer:          "relayer",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, recvMsg))
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, recvMsg)
	require.NoError(t, err)

	require.True(t, f.Host.GetPacketReceipt(ctx, portID, channelB, 1))
	ackCommitment, found := f.Host.GetPacketAcknowledgement(ctx, portID, channelB, 1)
	require.True(t, found)
	expectedAck := channeltypes.Acknowledgement{Success: true, Data: []byte("hello")}
	expectedAckBytes := channeltypes.EncodeAcknowledgement(expectedAck)
	require.Equal(t, channeltypes.CommitAcknowledgement(expectedAckBytes), ackCommitment)

	ackMsg := channeltypes.MsgAcknowledgePacket{
		Packet:          packet,
		Acknowledgement: expectedAckBytes,
		ProofAcked:      channeltypes.CommitAcknowledgement(expectedAckBytes),
		ProofHeight:     exported.NewHeight(1, 1),
		Signer:          "relayer",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, ackMsg))
	_, err = f.Dispatcher.ExecuteMsg(ctx, f.Host, ackMsg)
	require.NoError(t, err)

	_, found = f.Host.GetPacketCommitment(ctx, portID, channelA, 1)
	require.False(t, found)
}

func TestRecvPacketRejectsReplay(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	packet := channeltypes.Packet{
		Sequence:         1,
		Source:           channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelA},
		Destination:      channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelB},
		Data:             []byte("hello"),
		TimeoutHeight:    exported.NewHeight(1, 1000),
		TimeoutTimestamp: 0,
	}
	require.NoError(t, f.ChannelKeeper.SendPacket(ctx, f.Host, packet))

	recvMsg := channeltypes.MsgRecvPacket{
		Packet:          packet,
		ProofCommitment: channeltypes.CommitPacketFromPacket(packet),
		ProofHeight:     exported.NewHeight(1, 1),
		Signer:          "relayer",
	}
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, recvMsg)
	require.NoError(t, err)

	err = f.Dispatcher.ValidateMsg(ctx, f.Host, recvMsg)
	require.ErrorIs(t, err, channeltypes.ErrPacketReceived)
}

func TestTimeoutPacketOnUnorderedChannel(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Unordered)

	const sendTimestamp = uint64(1_750_000_000_000_000_000)
	packet := channeltypes.Packet{
		Sequence:         1,
		Source:           channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelA},
		Destination:      channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelB},
		Data:             []byte("will-time-out"),
		TimeoutTimestamp: sendTimestamp,
	}
	require.NoError(t, f.ChannelKeeper.SendPacket(ctx, f.Host, packet))

	proofHeight := exported.NewHeight(1, 5)
	f.Host.StoreConsensusState(ctx, f.Host.ClientA(), proofHeight, &mockclient.ConsensusState{Timestamp: sendTimestamp + 1, Root: []byte("root-a-later")})

	timeoutMsg := channeltypes.MsgTimeoutPacket{
		Packet:           packet,
		ProofUnreceived:  nil,
		ProofHeight:      proofHeight,
		NextSequenceRecv: 0,
		Signer:           "relayer",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, timeoutMsg))
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, timeoutMsg)
	require.NoError(t, err)

	_, found := f.Host.GetPacketCommitment(ctx, portID, channelA, 1)
	require.False(t, found)
}

// TestOrderedChannelTimeoutClosesChannel covers the ordered-channel
// timeout flow: a packet whose timeout has elapsed is timed out via
// a membership proof that the counterparty's next_sequence_recv has not
// advanced past it, and the channel transitions to Closed as an
// ordered-delivery violation.
func TestOrderedChannelTimeoutClosesChannel(t *testing.T) {
	f := testutil.NewFixture(t)
	ctx := context.Background()
	connA, connB := openConnectionPair(t, f)
	channelA, channelB := openChannelPair(t, f, connA, connB, channeltypes.Ordered)

	const sendTimestamp = uint64(1_750_000_000_000_000_000)
	packet := channeltypes.Packet{
		Sequence:         1,
		Source:           channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelA},
		Destination:      channeltypes.PacketEndpoint{PortID: portID, ChannelID: channelB},
		Data:             []byte("will-time-out-in-order"),
		TimeoutTimestamp: sendTimestamp,
	}
	require.NoError(t, f.ChannelKeeper.SendPacket(ctx, f.Host, packet))

	proofHeight := exported.NewHeight(1, 5)
	f.Host.StoreConsensusState(ctx, f.Host.ClientA(), proofHeight, &mockclient.ConsensusState{Timestamp: sendTimestamp + 1, Root: []byte("root-a-later")})

	timeoutMsg := channeltypes.MsgTimeoutPacket{
		Packet:           packet,
		ProofUnreceived:  channeltypes.EncodeSequence(0),
		ProofHeight:      proofHeight,
		NextSequenceRecv: 0,
		Signer:           "relayer",
	}
	require.NoError(t, f.Dispatcher.ValidateMsg(ctx, f.Host, timeoutMsg))
	_, err := f.Dispatcher.ExecuteMsg(ctx, f.Host, timeoutMsg)
	require.NoError(t, err)

	_, found := f.Host.GetPacketCommitment(ctx, portID, channelA, 1)
	require.False(t, found)

	channel, found := f.Host.ChannelEnd(ctx, portID, channelA)
	require.True(t, found)
	require.Equal(t, channeltypes.Closed, channel.State)
}
