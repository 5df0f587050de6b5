package testutil

import (
	"context"
	"errors"
	"fmt"

	"cosmossdk.io/collections"
	"github.com/stretchr/testify/require"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// fatalf reports a failure through h.t's require.TestingT surface and
// halts the calling goroutine, the TestingT-compatible stand-in for
// (*testing.T).Fatalf, which isn't part of the narrower interface Host
// accepts (see TestingT in host.go).
func (h *Host) fatalf(format string, args ...any) {
	h.t.Errorf(format, args...)
	h.t.FailNow()
}

// get reads a collections.Map entry, collapsing collections.ErrNotFound
// into the (zero, false) shape every host.ValidationContext lookup uses
// instead of a surfaced error, the same convention the engine's own
// keepers apply over these same methods.
func get[K, V any](ctx context.Context, h *Host, m collections.Map[K, V], key K) (V, bool) {
	v, err := m.Get(ctx, key)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			var zero V
			return zero, false
		}
		h.fatalf("testutil: unexpected store error: %v", err)
	}
	return v, true
}

func mustSet[K, V any](h *Host, m collections.Map[K, V], ctx context.Context, key K, value V) {
	require.NoError(h.t, m.Set(ctx, key, value))
}

// ClientState implements host.ValidationContext.
func (h *Host) ClientState(ctx context.Context, clientID string) (exported.ClientState, bool) {
	return get(ctx, h, h.clientStates, clientID)
}

// ConsensusState implements host.ValidationContext.
func (h *Host) ConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, bool) {
	return get(ctx, h, h.consensusStates, collections.Join(clientID, height.String()))
}

// ClientStore implements host.ValidationContext.
func (h *Host) ClientStore(ctx context.Context, clientID string) exported.ClientStore {
	return &hostClientStore{ctx: ctx, host: h, clientID: clientID}
}

// ProcessedTime implements host.ValidationContext.
func (h *Host) ProcessedTime(ctx context.Context, clientID string, height exported.Height) (uint64, bool) {
	return get(ctx, h, h.processedTime, collections.Join(clientID, height.String()))
}

// ProcessedHeight implements host.ValidationContext.
func (h *Host) ProcessedHeight(ctx context.Context, clientID string, height exported.Height) (exported.Height, bool) {
	encoded, found := get(ctx, h, h.processedHeight, collections.Join(clientID, height.String()))
	if !found {
		return exported.Height{}, false
	}
	return parseHeight(encoded), true
}

// HostHeight implements host.ValidationContext.
func (h *Host) HostHeight(context.Context) exported.Height { return h.height }

// HostTimestamp implements host.ValidationContext.
func (h *Host) HostTimestamp(context.Context) uint64 { return h.timestamp }

// HostConsensusState implements host.ValidationContext.
func (h *Host) HostConsensusState(ctx context.Context, height exported.Height) (exported.ConsensusState, bool) {
	return get(ctx, h, h.hostConsensusStates, height.String())
}

// ClientCounter implements host.ValidationContext.
func (h *Host) ClientCounter(ctx context.Context) uint64 {
	v, err := h.clientCounter.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0
		}
		h.fatalf("testutil: unexpected store error: %v", err)
	}
	return v
}

// ConnectionEnd implements host.ValidationContext.
func (h *Host) ConnectionEnd(ctx context.Context, connectionID string) (connectiontypes.ConnectionEnd, bool) {
	return get(ctx, h, h.connections, connectionID)
}

// ConnectionCounter implements host.ValidationContext.
func (h *Host) ConnectionCounter(ctx context.Context) uint64 {
	v, err := h.connectionCounter.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0
		}
		h.fatalf("testutil: unexpected store error: %v", err)
	}
	return v
}

// ValidateSelfClient implements host.ValidationContext.
func (h *Host) ValidateSelfClient(_ context.Context, clientState exported.ClientState) error {
	return h.validateSelfClient(clientState)
}

// CommitmentPrefix implements host.ValidationContext.
func (h *Host) CommitmentPrefix(context.Context) exported.MerklePath { return h.commitmentPrefix }

// ChannelEnd implements host.ValidationContext.
func (h *Host) ChannelEnd(ctx context.Context, portID, channelID string) (channeltypes.ChannelEnd, bool) {
	return get(ctx, h, h.channels, collections.Join(portID, channelID))
}

// ConnectionChannels implements host.ValidationContext by scanning every
// stored channel for one whose single connection hop matches
// connectionID. A real host would maintain a secondary index; this
// fixture's scale never warrants one.
func (h *Host) ConnectionChannels(ctx context.Context, connectionID string) []channeltypes.PacketEndpoint {
	var out []channeltypes.PacketEndpoint
	iter, err := h.channels.Iterate(ctx, nil)
	require.NoError(h.t, err)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(h.t, err)
		channel, err := iter.Value()
		require.NoError(h.t, err)
		if hop, ok := channel.ConnectionHop(); ok && hop == connectionID {
			out = append(out, channeltypes.PacketEndpoint{PortID: key.K1(), ChannelID: key.K2()})
		}
	}
	return out
}

// GetNextSequenceSend implements host.ValidationContext.
func (h *Host) GetNextSequenceSend(ctx context.Context, portID, channelID string) (uint64, bool) {
	return get(ctx, h, h.nextSeqSend, collections.Join(portID, channelID))
}

// GetNextSequenceRecv implements host.ValidationContext.
func (h *Host) GetNextSequenceRecv(ctx context.Context, portID, channelID string) (uint64, bool) {
	return get(ctx, h, h.nextSeqRecv, collections.Join(portID, channelID))
}

// GetNextSequenceAck implements host.ValidationContext.
func (h *Host) GetNextSequenceAck(ctx context.Context, portID, channelID string) (uint64, bool) {
	return get(ctx, h, h.nextSeqAck, collections.Join(portID, channelID))
}

// GetPacketCommitment implements host.ValidationContext.
func (h *Host) GetPacketCommitment(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	return get(ctx, h, h.packetCommitments, collections.Join3(portID, channelID, sequence))
}

// GetPacketReceipt implements host.ValidationContext.
func (h *Host) GetPacketReceipt(ctx context.Context, portID, channelID string, sequence uint64) bool {
	_, found := get(ctx, h, h.packetReceipts, collections.Join3(portID, channelID, sequence))
	return found
}

// GetPacketAcknowledgement implements host.ValidationContext.
func (h *Host) GetPacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	return get(ctx, h, h.packetAcks, collections.Join3(portID, channelID, sequence))
}

// ChannelCounter implements host.ValidationContext.
func (h *Host) ChannelCounter(ctx context.Context) uint64 {
	v, err := h.channelCounter.Get(ctx)
	if err != nil {
		if errors.Is(err, collections.ErrNotFound) {
			return 0
		}
		h.fatalf("testutil: unexpected store error: %v", err)
	}
	return v
}

// MaxExpectedTimePerBlock implements host.ValidationContext.
func (h *Host) MaxExpectedTimePerBlock(context.Context) uint64 { return h.maxExpectedTimePerBlock }

// ValidateMessageSigner implements host.ValidationContext.
func (h *Host) ValidateMessageSigner(_ context.Context, signer string) error {
	return h.validateSigner(signer)
}

// StoreClientState implements host.ExecutionContext.
func (h *Host) StoreClientState(ctx context.Context, clientID string, clientState exported.ClientState) {
	mustSet(h, h.clientStates, ctx, clientID, clientState)
}

// StoreClientType implements host.ExecutionContext.
func (h *Host) StoreClientType(ctx context.Context, clientID, clientType string) {
	mustSet(h, h.clientTypes, ctx, clientID, clientType)
}

// StoreConsensusState implements host.ExecutionContext.
func (h *Host) StoreConsensusState(ctx context.Context, clientID string, height exported.Height, consensusState exported.ConsensusState) {
	mustSet(h, h.consensusStates, ctx, collections.Join(clientID, height.String()), consensusState)
}

// IncreaseClientCounter implements host.ExecutionContext.
func (h *Host) IncreaseClientCounter(ctx context.Context) uint64 {
	current := h.ClientCounter(ctx)
	require.NoError(h.t, h.clientCounter.Set(ctx, current+1))
	return current
}

// StoreUpdateTime implements host.ExecutionContext.
func (h *Host) StoreUpdateTime(ctx context.Context, clientID string, height exported.Height, updateTime uint64) {
	mustSet(h, h.processedTime, ctx, collections.Join(clientID, height.String()), updateTime)
}

// StoreUpdateHeight implements host.ExecutionContext.
func (h *Host) StoreUpdateHeight(ctx context.Context, clientID string, height, updateHeight exported.Height) {
	mustSet(h, h.processedHeight, ctx, collections.Join(clientID, height.String()), updateHeight.String())
}

// StoreConnection implements host.ExecutionContext.
func (h *Host) StoreConnection(ctx context.Context, connectionID string, connection connectiontypes.ConnectionEnd) {
	mustSet(h, h.connections, ctx, connectionID, connection)
}

// StoreConnectionToClient implements host.ExecutionContext, recording the
// client->connections index ClientCounter-scoped queries and
// client-upgrade fan-out would otherwise need to derive by scanning every
// connection.
func (h *Host) StoreConnectionToClient(ctx context.Context, clientID, connectionID string) {
	mustSet(h, h.connectionsByClient, ctx, collections.Join(clientID, connectionID), true)
}

// IncreaseConnectionCounter implements host.ExecutionContext.
func (h *Host) IncreaseConnectionCounter(ctx context.Context) uint64 {
	current := h.ConnectionCounter(ctx)
	require.NoError(h.t, h.connectionCounter.Set(ctx, current+1))
	return current
}

// StorePacketCommitment implements host.ExecutionContext.
func (h *Host) StorePacketCommitment(ctx context.Context, portID, channelID string, sequence uint64, commitment []byte) {
	mustSet(h, h.packetCommitments, ctx, collections.Join3(portID, channelID, sequence), commitment)
}

// StorePacketReceipt implements host.ExecutionContext.
func (h *Host) StorePacketReceipt(ctx context.Context, portID, channelID string, sequence uint64) {
	mustSet(h, h.packetReceipts, ctx, collections.Join3(portID, channelID, sequence), true)
}

// StorePacketAcknowledgement implements host.ExecutionContext.
func (h *Host) StorePacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64, ackCommitment []byte) {
	mustSet(h, h.packetAcks, ctx, collections.Join3(portID, channelID, sequence), ackCommitment)
}

// DeletePacketCommitment implements host.ExecutionContext.
func (h *Host) DeletePacketCommitment(ctx context.Context, portID, channelID string, sequence uint64) {
	require.NoError(h.t, h.packetCommitments.Remove(ctx, collections.Join3(portID, channelID, sequence)))
}

// DeletePacketAcknowledgement implements host.ExecutionContext.
func (h *Host) DeletePacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64) {
	require.NoError(h.t, h.packetAcks.Remove(ctx, collections.Join3(portID, channelID, sequence)))
}

// StoreNextSequenceSend implements host.ExecutionContext.
func (h *Host) StoreNextSequenceSend(ctx context.Context, portID, channelID string, sequence uint64) {
	mustSet(h, h.nextSeqSend, ctx, collections.Join(portID, channelID), sequence)
}

// StoreNextSequenceRecv implements host.ExecutionContext.
func (h *Host) StoreNextSequenceRecv(ctx context.Context, portID, channelID string, sequence uint64) {
	mustSet(h, h.nextSeqRecv, ctx, collections.Join(portID, channelID), sequence)
}

// StoreNextSequenceAck implements host.ExecutionContext.
func (h *Host) StoreNextSequenceAck(ctx context.Context, portID, channelID string, sequence uint64) {
	mustSet(h, h.nextSeqAck, ctx, collections.Join(portID, channelID), sequence)
}

// StoreChannel implements host.ExecutionContext.
func (h *Host) StoreChannel(ctx context.Context, portID, channelID string, channel channeltypes.ChannelEnd) {
	mustSet(h, h.channels, ctx, collections.Join(portID, channelID), channel)
}

// IncreaseChannelCounter implements host.ExecutionContext.
func (h *Host) IncreaseChannelCounter(ctx context.Context) uint64 {
	current := h.ChannelCounter(ctx)
	require.NoError(h.t, h.channelCounter.Set(ctx, current+1))
	return current
}

// EmitEvent implements host.ExecutionContext by appending to an in-memory
// buffer a test can inspect via Host.Events/Host.EventsOfType.
func (h *Host) EmitEvent(_ context.Context, event host.Event) {
	h.events = append(h.events, event)
}

// LogMessage implements host.ExecutionContext.
func (h *Host) LogMessage(_ context.Context, message string) {
	h.logs = append(h.logs, message)
	h.logger.Debug(message)
}

// hostClientStore is the exported.ClientStore view a light client variant
// gets for clientID, namespaced within Host.clientAuxStore by a
// (clientID, key) pair so two clients' auxiliary bookkeeping (e.g. a
// Tendermint client's per-height consensus states) never collide.
type hostClientStore struct {
	ctx      context.Context
	host     *Host
	clientID string
}

func (s *hostClientStore) Get(key string) ([]byte, bool) {
	return get(s.ctx, s.host, s.host.clientAuxStore, collections.Join(s.clientID, key))
}

func (s *hostClientStore) Set(key string, value []byte) {
	mustSet(s.host, s.host.clientAuxStore, s.ctx, collections.Join(s.clientID, key), value)
}

func (s *hostClientStore) Delete(key string) {
	require.NoError(s.host.t, s.host.clientAuxStore.Remove(s.ctx, collections.Join(s.clientID, key)))
}

// ListClients implements query.Lister.
func (h *Host) ListClients(ctx context.Context) []string {
	var out []string
	iter, err := h.clientStates.Iterate(ctx, nil)
	require.NoError(h.t, err)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(h.t, err)
		out = append(out, key)
	}
	return out
}

// ListConnections implements query.Lister.
func (h *Host) ListConnections(ctx context.Context) []string {
	var out []string
	iter, err := h.connections.Iterate(ctx, nil)
	require.NoError(h.t, err)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(h.t, err)
		out = append(out, key)
	}
	return out
}

// ListChannels implements query.Lister.
func (h *Host) ListChannels(ctx context.Context) []channeltypes.PacketEndpoint {
	var out []channeltypes.PacketEndpoint
	iter, err := h.channels.Iterate(ctx, nil)
	require.NoError(h.t, err)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(h.t, err)
		out = append(out, channeltypes.PacketEndpoint{PortID: key.K1(), ChannelID: key.K2()})
	}
	return out
}

// ListPacketCommitmentSequences implements query.Lister.
func (h *Host) ListPacketCommitmentSequences(ctx context.Context, portID, channelID string) []uint64 {
	return h.listPacketSequences(ctx, h.packetCommitments, portID, channelID)
}

// ListPacketAcknowledgementSequences implements query.Lister.
func (h *Host) ListPacketAcknowledgementSequences(ctx context.Context, portID, channelID string) []uint64 {
	return h.listPacketSequences(ctx, h.packetAcks, portID, channelID)
}

func (h *Host) listPacketSequences(ctx context.Context, m collections.Map[collections.Triple[string, string, uint64], []byte], portID, channelID string) []uint64 {
	var out []uint64
	iter, err := m.Iterate(ctx, nil)
	require.NoError(h.t, err)
	defer iter.Close()
	for ; iter.Valid(); iter.Next() {
		key, err := iter.Key()
		require.NoError(h.t, err)
		if key.K1() == portID && key.K2() == channelID {
			out = append(out, key.K3())
		}
	}
	return out
}

func parseHeight(s string) exported.Height {
	var revision, height uint64
	n, err := fmt.Sscanf(s, "%d-%d", &revision, &height)
	if err != nil || n != 2 {
		return exported.Height{}
	}
	return exported.NewHeight(revision, height)
}
