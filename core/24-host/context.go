// Package host declares the engine's two host-facing interfaces: the
// pure-read ValidationContext and the write-capable ExecutionContext. The
// engine never implements either; a host embeds the engine by providing
// both, typically backed by its own KV store (see testutil.Host for an
// in-memory example).
package host

import (
	"context"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// ValidationContext is the read-only view every validate(ctx, envelope)
// call is given. Every method is a pure function of host state: the
// engine never caches a result across calls.
type ValidationContext interface {
	ClientState(ctx context.Context, clientID string) (exported.ClientState, bool)
	ConsensusState(ctx context.Context, clientID string, height exported.Height) (exported.ConsensusState, bool)
	ClientStore(ctx context.Context, clientID string) exported.ClientStore
	// ProcessedTime and ProcessedHeight return the host-time and
	// host-height recorded when the consensus state at height was
	// stored, the bookkeeping that enforces connection delay periods.
	ProcessedTime(ctx context.Context, clientID string, height exported.Height) (uint64, bool)
	ProcessedHeight(ctx context.Context, clientID string, height exported.Height) (exported.Height, bool)

	HostHeight(ctx context.Context) exported.Height
	HostTimestamp(ctx context.Context) uint64 // Unix nanoseconds
	HostConsensusState(ctx context.Context, height exported.Height) (exported.ConsensusState, bool)
	ClientCounter(ctx context.Context) uint64

	ConnectionEnd(ctx context.Context, connectionID string) (connectiontypes.ConnectionEnd, bool)
	ConnectionCounter(ctx context.Context) uint64
	// ValidateSelfClient lets a host reject a client state purporting to
	// represent itself, e.g. one with the wrong chain ID or an
	// unbondable trusting period, before a counterparty connection
	// handshake step relies on it.
	ValidateSelfClient(ctx context.Context, clientState exported.ClientState) error
	CommitmentPrefix(ctx context.Context) exported.MerklePath

	ChannelEnd(ctx context.Context, portID, channelID string) (channeltypes.ChannelEnd, bool)
	ConnectionChannels(ctx context.Context, connectionID string) []channeltypes.PacketEndpoint
	GetNextSequenceSend(ctx context.Context, portID, channelID string) (uint64, bool)
	GetNextSequenceRecv(ctx context.Context, portID, channelID string) (uint64, bool)
	GetNextSequenceAck(ctx context.Context, portID, channelID string) (uint64, bool)
	GetPacketCommitment(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool)
	GetPacketReceipt(ctx context.Context, portID, channelID string, sequence uint64) bool
	GetPacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64) ([]byte, bool)
	ChannelCounter(ctx context.Context) uint64
	// MaxExpectedTimePerBlock bounds how far a header's timestamp may
	// run ahead of the host's own clock during client updates.
	MaxExpectedTimePerBlock(ctx context.Context) uint64
	ValidateMessageSigner(ctx context.Context, signer string) error
}

// ExecutionContext extends ValidationContext with the write operations
// execute(ctx, envelope) performs in a single forward pass: reads precede
// writes, and a host that aborts mid-call discards every write made so
// far.
type ExecutionContext interface {
	ValidationContext

	StoreClientState(ctx context.Context, clientID string, clientState exported.ClientState)
	StoreClientType(ctx context.Context, clientID, clientType string)
	StoreConsensusState(ctx context.Context, clientID string, height exported.Height, consensusState exported.ConsensusState)
	IncreaseClientCounter(ctx context.Context) uint64
	StoreUpdateTime(ctx context.Context, clientID string, height exported.Height, updateTime uint64)
	StoreUpdateHeight(ctx context.Context, clientID string, height, updateHeight exported.Height)

	StoreConnection(ctx context.Context, connectionID string, connection connectiontypes.ConnectionEnd)
	StoreConnectionToClient(ctx context.Context, clientID, connectionID string)
	IncreaseConnectionCounter(ctx context.Context) uint64

	StorePacketCommitment(ctx context.Context, portID, channelID string, sequence uint64, commitment []byte)
	StorePacketReceipt(ctx context.Context, portID, channelID string, sequence uint64)
	StorePacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64, ackCommitment []byte)
	DeletePacketCommitment(ctx context.Context, portID, channelID string, sequence uint64)
	DeletePacketAcknowledgement(ctx context.Context, portID, channelID string, sequence uint64)

	StoreNextSequenceSend(ctx context.Context, portID, channelID string, sequence uint64)
	StoreNextSequenceRecv(ctx context.Context, portID, channelID string, sequence uint64)
	StoreNextSequenceAck(ctx context.Context, portID, channelID string, sequence uint64)
	StoreChannel(ctx context.Context, portID, channelID string, channel channeltypes.ChannelEnd)
	IncreaseChannelCounter(ctx context.Context) uint64

	EmitEvent(ctx context.Context, event Event)
	LogMessage(ctx context.Context, message string)
}
