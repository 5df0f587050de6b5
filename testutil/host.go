// Package testutil implements the in-memory host.ValidationContext /
// host.ExecutionContext pair that every core and modules test in this
// repository drives the engine through. State lives in
// cosmossdk.io/collections maps backed by a hand-rolled in-memory
// corestore.KVStoreService rather than a real IAVL-backed multistore: a
// concrete storage engine is the host's concern, not this engine's.
package testutil

import (
	"context"

	"cosmossdk.io/collections"
	"cosmossdk.io/log"
	sdkcodec "github.com/cosmos/cosmos-sdk/codec"
	"github.com/stretchr/testify/require"

	clientkeeper "github.com/tokenize-x/ibc-core/core/02-client/keeper"
	connectionkeeper "github.com/tokenize-x/ibc-core/core/03-connection/keeper"
	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channelkeeper "github.com/tokenize-x/ibc-core/core/04-channel/keeper"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
	"github.com/tokenize-x/ibc-core/modules/lightclients/mock"
	routing "github.com/tokenize-x/ibc-core/core/26-routing"
)

// TestingT is the slice of *testing.T that testutil needs: require's own
// assertion interface plus Helper(). Accepting this instead of *testing.T
// directly lets cmd/ibcenginectl drive the same in-memory Host a _test.go
// file does, via a tiny non-test shim (see cmd/ibcenginectl/runner.go).
type TestingT interface {
	require.TestingT
	Helper()
}

// Host is an in-memory implementation of both host.ValidationContext and
// host.ExecutionContext, plus query.Lister. A test builds one per
// simulated chain (see NewHost), wires it to a routing.Dispatcher, and
// drives the engine through Dispatcher.ValidateMsg/ExecuteMsg exactly as
// a real host would.
type Host struct {
	t      TestingT
	logger log.Logger
	schema collections.Schema

	clientStates    collections.Map[string, exported.ClientState]
	clientTypes     collections.Map[string, string]
	consensusStates collections.Map[collections.Pair[string, string], exported.ConsensusState]
	processedTime   collections.Map[collections.Pair[string, string], uint64]
	processedHeight collections.Map[collections.Pair[string, string], string]
	clientCounter   collections.Item[uint64]
	clientAuxStore  collections.Map[collections.Pair[string, string], []byte]

	connections        collections.Map[string, connectiontypes.ConnectionEnd]
	connectionCounter   collections.Item[uint64]
	connectionsByClient collections.Map[collections.Pair[string, string], bool]

	channels       collections.Map[collections.Pair[string, string], channeltypes.ChannelEnd]
	channelCounter collections.Item[uint64]
	nextSeqSend    collections.Map[collections.Pair[string, string], uint64]
	nextSeqRecv    collections.Map[collections.Pair[string, string], uint64]
	nextSeqAck     collections.Map[collections.Pair[string, string], uint64]

	packetCommitments collections.Map[collections.Triple[string, string, uint64], []byte]
	packetReceipts    collections.Map[collections.Triple[string, string, uint64], bool]
	packetAcks        collections.Map[collections.Triple[string, string, uint64], []byte]

	hostConsensusStates collections.Map[string, exported.ConsensusState]

	height         exported.Height
	timestamp      uint64
	commitmentPrefix exported.MerklePath
	maxExpectedTimePerBlock uint64
	validateSelfClient      func(exported.ClientState) error
	validateSigner          func(string) error

	events []host.Event
	logs   []string

	clientA string
	clientB string
}

var _ host.ExecutionContext = (*Host)(nil)

// NewHost returns a fresh in-memory host starting at height (1,1), with
// two mock clients pre-registered ("06-mock-0" and "06-mock-1"), standing
// in for chain "A" and chain "B" respectively, so a handshake/packet test
// can reach straight for ClientA()/ClientB() instead of hand-rolling
// CreateClient boilerplate.
func NewHost(t TestingT) *Host {
	t.Helper()
	storeService := newMemKVStoreService()
	sb := collections.NewSchemaBuilder(storeService)

	h := &Host{
		t:      t,
		logger: log.NewNopLogger(),

		clientStates:    collections.NewMap(sb, collections.NewPrefix(0), "client_states", collections.StringKey, clientStateValueCodec{}),
		clientTypes:     collections.NewMap(sb, collections.NewPrefix(1), "client_types", collections.StringKey, collections.StringValue),
		consensusStates: collections.NewMap(sb, collections.NewPrefix(2), "consensus_states", collections.PairKeyCodec(collections.StringKey, collections.StringKey), consensusStateValueCodec{}),
		processedTime:   collections.NewMap(sb, collections.NewPrefix(3), "processed_time", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.Uint64Value),
		processedHeight: collections.NewMap(sb, collections.NewPrefix(4), "processed_height", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.StringValue),
		clientCounter:   collections.NewItem(sb, collections.NewPrefix(5), "client_counter", collections.Uint64Value),
		clientAuxStore:  collections.NewMap(sb, collections.NewPrefix(6), "client_aux_store", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.BytesValue),

		connections:         collections.NewMap(sb, collections.NewPrefix(10), "connections", collections.StringKey, connectionEndValueCodec{}),
		connectionCounter:   collections.NewItem(sb, collections.NewPrefix(11), "connection_counter", collections.Uint64Value),
		connectionsByClient: collections.NewMap(sb, collections.NewPrefix(12), "connections_by_client", collections.PairKeyCodec(collections.StringKey, collections.StringKey), sdkcodec.BoolValue),

		channels:       collections.NewMap(sb, collections.NewPrefix(20), "channels", collections.PairKeyCodec(collections.StringKey, collections.StringKey), channelEndValueCodec{}),
		channelCounter: collections.NewItem(sb, collections.NewPrefix(21), "channel_counter", collections.Uint64Value),
		nextSeqSend:    collections.NewMap(sb, collections.NewPrefix(22), "next_sequence_send", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.Uint64Value),
		nextSeqRecv:    collections.NewMap(sb, collections.NewPrefix(23), "next_sequence_recv", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.Uint64Value),
		nextSeqAck:     collections.NewMap(sb, collections.NewPrefix(24), "next_sequence_ack", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collections.Uint64Value),

		packetCommitments: collections.NewMap(sb, collections.NewPrefix(30), "packet_commitments", collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key), collections.BytesValue),
		packetReceipts:    collections.NewMap(sb, collections.NewPrefix(31), "packet_receipts", collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key), sdkcodec.BoolValue),
		packetAcks:        collections.NewMap(sb, collections.NewPrefix(32), "packet_acks", collections.TripleKeyCodec(collections.StringKey, collections.StringKey, collections.Uint64Key), collections.BytesValue),

		hostConsensusStates: collections.NewMap(sb, collections.NewPrefix(40), "host_consensus_states", collections.StringKey, consensusStateValueCodec{}),

		height:                  exported.NewHeight(1, 1),
		timestamp:               1_700_000_000_000_000_000,
		commitmentPrefix:        exported.NewMerklePath("ibc"),
		maxExpectedTimePerBlock: uint64(30 * 1_000_000_000),
		validateSelfClient:      func(exported.ClientState) error { return nil },
		validateSigner: func(signer string) error {
			if signer == "" {
				return errEmptySigner
			}
			return nil
		},
	}

	schema, err := sb.Build()
	require.NoError(t, err)
	h.schema = schema

	ctx := context.Background()
	h.clientA = h.NewClient(ctx, exported.NewHeight(1, 1), h.timestamp, []byte("root-a"))
	h.clientB = h.NewClient(ctx, exported.NewHeight(1, 1), h.timestamp, []byte("root-b"))
	return h
}

// ClientA returns the ID of the first of NewHost's two pre-registered
// mock clients, standing in for a counterparty chain "A".
func (h *Host) ClientA() string { return h.clientA }

// ClientB returns the ID of the second of NewHost's two pre-registered
// mock clients, standing in for a counterparty chain "B".
func (h *Host) ClientB() string { return h.clientB }

// Fixture bundles a dispatcher wired over a single Host together with
// the host itself and its routing table, the combination a scenario
// needs to drive the engine end to end.
type Fixture struct {
	Host          *Host
	Dispatcher    *routing.Dispatcher
	Router        *routing.Router
	ChannelKeeper channelkeeper.Keeper
}

// NewFixture wires a Host to a fresh Dispatcher/Router pair, the
// combination every handshake/packet test in this repository drives
// messages through. ChannelKeeper is exposed directly alongside the
// Dispatcher since SendPacket is an application module's direct call
// into the engine, not a MsgXxx the dispatcher routes.
func NewFixture(t TestingT) *Fixture {
	t.Helper()
	h := NewHost(t)
	clientKeeper := clientkeeper.NewKeeper()
	connectionKeeper := connectionkeeper.NewKeeper(clientKeeper)
	channelKeeper := channelkeeper.NewKeeper(connectionKeeper)
	router := routing.NewRouter()
	dispatcher := routing.NewDispatcher(clientKeeper, connectionKeeper, channelKeeper, router)
	return &Fixture{Host: h, Dispatcher: dispatcher, Router: router, ChannelKeeper: channelKeeper}
}

// RegisterClientType lets a test add a light client variant beyond the
// mock/tendermint pair registered by default. Registration is
// process-global (see globalRegistry in codecs.go): collections.ValueCodec
// has no room to carry a per-Host reference, so every Host in a test
// binary shares one light-client type table.
func (h *Host) RegisterClientType(
	clientType string,
	decodeClientState func([]byte) (exported.ClientState, error),
	decodeConsensusState func([]byte) (exported.ConsensusState, error),
) {
	globalRegistry.Register(clientType, decodeClientState, decodeConsensusState)
}

// SetHostHeight advances the host's reported height, the lever tests use
// to simulate block progress for delay-period and timeout scenarios.
func (h *Host) SetHostHeight(height exported.Height) { h.height = height }

// SetHostTimestamp advances the host's reported wall-clock time.
func (h *Host) SetHostTimestamp(ts uint64) { h.timestamp = ts }

// SetValidateSelfClient overrides the default accept-everything
// ValidateSelfClient hook, letting a test exercise a host that actually
// checks its own chain ID/unbonding period against a counterparty's
// self-reported client state.
func (h *Host) SetValidateSelfClient(fn func(exported.ClientState) error) { h.validateSelfClient = fn }

// StoreHostConsensusState records this chain's own consensus state at
// height, the bookkeeping CheckConsensusHeight and OpenTry/OpenAck's
// self-proof verification read back via HostConsensusState.
func (h *Host) StoreHostConsensusState(ctx context.Context, height exported.Height, cs exported.ConsensusState) {
	require.NoError(h.t, h.hostConsensusStates.Set(ctx, height.String(), cs))
}

// Events returns every event EmitEvent recorded, in emission order.
func (h *Host) Events() []host.Event { return append([]host.Event(nil), h.events...) }

// Logs returns every message LogMessage recorded, in emission order.
func (h *Host) Logs() []string { return append([]string(nil), h.logs...) }

// EventsOfType filters Events() down to a single event kind, the common
// case a test wants ("did a SendPacket event fire, and with what
// attributes").
func (h *Host) EventsOfType(eventType string) []host.Event {
	var out []host.Event
	for _, e := range h.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// NewClient mints a mock client and stores it at height, returning the
// minted client ID. Every handshake/packet scenario in this
// repository's tests builds its two chains' clients this way rather than
// going through MsgCreateClient, since client creation itself is covered
// by core/02-client/keeper's own tests.
func (h *Host) NewClient(ctx context.Context, height exported.Height, timestamp uint64, root []byte) string {
	counter := h.IncreaseClientCounter(ctx)
	clientID := host.FormatCounterID(mock.ClientType, counter)
	cs := &mock.ClientState{LatestHeightValue: height}
	consensus := &mock.ConsensusState{Timestamp: timestamp, Root: root}
	h.StoreClientState(ctx, clientID, cs)
	h.StoreClientType(ctx, clientID, mock.ClientType)
	h.StoreConsensusState(ctx, clientID, height, consensus)
	h.StoreUpdateTime(ctx, clientID, height, h.HostTimestamp(ctx))
	h.StoreUpdateHeight(ctx, clientID, height, h.HostHeight(ctx))
	return clientID
}
