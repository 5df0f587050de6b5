// Package query is a thin, non-mutating adapter over host.ValidationContext
// (plus a host's Lister extension): point lookups and paginated list
// queries returning decoded Go values, with no gRPC service or protobuf
// wire schema: the engine consumes and serves decoded domain objects,
// and queries are no different. A client/cli package wraps Reader with
// cobra commands the way a chain module's CLI wraps its query server.
package query

import (
	"context"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	host "github.com/tokenize-x/ibc-core/core/24-host"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// Lister extends host.ValidationContext with the enumeration primitives
// the protocol engine itself never needs (every keeper operation
// addresses state by a known ID) but a query surface does. A host wires
// this up however it stores its keys; testutil.Host backs it with the
// same collections.Map iteration its ExecutionContext writes through.
type Lister interface {
	host.ValidationContext

	ListClients(ctx context.Context) []string
	ListConnections(ctx context.Context) []string
	ListChannels(ctx context.Context) []channeltypes.PacketEndpoint
	ListPacketCommitmentSequences(ctx context.Context, portID, channelID string) []uint64
	ListPacketAcknowledgementSequences(ctx context.Context, portID, channelID string) []uint64
}

// Page is a single page of a list query: the items themselves, an opaque
// cursor to pass back in to continue, and the host height the page was
// read at so a caller can detect state moving under them across calls.
type Page[T any] struct {
	Items      []T
	NextCursor string
	HostHeight exported.Height
}

// Reader is the query engine: stateless, holding only a reference to the
// host state it reads from.
type Reader struct {
	ctx  Lister
	host context.Context
}

// NewReader returns a Reader over the given host state, read at whatever
// height hostCtx currently observes.
func NewReader(hostCtx context.Context, lister Lister) *Reader {
	return &Reader{ctx: lister, host: hostCtx}
}

// ClientState looks up a single client record.
func (r *Reader) ClientState(clientID string) (exported.ClientState, bool) {
	return r.ctx.ClientState(r.host, clientID)
}

// ConsensusState looks up a single consensus state snapshot.
func (r *Reader) ConsensusState(clientID string, height exported.Height) (exported.ConsensusState, bool) {
	return r.ctx.ConsensusState(r.host, clientID, height)
}

// Connection looks up a single connection end.
func (r *Reader) Connection(connectionID string) (connectiontypes.ConnectionEnd, bool) {
	return r.ctx.ConnectionEnd(r.host, connectionID)
}

// Channel looks up a single channel end.
func (r *Reader) Channel(portID, channelID string) (channeltypes.ChannelEnd, bool) {
	return r.ctx.ChannelEnd(r.host, portID, channelID)
}

// PacketCommitment looks up a single packet commitment.
func (r *Reader) PacketCommitment(portID, channelID string, sequence uint64) ([]byte, bool) {
	return r.ctx.GetPacketCommitment(r.host, portID, channelID, sequence)
}

// PacketAcknowledgement looks up a single ack commitment.
func (r *Reader) PacketAcknowledgement(portID, channelID string, sequence uint64) ([]byte, bool) {
	return r.ctx.GetPacketAcknowledgement(r.host, portID, channelID, sequence)
}

// PacketReceived reports whether sequence has been received on an
// unordered channel.
func (r *Reader) PacketReceived(portID, channelID string, sequence uint64) bool {
	return r.ctx.GetPacketReceipt(r.host, portID, channelID, sequence)
}

// ConnectionChannels lists every channel end riding on a connection.
func (r *Reader) ConnectionChannels(connectionID string) []channeltypes.PacketEndpoint {
	return r.ctx.ConnectionChannels(r.host, connectionID)
}

// Clients pages over every registered client ID.
func (r *Reader) Clients(cursor string, limit int) (Page[string], error) {
	ids, err := paginateIDs(r.ctx.ListClients(r.host), cursor, limit)
	if err != nil {
		return Page[string]{}, err
	}
	return Page[string]{Items: ids.items, NextCursor: ids.next, HostHeight: r.ctx.HostHeight(r.host)}, nil
}

// Connections pages over every stored ConnectionEnd.
func (r *Reader) Connections(cursor string, limit int) (Page[connectiontypes.ConnectionEnd], error) {
	ids, err := paginateIDs(r.ctx.ListConnections(r.host), cursor, limit)
	if err != nil {
		return Page[connectiontypes.ConnectionEnd]{}, err
	}
	items := make([]connectiontypes.ConnectionEnd, 0, len(ids.items))
	for _, id := range ids.items {
		conn, found := r.ctx.ConnectionEnd(r.host, id)
		if found {
			items = append(items, conn)
		}
	}
	return Page[connectiontypes.ConnectionEnd]{Items: items, NextCursor: ids.next, HostHeight: r.ctx.HostHeight(r.host)}, nil
}

// Channels pages over every stored ChannelEnd.
func (r *Reader) Channels(cursor string, limit int) (Page[channeltypes.ChannelEnd], error) {
	endpoints := r.ctx.ListChannels(r.host)
	keys := make([]string, len(endpoints))
	byKey := make(map[string]channeltypes.PacketEndpoint, len(endpoints))
	for i, ep := range endpoints {
		k := ep.PortID + "/" + ep.ChannelID
		keys[i] = k
		byKey[k] = ep
	}
	ids, err := paginateIDs(keys, cursor, limit)
	if err != nil {
		return Page[channeltypes.ChannelEnd]{}, err
	}
	items := make([]channeltypes.ChannelEnd, 0, len(ids.items))
	for _, k := range ids.items {
		ep := byKey[k]
		channel, found := r.ctx.ChannelEnd(r.host, ep.PortID, ep.ChannelID)
		if found {
			items = append(items, channel)
		}
	}
	return Page[channeltypes.ChannelEnd]{Items: items, NextCursor: ids.next, HostHeight: r.ctx.HostHeight(r.host)}, nil
}

// PacketCommitments pages over a single channel's pending commitments.
func (r *Reader) PacketCommitments(portID, channelID, cursor string, limit int) (Page[uint64], error) {
	sequences := r.ctx.ListPacketCommitmentSequences(r.host, portID, channelID)
	seq, err := paginateSequences(sequences, cursor, limit)
	if err != nil {
		return Page[uint64]{}, err
	}
	return Page[uint64]{Items: seq.items, NextCursor: seq.next, HostHeight: r.ctx.HostHeight(r.host)}, nil
}

// PacketAcknowledgements pages over a single channel's stored acks.
func (r *Reader) PacketAcknowledgements(portID, channelID, cursor string, limit int) (Page[uint64], error) {
	sequences := r.ctx.ListPacketAcknowledgementSequences(r.host, portID, channelID)
	seq, err := paginateSequences(sequences, cursor, limit)
	if err != nil {
		return Page[uint64]{}, err
	}
	return Page[uint64]{Items: seq.items, NextCursor: seq.next, HostHeight: r.ctx.HostHeight(r.host)}, nil
}

// UnreceivedPackets filters sequences down to those this channel has not
// yet received. It is only defined for unordered channels: an ordered
// channel's "next expected sequence" already answers the same question,
// and since delivery must be strictly sequential there, asking about an
// arbitrary sequence set is meaningless.
func (r *Reader) UnreceivedPackets(portID, channelID string, sequences []uint64) ([]uint64, error) {
	channel, found := r.ctx.ChannelEnd(r.host, portID, channelID)
	if !found {
		return nil, errChannelNotFound
	}
	if channel.Ordering == channeltypes.Ordered {
		return nil, channeltypes.ErrOrderedChannelUnreceivedPacketsUndefined
	}
	var out []uint64
	for _, seq := range sequences {
		if !r.ctx.GetPacketReceipt(r.host, portID, channelID, seq) {
			out = append(out, seq)
		}
	}
	return out, nil
}

// UnreceivedAcks filters sequences down to those still awaiting an
// acknowledgement (i.e. whose commitment has not yet been deleted).
func (r *Reader) UnreceivedAcks(portID, channelID string, sequences []uint64) []uint64 {
	var out []uint64
	for _, seq := range sequences {
		if _, found := r.ctx.GetPacketCommitment(r.host, portID, channelID, seq); found {
			out = append(out, seq)
		}
	}
	return out
}
