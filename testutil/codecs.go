package testutil

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections/codec"

	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
	"github.com/tokenize-x/ibc-core/core/exported"
)

// clientEnvelope wraps a polymorphic exported.ClientState/ConsensusState's
// own Marshal() output with the light client type it belongs to, so a
// later Get can hand the bytes back to clientRegistry for the matching
// variant's decode function. ibc-go's real host does the equivalent
// dispatch through a protobuf Any; JSON stands in here the same way it
// does for ConnectionEnd.Marshal/ChannelEnd.Marshal.
type clientEnvelope struct {
	Type string
	Raw  []byte
}

// clientStateValueCodec is the codec.ValueCodec[exported.ClientState]
// backing testutil.Host's client_states collections.Map. A concrete
// proto.Message-backed ValueCodec (codec.CollValue) cannot apply here:
// exported.ClientState is an
// interface satisfied by multiple unrelated light client variants, so the
// codec itself must carry the type-dispatch the registry otherwise does.
type clientStateValueCodec struct{}

var _ codec.ValueCodec[exported.ClientState] = clientStateValueCodec{}

func (clientStateValueCodec) Encode(value exported.ClientState) ([]byte, error) {
	return json.Marshal(clientEnvelope{Type: value.ClientType(), Raw: value.Marshal()})
}

func (clientStateValueCodec) Decode(b []byte) (exported.ClientState, error) {
	var env clientEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	decode, err := globalRegistry.clientStateCodec(env.Type)
	if err != nil {
		return nil, err
	}
	return decode(env.Raw)
}

func (c clientStateValueCodec) EncodeJSON(value exported.ClientState) ([]byte, error) { return c.Encode(value) }

func (c clientStateValueCodec) DecodeJSON(b []byte) (exported.ClientState, error) { return c.Decode(b) }

func (clientStateValueCodec) Stringify(value exported.ClientState) string {
	return fmt.Sprintf("ClientState{%s}", value.ClientType())
}

func (clientStateValueCodec) ValueType() string { return "exported.ClientState" }

// consensusStateValueCodec mirrors clientStateValueCodec for
// exported.ConsensusState, used both for the per-client, per-height
// consensus state map and for the host's own historical consensus
// states.
type consensusStateValueCodec struct{}

var _ codec.ValueCodec[exported.ConsensusState] = consensusStateValueCodec{}

func (consensusStateValueCodec) Encode(value exported.ConsensusState) ([]byte, error) {
	return json.Marshal(clientEnvelope{Type: value.ClientType(), Raw: value.Marshal()})
}

func (consensusStateValueCodec) Decode(b []byte) (exported.ConsensusState, error) {
	var env clientEnvelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, err
	}
	decode, err := globalRegistry.consensusStateCodec(env.Type)
	if err != nil {
		return nil, err
	}
	return decode(env.Raw)
}

func (c consensusStateValueCodec) EncodeJSON(value exported.ConsensusState) ([]byte, error) {
	return c.Encode(value)
}

func (c consensusStateValueCodec) DecodeJSON(b []byte) (exported.ConsensusState, error) {
	return c.Decode(b)
}

func (consensusStateValueCodec) Stringify(value exported.ConsensusState) string {
	return fmt.Sprintf("ConsensusState{%s}", value.ClientType())
}

func (consensusStateValueCodec) ValueType() string { return "exported.ConsensusState" }

// connectionEndValueCodec is a plain JSON collections.ValueCodec for the
// monomorphic connectiontypes.ConnectionEnd struct; no registry dispatch
// needed, unlike the light client codecs above.
type connectionEndValueCodec struct{}

var _ codec.ValueCodec[connectiontypes.ConnectionEnd] = connectionEndValueCodec{}

func (connectionEndValueCodec) Encode(value connectiontypes.ConnectionEnd) ([]byte, error) {
	return json.Marshal(value)
}

func (connectionEndValueCodec) Decode(b []byte) (connectiontypes.ConnectionEnd, error) {
	var v connectiontypes.ConnectionEnd
	err := json.Unmarshal(b, &v)
	return v, err
}

func (c connectionEndValueCodec) EncodeJSON(value connectiontypes.ConnectionEnd) ([]byte, error) {
	return c.Encode(value)
}

func (c connectionEndValueCodec) DecodeJSON(b []byte) (connectiontypes.ConnectionEnd, error) {
	return c.Decode(b)
}

func (connectionEndValueCodec) Stringify(value connectiontypes.ConnectionEnd) string {
	return fmt.Sprintf("ConnectionEnd{%s}", value.State)
}

func (connectionEndValueCodec) ValueType() string { return "connectiontypes.ConnectionEnd" }

// channelEndValueCodec mirrors connectionEndValueCodec for
// channeltypes.ChannelEnd.
type channelEndValueCodec struct{}

var _ codec.ValueCodec[channeltypes.ChannelEnd] = channelEndValueCodec{}

func (channelEndValueCodec) Encode(value channeltypes.ChannelEnd) ([]byte, error) {
	return json.Marshal(value)
}

func (channelEndValueCodec) Decode(b []byte) (channeltypes.ChannelEnd, error) {
	var v channeltypes.ChannelEnd
	err := json.Unmarshal(b, &v)
	return v, err
}

func (c channelEndValueCodec) EncodeJSON(value channeltypes.ChannelEnd) ([]byte, error) {
	return c.Encode(value)
}

func (c channelEndValueCodec) DecodeJSON(b []byte) (channeltypes.ChannelEnd, error) {
	return c.Decode(b)
}

func (channelEndValueCodec) Stringify(value channeltypes.ChannelEnd) string {
	return fmt.Sprintf("ChannelEnd{%s}", value.State)
}

func (channelEndValueCodec) ValueType() string { return "channeltypes.ChannelEnd" }

// globalRegistry backs the two light-client value codecs above. A single
// process-wide registry (rather than one per Host) keeps Encode/Decode
// method sets free of a Host reference, which collections.ValueCodec's
// interface has no room for; RegisterClientType on a *testutil.Host
// still only affects that call's own process, since tests never run
// concurrently across packages that register conflicting types for the
// same ClientType string.
var globalRegistry = newClientRegistry()
