package types

import "github.com/tokenize-x/ibc-core/core/exported"

// PacketEndpoint names the port/channel pair a packet enters or leaves
// through on one chain.
type PacketEndpoint struct {
	PortID    string
	ChannelID string
}

// Packet is the wire envelope carried between two channel ends. At least
// one of TimeoutHeight or TimeoutTimestamp must be non-zero.
type Packet struct {
	Sequence         uint64
	Source           PacketEndpoint
	Destination      PacketEndpoint
	Data             []byte
	TimeoutHeight    exported.Height
	TimeoutTimestamp uint64 // Unix nanoseconds; 0 means "no timestamp timeout"
}

// HasValidTimeout reports whether at least one timeout dimension is set,
// the basic well-formedness check every packet message validates first.
func (p Packet) HasValidTimeout() bool {
	return !p.TimeoutHeight.IsZero() || p.TimeoutTimestamp != 0
}

// Acknowledgement is the application-defined response a receiving module
// may return from OnRecvPacket. A nil Acknowledgement means the module
// chose to acknowledge asynchronously (no ack is written now).
type Acknowledgement struct {
	Success bool
	Data    []byte
}
