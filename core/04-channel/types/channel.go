// Package types holds the ICS-04 channel and packet types: the channel
// end, ordering, packet envelope, and the commitment hashing scheme the
// wire protocol fixes byte-for-byte.
package types

import "encoding/json"

// State is a channel's position in its handshake, or Closed once it has
// stopped carrying packets.
type State int32

const (
	// Uninit is the zero value: no ChannelEnd stored yet.
	Uninit State = iota
	// Init is set by ChanOpenInit.
	Init
	// TryOpen is set by ChanOpenTry.
	TryOpen
	// Open is set by ChanOpenAck (initiator) and ChanOpenConfirm (peer).
	Open
	// Closed is terminal: set by CloseInit or CloseConfirm. A closed
	// channel never reopens.
	Closed
)

// String renders the state for logs and events.
func (s State) String() string {
	switch s {
	case Uninit:
		return "STATE_UNINITIALIZED_UNSPECIFIED"
	case Init:
		return "STATE_INIT"
	case TryOpen:
		return "STATE_TRYOPEN"
	case Open:
		return "STATE_OPEN"
	case Closed:
		return "STATE_CLOSED"
	default:
		return "STATE_UNKNOWN"
	}
}

// Order is a channel's packet delivery guarantee.
type Order int32

const (
	// Unordered channels deliver packets in any order and guard only
	// against double-receipt via a receipt store.
	Unordered Order = iota
	// Ordered channels deliver packets strictly in sequence; any
	// violation (a timed-out packet) closes the channel.
	Ordered
)

// String renders the ordering for logs and events.
func (o Order) String() string {
	if o == Ordered {
		return "ORDER_ORDERED"
	}
	return "ORDER_UNORDERED"
}

// Counterparty identifies the channel end on the other chain.
type Counterparty struct {
	PortID    string
	ChannelID string // empty iff the owning ChannelEnd.State == Init
}

// ChannelEnd is the persistent record of one side of a channel.
type ChannelEnd struct {
	State          State
	Ordering       Order
	Counterparty   Counterparty
	ConnectionHops []string // length 1 for this engine
	Version        string
}

// IsOpen reports whether the channel has completed its handshake and has
// not since been closed.
func (c ChannelEnd) IsOpen() bool {
	return c.State == Open
}

// ConnectionHop returns the single connection this channel runs over.
func (c ChannelEnd) ConnectionHop() (string, bool) {
	if len(c.ConnectionHops) == 0 {
		return "", false
	}
	return c.ConnectionHops[0], true
}

// Marshal returns the canonical bytes a counterparty commits a
// ChannelEnd under, mirroring connectiontypes.ConnectionEnd.Marshal.
func (c ChannelEnd) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}
