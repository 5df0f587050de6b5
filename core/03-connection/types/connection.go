// Package types holds the ICS-03 connection end type and the version
// negotiation helpers the handshake keeper drives.
package types

import (
	"encoding/json"

	"github.com/tokenize-x/ibc-core/core/exported"
)

// State is a connection's position in the four-step handshake.
type State int32

const (
	// Uninit is the zero value: no ConnectionEnd has been stored yet.
	Uninit State = iota
	// Init is set by OpenInit.
	Init
	// TryOpen is set by OpenTry.
	TryOpen
	// Open is set by OpenAck (on the initiating chain) and OpenConfirm
	// (on the counterparty).
	Open
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
	default:
		return "STATE_UNKNOWN"
	}
}

// Counterparty identifies the connection end on the other chain, as seen
// from this chain's side.
type Counterparty struct {
	ClientID     string
	ConnectionID string // empty iff the owning ConnectionEnd.State == Init
	Prefix       exported.MerklePath
}

// Version is a connection version: an identifier plus the feature set the
// two chains have agreed to support over it.
type Version struct {
	Identifier string
	Features   []string
}

// NewVersion returns a version offering every feature name supplied.
func NewVersion(identifier string, features ...string) Version {
	return Version{Identifier: identifier, Features: features}
}

// DefaultVersion is the only version this engine negotiates, mirroring
// ibc-go's own single-version connection protocol.
var DefaultVersion = NewVersion("1")

// ConnectionEnd is the persistent record of one side of a connection.
type ConnectionEnd struct {
	State        State
	ClientID     string
	Counterparty Counterparty
	Versions     []Version
	DelayPeriod  uint64
}

// IsOpen reports whether the connection has completed its handshake.
func (c ConnectionEnd) IsOpen() bool {
	return c.State == Open
}

// GetCounterparty returns the counterparty's view of this connection.
func (c ConnectionEnd) GetCounterparty() Counterparty {
	return c.Counterparty
}

// Marshal returns the canonical bytes a counterparty commits a
// ConnectionEnd under. A handshake step verifies a counterparty's stored
// connection by recomputing these same bytes for the expected end and
// checking them against a membership proof, so the encoding only needs to
// be deterministic, not any particular wire format; a host targeting the
// real ibc-go wire format would substitute a protobuf Marshal here
// instead.
func (c ConnectionEnd) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}
