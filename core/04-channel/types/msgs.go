package types

import "github.com/tokenize-x/ibc-core/core/exported"

// MsgChannelOpenInit begins a channel handshake over an already-open
// connection (ICS-04 ChanOpenInit).
type MsgChannelOpenInit struct {
	PortID         string
	Ordering       Order
	ConnectionHops []string
	Counterparty   Counterparty
	Version        string
	Signer         string
}

// MsgChannelOpenTry is submitted by the counterparty once a relayer
// observes, via proof, that the initiator stored an Init channel
// (ICS-04 ChanOpenTry).
type MsgChannelOpenTry struct {
	PortID              string
	Ordering            Order
	ConnectionHops      []string
	Counterparty        Counterparty
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         exported.Height
	Signer              string
}

// MsgChannelOpenAck is submitted by the initiator once a relayer observes
// the counterparty moved to TryOpen (ICS-04 ChanOpenAck).
type MsgChannelOpenAck struct {
	PortID                string
	ChannelID             string
	CounterpartyChannelID string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           exported.Height
	Signer                string
}

// MsgChannelOpenConfirm is submitted by the counterparty once a relayer
// observes the initiator moved to Open (ICS-04 ChanOpenConfirm).
type MsgChannelOpenConfirm struct {
	PortID      string
	ChannelID   string
	ProofAck    []byte
	ProofHeight exported.Height
	Signer      string
}

// MsgChannelCloseInit closes an Open channel unilaterally: a local
// decision, so no proof is carried.
type MsgChannelCloseInit struct {
	PortID    string
	ChannelID string
	Signer    string
}

// MsgChannelCloseConfirm closes a channel in response to a verified
// counterparty Closed state.
type MsgChannelCloseConfirm struct {
	PortID      string
	ChannelID   string
	ProofInit   []byte
	ProofHeight exported.Height
	Signer      string
}

// MsgRecvPacket delivers a packet the counterparty committed, proven via
// a membership proof against its commitment path.
type MsgRecvPacket struct {
	Packet      Packet
	ProofCommitment []byte
	ProofHeight exported.Height
	Signer      string
}

// MsgAcknowledgePacket clears a commitment once the counterparty's ack
// has been proven.
type MsgAcknowledgePacket struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     exported.Height
	Signer          string
}

// MsgTimeoutPacket clears a commitment once a relayer proves the
// counterparty will never deliver it.
type MsgTimeoutPacket struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofHeight      exported.Height
	NextSequenceRecv uint64
	Signer           string
}
