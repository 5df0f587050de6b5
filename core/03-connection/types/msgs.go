package types

import "github.com/tokenize-x/ibc-core/core/exported"

// MsgConnectionOpenInit begins a handshake: the initiating chain records
// an Init connection naming a local client and the counterparty client it
// intends to pair with (ICS-03 OpenInit).
type MsgConnectionOpenInit struct {
	ClientID     string
	Counterparty Counterparty
	// Version offers a single version; nil means "offer every version
	// this engine supports" (types.SupportedVersions).
	Version     *Version
	DelayPeriod uint64
	Signer      string
}

// MsgConnectionOpenTry is submitted by the counterparty chain once a
// relayer observes, via proof, that the initiator stored an Init
// connection (ICS-03 OpenTry).
type MsgConnectionOpenTry struct {
	// ClientID is this chain's client of the initiator.
	ClientID string
	// ClientState is the initiator's self-reported client state of this
	// chain, validated via ValidationContext.ValidateSelfClient and
	// proven via ProofClient.
	ClientState exported.ClientState
	// Counterparty is the initiator's view of this connection:
	// {ClientID: initiator's client of this chain, ConnectionID: the
	// connection ID the initiator already minted at OpenInit, Prefix:
	// the initiator's commitment prefix}.
	Counterparty         Counterparty
	DelayPeriod          uint64
	CounterpartyVersions []Version
	ProofHeight          exported.Height
	ProofInit            []byte
	ProofClient          []byte
	ProofConsensus       []byte
	ConsensusHeight      exported.Height
	Signer               string
}

// MsgConnectionOpenAck is submitted by the initiator once a relayer
// observes the counterparty moved to TryOpen (ICS-03 OpenAck).
type MsgConnectionOpenAck struct {
	ConnectionID string
	// ClientState is this chain's self-reported client state as observed
	// by the counterparty, validated the same way OpenTry's is.
	ClientState              exported.ClientState
	Version                  Version
	CounterpartyConnectionID string
	ProofHeight              exported.Height
	ProofTry                 []byte
	ProofClient              []byte
	ProofConsensus           []byte
	ConsensusHeight          exported.Height
	Signer                   string
}

// MsgConnectionOpenConfirm is submitted by the counterparty once a
// relayer observes the initiator moved to Open (ICS-03 OpenConfirm).
type MsgConnectionOpenConfirm struct {
	ConnectionID string
	ProofHeight  exported.Height
	ProofAck     []byte
	Signer       string
}
