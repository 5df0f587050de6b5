package types

import "github.com/tokenize-x/ibc-core/core/exported"

// MsgCreateClient mints a new light client (ICS-02 CreateClient).
type MsgCreateClient struct {
	ClientState    exported.ClientState
	ConsensusState exported.ConsensusState
	Signer         string
}

// MsgUpdateClient advances an existing client's trusted state, or
// freezes it on detected misbehaviour (ICS-02 UpdateClient).
type MsgUpdateClient struct {
	ClientID      string
	ClientMessage exported.ClientMessage
	Signer        string
}

// MsgUpgradeClient replaces a client's state via a client-provided
// upgrade proof while preserving its identity (ICS-02 UpgradeClient).
type MsgUpgradeClient struct {
	ClientID                   string
	ClientState                exported.ClientState
	ConsensusState             exported.ConsensusState
	ProofUpgradeClient         []byte
	ProofUpgradeConsensusState []byte
	Signer                     string
}
