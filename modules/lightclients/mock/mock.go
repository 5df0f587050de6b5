// Package mock implements the simplest possible exported.ClientState
// capability set: a light client whose "consensus state" is a bare
// timestamp/root pair, and whose membership checks compare proof bytes
// directly against the expected value rather than walking an ics23
// Merkle proof. It exists purely so the engine and its tests can exercise
// every handshake and packet operation without standing up a real
// consensus verifier.
package mock

import (
	"context"
	"encoding/json"

	"github.com/tokenize-x/ibc-core/core/exported"
)

// ClientType is the prefix this variant mints client IDs under.
const ClientType = "06-mock"

// ClientState is the mock variant's client record: nothing beyond the
// latest height and a frozen flag, since there is no real consensus proof
// to track trusting periods or validator sets for.
type ClientState struct {
	LatestHeightValue exported.Height `json:"latest_height"`
	Frozen            bool            `json:"frozen"`
}

var _ exported.ClientState = (*ClientState)(nil)

func (c *ClientState) ClientType() string            { return ClientType }
func (c *ClientState) LatestHeight() exported.Height  { return c.LatestHeightValue }

// Status is Frozen if misbehaviour was ever processed, Active otherwise;
// the mock client never expires since it tracks no trusting period.
func (c *ClientState) Status(ctx context.Context, clientID string, store exported.ClientStore) exported.ClientStatus {
	if c.Frozen {
		return exported.Frozen
	}
	return exported.Active
}

// Initialize performs no validation and writes nothing to the client's
// own store: any ConsensusState value is accepted, and the engine itself
// persists the initial consensus state at the client's starting height.
func (c *ClientState) Initialize(ctx context.Context, store exported.ClientStore, consensusState exported.ConsensusState) error {
	return nil
}

// VerifyClientMessage always succeeds: the mock variant has no signature
// or validator-set check to perform against a Header.
func (c *ClientState) VerifyClientMessage(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) error {
	return nil
}

// CheckForMisbehaviour reports true only for an explicit Misbehaviour
// message; a mock Header is never, by construction, evidence of anything.
func (c *ClientState) CheckForMisbehaviour(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) bool {
	_, ok := msg.(Misbehaviour)
	return ok
}

// UpdateStateOnMisbehaviour freezes the client permanently.
func (c *ClientState) UpdateStateOnMisbehaviour(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) {
	c.Frozen = true
}

// UpdateState advances LatestHeightValue to the Header's height and
// returns the single consensus state it implies for the engine to store.
func (c *ClientState) UpdateState(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) []exported.ConsensusStateUpdate {
	header, ok := msg.(Header)
	if !ok {
		return nil
	}
	if header.Height.GT(c.LatestHeightValue) {
		c.LatestHeightValue = header.Height
	}
	return []exported.ConsensusStateUpdate{{
		Height:         header.Height,
		ConsensusState: &ConsensusState{Timestamp: header.Timestamp, Root: header.Root},
	}}
}

// VerifyMembership is the mock variant's deliberately trivial proof
// check: the "proof" is simply required to equal the expected value
// byte-for-byte. There is no Merkle tree underneath a mock host, so there
// is nothing for core/23-commitment to verify here.
func (c *ClientState) VerifyMembership(
	ctx context.Context, store exported.ClientStore,
	height exported.Height, delayTimePeriod, delayBlockPeriod uint64,
	proof []byte, prefix exported.MerklePath, path string, value []byte,
) error {
	return verifyProof(proof, value)
}

// VerifyNonMembership succeeds only for an explicitly empty proof, the
// mock convention for "nothing is committed at this path".
func (c *ClientState) VerifyNonMembership(
	ctx context.Context, store exported.ClientStore,
	height exported.Height, delayTimePeriod, delayBlockPeriod uint64,
	proof []byte, prefix exported.MerklePath, path string,
) error {
	if len(proof) != 0 {
		return errNonMembership
	}
	return nil
}

// VerifyUpgrade checks the upgrade proofs the same trivial way
// VerifyMembership does: each proof must equal, byte-for-byte, the
// marshaled value it claims to commit. There is no real consensus root
// underneath a mock client to verify a genuine Merkle proof against, but
// the check is still mandatory: an upgrade with mismatched proof bytes
// is rejected rather than silently accepted.
func (c *ClientState) VerifyUpgrade(
	ctx context.Context, store exported.ClientStore,
	newClient exported.ClientState, newConsState exported.ConsensusState,
	upgradeClientProof, upgradeConsensusStateProof []byte,
) error {
	if err := verifyProof(upgradeClientProof, newClient.Marshal()); err != nil {
		return err
	}
	return verifyProof(upgradeConsensusStateProof, newConsState.Marshal())
}

// Marshal renders the client state deterministically via JSON; the mock
// variant has no real wire format to mimic.
func (c *ClientState) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}

// ConsensusState is a snapshot of a mock chain: just enough to let
// VerifyMembership compare against something and let timeout checks read
// a timestamp.
type ConsensusState struct {
	Timestamp uint64 `json:"timestamp"`
	Root      []byte `json:"root"`
}

var _ exported.ConsensusState = (*ConsensusState)(nil)

func (c *ConsensusState) ClientType() string    { return ClientType }
func (c *ConsensusState) GetTimestamp() uint64  { return c.Timestamp }
func (c *ConsensusState) GetRoot() []byte       { return c.Root }
func (c *ConsensusState) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}

// Header is the mock variant's ClientMessage for a normal update: a new
// height/timestamp/root triple, with no signature to verify.
type Header struct {
	Height    exported.Height
	Timestamp uint64
	Root      []byte
}

func (h Header) ClientType() string { return ClientType }

// Misbehaviour is the mock variant's ClientMessage for evidence of a
// protocol violation: two conflicting headers at the same height.
type Misbehaviour struct {
	HeaderOne Header
	HeaderTwo Header
}

func (m Misbehaviour) ClientType() string { return ClientType }
