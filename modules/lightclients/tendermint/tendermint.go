// Package tendermint implements a trimmed CometBFT light client: ibc-go's
// 07-tendermint trust model collapsed onto the single exported.ClientState
// capability set this engine drives. It verifies a CometBFT SignedHeader
// against its ValidatorSet for both adjacent and skipping (non-adjacent)
// updates, tracks a trusting period and max clock drift, and freezes on
// conflicting-header misbehaviour.
package tendermint

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	cmtmath "github.com/cometbft/cometbft/libs/math"
	cmttypes "github.com/cometbft/cometbft/types"

	"github.com/tokenize-x/ibc-core/core/exported"
)

// ClientType is the prefix this variant mints client IDs under.
const ClientType = "07-tendermint"

// ClientState is the tendermint variant's client record: the trust
// parameters (TrustingPeriod, UnbondingPeriod, TrustLevel, MaxClockDrift)
// plus the latest height and the height the client froze at, zero while
// it is healthy.
type ClientState struct {
	ChainID           string           `json:"chain_id"`
	TrustLevel        cmtmath.Fraction `json:"trust_level"`
	TrustingPeriod    time.Duration    `json:"trusting_period"`
	UnbondingPeriod   time.Duration    `json:"unbonding_period"`
	MaxClockDrift     time.Duration    `json:"max_clock_drift"`
	LatestHeightValue exported.Height  `json:"latest_height"`
	FrozenHeight      exported.Height  `json:"frozen_height"`
}

var _ exported.ClientState = (*ClientState)(nil)

func (c *ClientState) ClientType() string           { return ClientType }
func (c *ClientState) LatestHeight() exported.Height { return c.LatestHeightValue }

// Status is Frozen once FrozenHeight is set, Expired if the latest stored
// consensus state is older than TrustingPeriod relative to the host's
// current time (threaded in via exported.WithHostTimestamp), Active
// otherwise.
func (c *ClientState) Status(ctx context.Context, clientID string, store exported.ClientStore) exported.ClientStatus {
	if !c.FrozenHeight.IsZero() {
		return exported.Frozen
	}
	latest, ok := getConsensusState(store, c.LatestHeightValue)
	if !ok {
		return exported.Unknown
	}
	hostNow, ok := exported.HostTimestampFromContext(ctx)
	if !ok {
		return exported.Active
	}
	if hostNow > latest.Timestamp && time.Duration(hostNow-latest.Timestamp) > c.TrustingPeriod {
		return exported.Expired
	}
	return exported.Active
}

// Initialize persists the chain's starting consensus state into the
// client's own auxiliary store, keyed by height the same way UpdateState
// keys every later one, so a following update can look up its trusted
// height's NextValidatorsHash without the engine's help.
func (c *ClientState) Initialize(ctx context.Context, store exported.ClientStore, consensusState exported.ConsensusState) error {
	cs, ok := consensusState.(*ConsensusState)
	if !ok {
		return errInvalidConsensusState
	}
	putConsensusState(store, c.LatestHeightValue, cs)
	return nil
}

// VerifyClientMessage validates a Header's commit against its own
// ValidatorSet and, via the trusted height's stored NextValidatorsHash,
// against the chain of trust back to a height this client already
// trusts: the adjacent and skipping verification cases real ibc-go's
// tendermint client distinguishes.
func (c *ClientState) VerifyClientMessage(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) error {
	switch m := msg.(type) {
	case Header:
		return c.verifyHeader(ctx, store, m)
	case Misbehaviour:
		if err := c.verifyHeader(ctx, store, m.HeaderOne); err != nil {
			return err
		}
		return c.verifyHeader(ctx, store, m.HeaderTwo)
	default:
		return errUnknownClientMessage
	}
}

func (c *ClientState) verifyHeader(ctx context.Context, store exported.ClientStore, header Header) error {
	if header.SignedHeader.Header == nil || header.SignedHeader.Commit == nil ||
		header.ValidatorSet == nil || header.TrustedValidators == nil {
		return errInvalidHeader
	}
	if header.SignedHeader.Header.ChainID != c.ChainID {
		return errChainIDMismatch
	}
	if !bytes.Equal(header.ValidatorSet.Hash(), header.SignedHeader.Header.ValidatorsHash) {
		return errValidatorSetMismatch
	}

	trusted, ok := getConsensusState(store, header.TrustedHeight)
	if !ok {
		return errTrustedConsensusStateNotFound
	}
	if !bytes.Equal(trusted.NextValidatorsHash, header.TrustedValidators.Hash()) {
		return errTrustedValidatorSetMismatch
	}
	if hostNow, ok := exported.HostTimestampFromContext(ctx); ok {
		if time.Duration(hostNow-trusted.Timestamp) > c.TrustingPeriod {
			return errTrustingPeriodExpired
		}
		if header.SignedHeader.Header.Time.UnixNano() > int64(hostNow)+int64(c.MaxClockDrift) {
			return errHeaderFromFuture
		}
	}

	if header.Height.RevisionHeight == header.TrustedHeight.RevisionHeight+1 {
		return header.ValidatorSet.VerifyCommitLight(
			c.ChainID, header.SignedHeader.Commit.BlockID, int64(header.Height.RevisionHeight), header.SignedHeader.Commit)
	}
	return header.TrustedValidators.VerifyCommitLightTrusting(c.ChainID, header.SignedHeader.Commit, c.TrustLevel)
}

// CheckForMisbehaviour reports true for an explicit Misbehaviour message
// whose two headers commit to different block IDs at the same height,
// the conflicting-header case this engine freezes clients for.
func (c *ClientState) CheckForMisbehaviour(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) bool {
	m, ok := msg.(Misbehaviour)
	if !ok {
		return false
	}
	return m.HeaderOne.Height.EQ(m.HeaderTwo.Height) &&
		!bytes.Equal(m.HeaderOne.SignedHeader.Commit.BlockID.Hash, m.HeaderTwo.SignedHeader.Commit.BlockID.Hash)
}

// UpdateStateOnMisbehaviour freezes the client at the conflicting height.
func (c *ClientState) UpdateStateOnMisbehaviour(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) {
	if m, ok := msg.(Misbehaviour); ok {
		c.FrozenHeight = m.HeaderOne.Height
	}
}

// UpdateState records the header's resulting consensus state in the
// client's own store (so a later update can use it as a trusted height)
// and returns it for the engine to persist.
func (c *ClientState) UpdateState(ctx context.Context, store exported.ClientStore, msg exported.ClientMessage) []exported.ConsensusStateUpdate {
	header, ok := msg.(Header)
	if !ok {
		return nil
	}
	cs := &ConsensusState{
		Timestamp:          uint64(header.SignedHeader.Header.Time.UnixNano()),
		Root:               append([]byte(nil), header.SignedHeader.Header.AppHash...),
		NextValidatorsHash: append([]byte(nil), header.SignedHeader.Header.NextValidatorsHash...),
	}
	putConsensusState(store, header.Height, cs)
	if header.Height.GT(c.LatestHeightValue) {
		c.LatestHeightValue = header.Height
	}
	return []exported.ConsensusStateUpdate{{Height: header.Height, ConsensusState: cs}}
}

// VerifyMembership delegates to core/23-commitment's ics23 facade against
// this client's own Tendermint proof spec (IAVL nested under the
// CometBFT multistore root).
func (c *ClientState) VerifyMembership(
	ctx context.Context, store exported.ClientStore,
	height exported.Height, delayTimePeriod, delayBlockPeriod uint64,
	proof []byte, prefix exported.MerklePath, path string, value []byte,
) error {
	cs, ok := getConsensusState(store, height)
	if !ok {
		return errConsensusStateNotFound
	}
	fullPath := applyPrefix(prefix, path)
	return verifyMembership(cs.Root, proof, fullPath, value)
}

// VerifyNonMembership delegates the same way as VerifyMembership.
func (c *ClientState) VerifyNonMembership(
	ctx context.Context, store exported.ClientStore,
	height exported.Height, delayTimePeriod, delayBlockPeriod uint64,
	proof []byte, prefix exported.MerklePath, path string,
) error {
	cs, ok := getConsensusState(store, height)
	if !ok {
		return errConsensusStateNotFound
	}
	fullPath := applyPrefix(prefix, path)
	return verifyNonMembership(cs.Root, proof, fullPath)
}

// VerifyUpgrade proves that the counterparty chain this client represents
// itself committed to newClient/newConsState, by checking both against
// this (pre-upgrade) client's own trusted root at its latest height,
// the same VerifyMembership machinery used for every other proof, just
// pointed at the upgrade paths instead of a connection/channel/packet
// path. A client upgrade without this check would let any caller replace
// the client's trust root outright.
func (c *ClientState) VerifyUpgrade(
	ctx context.Context, store exported.ClientStore,
	newClient exported.ClientState, newConsState exported.ConsensusState,
	upgradeClientProof, upgradeConsensusStateProof []byte,
) error {
	cs, ok := getConsensusState(store, c.LatestHeightValue)
	if !ok {
		return errConsensusStateNotFound
	}
	clientPath := applyPrefix(exported.MerklePath{}, upgradedClientStatePath(c.LatestHeightValue))
	if err := verifyMembership(cs.Root, upgradeClientProof, clientPath, newClient.Marshal()); err != nil {
		return err
	}
	consStatePath := applyPrefix(exported.MerklePath{}, upgradedConsensusStatePath(c.LatestHeightValue))
	return verifyMembership(cs.Root, upgradeConsensusStateProof, consStatePath, newConsState.Marshal())
}

// Marshal renders the client state deterministically via JSON.
func (c *ClientState) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}

// ConsensusState is a CometBFT chain's state at a trusted height: enough
// to verify proofs against Root and to extend the chain of trust via
// NextValidatorsHash.
type ConsensusState struct {
	Timestamp          uint64 `json:"timestamp"`
	Root               []byte `json:"root"`
	NextValidatorsHash []byte `json:"next_validators_hash"`
}

var _ exported.ConsensusState = (*ConsensusState)(nil)

func (c *ConsensusState) ClientType() string   { return ClientType }
func (c *ConsensusState) GetTimestamp() uint64 { return c.Timestamp }
func (c *ConsensusState) GetRoot() []byte      { return c.Root }
func (c *ConsensusState) Marshal() []byte {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	return b
}

// Header is the tendermint variant's ClientMessage for a normal update: a
// signed header plus the validator set that produced it, and the height
// and validator set of a consensus state this client already trusts.
type Header struct {
	SignedHeader      cmttypes.SignedHeader
	ValidatorSet      *cmttypes.ValidatorSet
	TrustedHeight     exported.Height
	TrustedValidators *cmttypes.ValidatorSet
	Height            exported.Height
}

func (h Header) ClientType() string { return ClientType }

// Misbehaviour is evidence of equivocation: two headers the chain
// produced at the same height with different commits.
type Misbehaviour struct {
	HeaderOne Header
	HeaderTwo Header
}

func (m Misbehaviour) ClientType() string { return ClientType }
