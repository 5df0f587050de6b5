// Package exported declares the cross-cutting interfaces shared by every
// protocol layer: the height ordering, the polymorphic light client
// capability set, and the commitment path abstraction. Nothing in this
// package knows about connections, channels, or packets, so every other
// core package may depend on it without risk of an import cycle.
package exported

import (
	"context"
	"strconv"
)

// Height is a two-component height: the revision a chain is currently on
// (bumped across hard-fork upgrades) and the height within that revision.
// Total order is lexicographic on the pair.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// NewHeight constructs a Height. RevisionHeight == 0 is a caller error; the
// protocol reserves height zero to mean "unset".
func NewHeight(revisionNumber, revisionHeight uint64) Height {
	return Height{RevisionNumber: revisionNumber, RevisionHeight: revisionHeight}
}

// ZeroHeight returns the unset height, used as the "no timeout" sentinel.
func ZeroHeight() Height {
	return Height{}
}

// IsZero reports whether h is the unset height.
func (h Height) IsZero() bool {
	return h.RevisionHeight == 0 && h.RevisionNumber == 0
}

// Compare returns -1, 0, or 1 as h is less than, equal to, or greater than
// other, ordering first by revision number then by revision height.
func (h Height) Compare(other Height) int {
	switch {
	case h.RevisionNumber < other.RevisionNumber:
		return -1
	case h.RevisionNumber > other.RevisionNumber:
		return 1
	case h.RevisionHeight < other.RevisionHeight:
		return -1
	case h.RevisionHeight > other.RevisionHeight:
		return 1
	default:
		return 0
	}
}

// LT reports whether h is strictly less than other.
func (h Height) LT(other Height) bool { return h.Compare(other) < 0 }

// LTE reports whether h is less than or equal to other.
func (h Height) LTE(other Height) bool { return h.Compare(other) <= 0 }

// GT reports whether h is strictly greater than other.
func (h Height) GT(other Height) bool { return h.Compare(other) > 0 }

// GTE reports whether h is greater than or equal to other.
func (h Height) GTE(other Height) bool { return h.Compare(other) >= 0 }

// EQ reports whether h equals other.
func (h Height) EQ(other Height) bool { return h.Compare(other) == 0 }

// Increment returns the height with RevisionHeight advanced by one.
func (h Height) Increment() Height {
	return Height{RevisionNumber: h.RevisionNumber, RevisionHeight: h.RevisionHeight + 1}
}

// String renders the height in the canonical "<revision>-<height>" form
// used by consensus state paths.
func (h Height) String() string {
	return fmtHeight(h.RevisionNumber, h.RevisionHeight)
}

// ClientStatus is the derived status of a light client: a function of its
// stored state and the host's current time, never persisted directly.
type ClientStatus string

const (
	// Active means the client may be used for proof verification.
	Active ClientStatus = "Active"
	// Frozen means misbehaviour was detected; all further proof-bearing
	// operations are rejected until, if ever, the client is replaced via
	// UpgradeClient.
	Frozen ClientStatus = "Frozen"
	// Expired means the client's latest consensus state is older than its
	// trusting period; it can no longer be updated or trusted.
	Expired ClientStatus = "Expired"
	// Unknown is returned when status cannot be determined, e.g. the
	// client state could not decode its stored consensus state.
	Unknown ClientStatus = "Unknown"
)

// MerklePath is an ordered list of path segments locating a value in a
// Merkle-committed key-value store, the last segment being the leaf key.
// The first segment is typically the store's commitment prefix.
type MerklePath struct {
	KeyPath []string
}

// NewMerklePath joins a commitment prefix with a leaf path.
func NewMerklePath(keyPath ...string) MerklePath {
	return MerklePath{KeyPath: keyPath}
}

// ClientMessage is the envelope a light client's VerifyClientMessage
// consumes: a Header on the happy path, or Misbehaviour evidence. It is a
// marker interface only; each client variant defines its own concrete
// types satisfying it.
type ClientMessage interface {
	ClientType() string
}

// ClientState is the capability set every light client variant
// implements. It is intentionally small: the engine drives
// a client exclusively through these methods and never inspects a
// variant's internal fields.
type ClientState interface {
	// ClientType identifies the variant, used as the prefix when minting
	// client identifiers ("<client_type>-<counter>").
	ClientType() string

	// LatestHeight is the highest height this client has a consensus
	// state stored for.
	LatestHeight() Height

	// Status derives the client's current status from its stored state
	// and the host's current time.
	Status(ctx context.Context, clientID string, clientStore ClientStore) ClientStatus

	// Initialize is called exactly once, by CreateClient, to let the
	// variant validate and persist its initial consensus state.
	Initialize(ctx context.Context, clientStore ClientStore, consensusState ConsensusState) error

	// VerifyClientMessage validates msg without mutating stored state. A
	// successful return means CheckForMisbehaviour/UpdateState may now be
	// called against the same msg.
	VerifyClientMessage(ctx context.Context, clientStore ClientStore, msg ClientMessage) error

	// CheckForMisbehaviour inspects an already-verified msg for evidence
	// of equivocation or other protocol violation.
	CheckForMisbehaviour(ctx context.Context, clientStore ClientStore, msg ClientMessage) bool

	// UpdateStateOnMisbehaviour freezes the client in response to
	// verified misbehaviour.
	UpdateStateOnMisbehaviour(ctx context.Context, clientStore ClientStore, msg ClientMessage)

	// UpdateState derives the consensus state(s) implied by an
	// already-verified, non-misbehaving msg, recording whatever auxiliary
	// bookkeeping it needs in clientStore, and returns them for the engine
	// to persist under its own height-indexed consensus state mapping.
	UpdateState(ctx context.Context, clientStore ClientStore, msg ClientMessage) []ConsensusStateUpdate

	// VerifyMembership checks that value is committed at path under the
	// consensus state stored at height, subject to the given delay
	// periods.
	VerifyMembership(
		ctx context.Context, clientStore ClientStore,
		height Height, delayTimePeriod, delayBlockPeriod uint64,
		proof []byte, prefix MerklePath, path string, value []byte,
	) error

	// VerifyNonMembership checks that no value is committed at path.
	VerifyNonMembership(
		ctx context.Context, clientStore ClientStore,
		height Height, delayTimePeriod, delayBlockPeriod uint64,
		proof []byte, prefix MerklePath, path string,
	) error

	// VerifyUpgrade checks, against this (pre-upgrade) client's own
	// consensus state, that the counterparty chain it represents actually
	// committed to replacing itself with newClient/newConsState, before
	// UpgradeClient is allowed to overwrite the stored client state.
	// Receiving two arbitrary byte slices as "proofs" must never be
	// sufficient on its own to replace a client's trust root.
	VerifyUpgrade(
		ctx context.Context, clientStore ClientStore,
		newClient ClientState, newConsState ConsensusState,
		upgradeClientProof, upgradeConsensusStateProof []byte,
	) error

	// Marshal returns the canonical bytes a counterparty chain is
	// expected to have committed for this value, used both to persist it
	// through a host's store and as the expected "value" argument to a
	// connection/channel handshake membership check. Concrete variants
	// are free to choose any deterministic encoding; the engine never
	// interprets these bytes.
	Marshal() []byte
}

// ConsensusStateUpdate pairs a height UpdateState derived with the
// consensus state to store there, letting the engine persist it without
// needing to read the value back out of clientStore itself.
type ConsensusStateUpdate struct {
	Height         Height
	ConsensusState ConsensusState
}

// ConsensusState is a snapshot of a remote chain at a given Height,
// sufficient to verify proofs asserted at that height.
type ConsensusState interface {
	ClientType() string
	// GetTimestamp returns the chain's wall-clock time at this snapshot,
	// in Unix nanoseconds.
	GetTimestamp() uint64
	// GetRoot returns the commitment root proofs are checked against.
	GetRoot() []byte
	// Marshal returns the canonical bytes this consensus state is stored
	// as, mirroring ClientState.Marshal.
	Marshal() []byte
}

// ClientStore is the narrow, per-client view of host storage a client
// variant may use for any auxiliary metadata beyond the consensus-state
// mapping the engine already manages on its behalf (e.g. a Tendermint
// client's own per-height consensus states). The engine passes the same
// value on every call for a given client ID within one host call.
type ClientStore interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
	Delete(key string)
}

func fmtHeight(revision, height uint64) string {
	return strconv.FormatUint(revision, 10) + "-" + strconv.FormatUint(height, 10)
}
