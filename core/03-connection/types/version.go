package types

import (
	"github.com/samber/lo"
)

// SupportedVersions is the set of versions this engine will ever offer or
// accept; a connection-scoped restriction (e.g. a chain that only speaks
// an older version) would filter this list, not replace it, but this
// engine only ever carries the one version the protocol defines.
var SupportedVersions = []Version{DefaultVersion}

// sameIdentifier reports whether a and b share an Identifier, the only
// field OpenTry's negotiation and OpenAck's verification compare on for
// this engine's single supported version.
func sameIdentifier(a, b Version) bool {
	return a.Identifier == b.Identifier
}

// PickVersion intersects local (the versions this chain supports) with
// counterparty (the versions offered or accepted by the other side) and
// returns the first mutually supported version, the negotiation OpenTry
// performs.
func PickVersion(local, counterparty []Version) (Version, bool) {
	shared := lo.Filter(local, func(v Version, _ int) bool {
		return lo.ContainsBy(counterparty, func(cv Version) bool { return sameIdentifier(v, cv) })
	})
	if len(shared) == 0 {
		return Version{}, false
	}
	return shared[0], true
}

// ContainsVersion reports whether versions contains one matching target's
// identifier, used by OpenAck to confirm the counterparty's chosen
// version was actually one this chain offered.
func ContainsVersion(versions []Version, target Version) bool {
	return lo.ContainsBy(versions, func(v Version) bool { return sameIdentifier(v, target) })
}

// IsSingleton reports whether versions holds exactly one version, the
// invariant an Open connection's Versions field must satisfy.
func IsSingleton(versions []Version) bool {
	return len(versions) == 1
}
