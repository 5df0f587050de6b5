package host

import (
	"fmt"
	"regexp"
)

// Identifier length bounds, shared by every identifier kind.
const (
	MinIdentifierLength = 1
	MaxIdentifierLength = 64
)

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9._+\-#\[\]<>]+$`)

// ValidateIdentifier checks id against the common ASCII/length rules every
// client, connection, channel, and port identifier is subject to. Kind is
// used only to build a descriptive error.
func ValidateIdentifier(id, kind string) error {
	if len(id) < MinIdentifierLength || len(id) > MaxIdentifierLength {
		return fmt.Errorf("%s identifier %q must be between %d and %d characters", kind, id, MinIdentifierLength, MaxIdentifierLength)
	}
	if !identifierPattern.MatchString(id) {
		return fmt.Errorf("%s identifier %q contains disallowed characters", kind, id)
	}
	return nil
}

var counterSuffixPattern = regexp.MustCompile(`^(.+)-([0-9]+)$`)

// FormatCounterID mints an identifier of the form "<prefix>-<counter>", the
// scheme the engine uses for client, connection, and channel IDs.
func FormatCounterID(prefix string, counter uint64) string {
	return fmt.Sprintf("%s-%d", prefix, counter)
}

// ParseCounterID splits an identifier minted by FormatCounterID back into
// its prefix and counter.
func ParseCounterID(id string) (prefix string, counter uint64, ok bool) {
	m := counterSuffixPattern.FindStringSubmatch(id)
	if m == nil {
		return "", 0, false
	}
	var n uint64
	if _, err := fmt.Sscanf(m[2], "%d", &n); err != nil {
		return "", 0, false
	}
	return m[1], n, true
}
