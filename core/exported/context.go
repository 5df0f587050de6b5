package exported

import "context"

// hostTimestampKey is the context key the engine uses to thread the
// host's current wall-clock time down into a client variant's Status
// call, the one place a light client needs "now" without being handed a
// host.ValidationContext directly (ClientState deliberately depends only
// on exported, never on core/24-host, to avoid an import cycle).
type hostTimestampKey struct{}

// WithHostTimestamp returns a context carrying the host's current Unix
// nanosecond timestamp, set by the client keeper immediately before
// invoking ClientState.Status.
func WithHostTimestamp(ctx context.Context, timestamp uint64) context.Context {
	return context.WithValue(ctx, hostTimestampKey{}, timestamp)
}

// HostTimestampFromContext retrieves the timestamp WithHostTimestamp set,
// the expiry check a client variant's Status implementation needs.
func HostTimestampFromContext(ctx context.Context) (uint64, bool) {
	ts, ok := ctx.Value(hostTimestampKey{}).(uint64)
	return ts, ok
}
