package types

import "context"

// Module is the callback interface a routable application implements:
// the router resolves the owning module by port and
// invokes the step-appropriate callback, refusing the transition if the
// module returns an error.
type Module interface {
	// OnChanOpenInit lets the module validate or propose a version; the
	// returned version becomes the channel's Version field.
	OnChanOpenInit(
		ctx context.Context, order Order, connectionHops []string,
		portID, channelID string, counterparty Counterparty, version string,
	) (string, error)

	// OnChanOpenTry lets the module accept or renegotiate the
	// counterparty's proposed version.
	OnChanOpenTry(
		ctx context.Context, order Order, connectionHops []string,
		portID, channelID string, counterparty Counterparty, counterpartyVersion string,
	) (string, error)

	// OnChanOpenAck and OnChanOpenConfirm are informational: the module
	// may reject the handshake but cannot alter it further.
	OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyVersion string) error
	OnChanOpenConfirm(ctx context.Context, portID, channelID string) error

	OnChanCloseInit(ctx context.Context, portID, channelID string) error
	OnChanCloseConfirm(ctx context.Context, portID, channelID string) error

	// OnRecvPacket returns the acknowledgement to write, or nil if the
	// module will acknowledge asynchronously later.
	OnRecvPacket(ctx context.Context, packet Packet, relayer string) *Acknowledgement
	OnAcknowledgementPacket(ctx context.Context, packet Packet, acknowledgement Acknowledgement, relayer string) error
	OnTimeoutPacket(ctx context.Context, packet Packet, relayer string) error
}
