// Package mock implements the simplest possible channeltypes.Module: an
// echo application that accepts any version and channel order, and
// acknowledges every packet by echoing its data back as a success
// acknowledgement. It exists purely so the packet engine's tests and the
// demo binary have something concrete to route packets through without a
// real application protocol.
package mock

import (
	"context"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
)

// Version is the only version string this module proposes or accepts.
const Version = "mock-1"

// Module is a stateless echo application. A *Module also records every
// callback it receives in Received, in the order the engine invoked them.
type Module struct {
	Received []Call
}

// Call is one recorded invocation of a Module callback, kept for test
// assertions rather than anything the protocol itself consumes.
type Call struct {
	Name      string
	PortID    string
	ChannelID string
}

var _ channeltypes.Module = (*Module)(nil)

// NewModule returns a ready-to-bind echo module.
func NewModule() *Module {
	return &Module{}
}

func (m *Module) record(name, portID, channelID string) {
	m.Received = append(m.Received, Call{Name: name, PortID: portID, ChannelID: channelID})
}

// OnChanOpenInit proposes Version regardless of what the caller asked for.
func (m *Module) OnChanOpenInit(
	ctx context.Context, order channeltypes.Order, connectionHops []string,
	portID, channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	m.record("OnChanOpenInit", portID, channelID)
	return Version, nil
}

// OnChanOpenTry accepts whatever version the counterparty proposed and
// echoes it back, or falls back to Version if none was proposed.
func (m *Module) OnChanOpenTry(
	ctx context.Context, order channeltypes.Order, connectionHops []string,
	portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (string, error) {
	m.record("OnChanOpenTry", portID, channelID)
	if counterpartyVersion == "" {
		return Version, nil
	}
	return counterpartyVersion, nil
}

func (m *Module) OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyVersion string) error {
	m.record("OnChanOpenAck", portID, channelID)
	return nil
}

func (m *Module) OnChanOpenConfirm(ctx context.Context, portID, channelID string) error {
	m.record("OnChanOpenConfirm", portID, channelID)
	return nil
}

func (m *Module) OnChanCloseInit(ctx context.Context, portID, channelID string) error {
	m.record("OnChanCloseInit", portID, channelID)
	return nil
}

func (m *Module) OnChanCloseConfirm(ctx context.Context, portID, channelID string) error {
	m.record("OnChanCloseConfirm", portID, channelID)
	return nil
}

// OnRecvPacket always acknowledges success, echoing the packet's data
// back verbatim as the acknowledgement payload.
func (m *Module) OnRecvPacket(ctx context.Context, packet channeltypes.Packet, relayer string) *channeltypes.Acknowledgement {
	m.record("OnRecvPacket", packet.Destination.PortID, packet.Destination.ChannelID)
	return &channeltypes.Acknowledgement{Success: true, Data: append([]byte(nil), packet.Data...)}
}

func (m *Module) OnAcknowledgementPacket(
	ctx context.Context, packet channeltypes.Packet, acknowledgement channeltypes.Acknowledgement, relayer string,
) error {
	m.record("OnAcknowledgementPacket", packet.Source.PortID, packet.Source.ChannelID)
	return nil
}

func (m *Module) OnTimeoutPacket(ctx context.Context, packet channeltypes.Packet, relayer string) error {
	m.record("OnTimeoutPacket", packet.Source.PortID, packet.Source.ChannelID)
	return nil
}
