// Package transfer is a deliberately minimal ICS-20-shaped demo
// application: it encodes a fungible-token transfer payload and
// acknowledges success or failure, but performs no real token movement
// (no bank keeper; that is an application-layer concern, not this
// engine's). It exists to give the router a second,
// realistic-looking module to bind and to demonstrate the port-binding
// conflict channeltypes.Module's single owner per port enforces.
package transfer

import (
	"context"
	"encoding/json"

	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
)

// PortID is the port this module binds.
const PortID = "transfer"

// Version is the only version this module's handshake negotiates.
const Version = "ics20-1"

// FungibleTokenData is the packet payload, carried as JSON rather than a
// real protobuf wire format (this engine's transport-agnostic commitment
// scheme never interprets packet.Data, so any deterministic encoding
// the two sides agree on suffices).
type FungibleTokenData struct {
	Denom    string `json:"denom"`
	Amount   string `json:"amount"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

// EncodePacketData renders data in the wire format this module expects
// inside channeltypes.Packet.Data.
func EncodePacketData(data FungibleTokenData) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Module implements channeltypes.Module for fungible token transfer.
// Transfers are tracked in memory only; there is no bank keeper backing
// real balance movement.
type Module struct {
	// Credits records {receiver: {denom: amount}} for every packet this
	// module has successfully received, standing in for a real bank
	// keeper's mint/burn calls. Amounts are not summed: a later packet for
	// the same receiver and denom replaces the recorded amount.
	Credits map[string]map[string]string
}

var _ channeltypes.Module = (*Module)(nil)

// NewModule returns a Module with no recorded balances.
func NewModule() *Module {
	return &Module{Credits: make(map[string]map[string]string)}
}

// OnChanOpenInit only accepts Version or an empty proposal.
func (m *Module) OnChanOpenInit(
	ctx context.Context, order channeltypes.Order, connectionHops []string,
	portID, channelID string, counterparty channeltypes.Counterparty, version string,
) (string, error) {
	if order != channeltypes.Unordered {
		return "", errOrderedChannelUnsupported
	}
	if version != "" && version != Version {
		return "", errInvalidVersion
	}
	return Version, nil
}

// OnChanOpenTry only accepts Version from the counterparty.
func (m *Module) OnChanOpenTry(
	ctx context.Context, order channeltypes.Order, connectionHops []string,
	portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string,
) (string, error) {
	if order != channeltypes.Unordered {
		return "", errOrderedChannelUnsupported
	}
	if counterpartyVersion != Version {
		return "", errInvalidVersion
	}
	return Version, nil
}

func (m *Module) OnChanOpenAck(ctx context.Context, portID, channelID, counterpartyVersion string) error {
	if counterpartyVersion != Version {
		return errInvalidVersion
	}
	return nil
}

func (m *Module) OnChanOpenConfirm(ctx context.Context, portID, channelID string) error {
	return nil
}

func (m *Module) OnChanCloseInit(ctx context.Context, portID, channelID string) error {
	return nil
}

func (m *Module) OnChanCloseConfirm(ctx context.Context, portID, channelID string) error {
	return nil
}

// OnRecvPacket decodes the payload and credits the receiver in the
// in-memory ledger, acknowledging failure instead of the usual success
// value if the payload does not decode.
func (m *Module) OnRecvPacket(ctx context.Context, packet channeltypes.Packet, relayer string) *channeltypes.Acknowledgement {
	var data FungibleTokenData
	if err := json.Unmarshal(packet.Data, &data); err != nil {
		return &channeltypes.Acknowledgement{Success: false, Data: []byte(err.Error())}
	}
	if data.Denom == "" || data.Amount == "" || data.Receiver == "" {
		return &channeltypes.Acknowledgement{Success: false, Data: []byte("invalid transfer payload")}
	}

	if m.Credits[data.Receiver] == nil {
		m.Credits[data.Receiver] = make(map[string]string)
	}
	m.Credits[data.Receiver][data.Denom] = data.Amount
	return &channeltypes.Acknowledgement{Success: true, Data: []byte("transfer received")}
}

// OnAcknowledgementPacket has nothing to reverse on success; the minimal
// demo module does not track escrowed balances to refund on failure.
func (m *Module) OnAcknowledgementPacket(
	ctx context.Context, packet channeltypes.Packet, acknowledgement channeltypes.Acknowledgement, relayer string,
) error {
	return nil
}

// OnTimeoutPacket has nothing to refund for the same reason.
func (m *Module) OnTimeoutPacket(ctx context.Context, packet channeltypes.Packet, relayer string) error {
	return nil
}
