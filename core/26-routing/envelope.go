// Package routing implements ICS-26: the port-to-module routing table and
// the dispatcher that fans a decoded message out to the 02-client,
// 03-connection, or 04-channel keeper that owns it, in the two-phase
// validate/execute shape every operation in this engine follows.
package routing

import (
	clienttypes "github.com/tokenize-x/ibc-core/core/02-client/types"
	connectiontypes "github.com/tokenize-x/ibc-core/core/03-connection/types"
	channeltypes "github.com/tokenize-x/ibc-core/core/04-channel/types"
)

// MessageKind classifies a message for the core "message" event the
// dispatcher emits before every protocol-specific event.
type MessageKind string

const (
	KindClient     MessageKind = "client"
	KindConnection MessageKind = "connection"
	KindChannel    MessageKind = "channel"
	KindPacket     MessageKind = "packet"
)

// kindOf classifies msg by its concrete type. ok is false for any type the
// dispatcher does not recognize, the case ValidateMsg/ExecuteMsg report as
// ErrUnknownMessage.
func kindOf(msg any) (MessageKind, bool) {
	switch msg.(type) {
	case clienttypes.MsgCreateClient, clienttypes.MsgUpdateClient, clienttypes.MsgUpgradeClient:
		return KindClient, true
	case connectiontypes.MsgConnectionOpenInit, connectiontypes.MsgConnectionOpenTry,
		connectiontypes.MsgConnectionOpenAck, connectiontypes.MsgConnectionOpenConfirm:
		return KindConnection, true
	case channeltypes.MsgChannelOpenInit, channeltypes.MsgChannelOpenTry,
		channeltypes.MsgChannelOpenAck, channeltypes.MsgChannelOpenConfirm,
		channeltypes.MsgChannelCloseInit, channeltypes.MsgChannelCloseConfirm:
		return KindChannel, true
	case channeltypes.MsgRecvPacket, channeltypes.MsgAcknowledgePacket, channeltypes.MsgTimeoutPacket:
		return KindPacket, true
	default:
		return "", false
	}
}
