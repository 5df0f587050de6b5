package types

// Event type strings fixed by the IBC protocol.
const (
	EventTypeChannelOpenInit    = "channel_open_init"
	EventTypeChannelOpenTry     = "channel_open_try"
	EventTypeChannelOpenAck     = "channel_open_ack"
	EventTypeChannelOpenConfirm = "channel_open_confirm"
	EventTypeChannelCloseInit   = "channel_close_init"
	EventTypeChannelCloseConfirm = "channel_close_confirm"

	EventTypeSendPacket            = "send_packet"
	EventTypeRecvPacket            = "recv_packet"
	EventTypeWriteAcknowledgement  = "write_acknowledgement"
	EventTypeAcknowledgePacket     = "acknowledge_packet"
	EventTypeTimeoutPacket         = "timeout_packet"

	AttributeKeyPortID             = "port_id"
	AttributeKeyChannelID          = "channel_id"
	AttributeKeyConnectionID       = "connection_id"
	AttributeKeyCounterpartyPortID    = "counterparty_port_id"
	AttributeKeyCounterpartyChannelID = "counterparty_channel_id"
	AttributeKeyDataHex             = "packet_data_hex"
	AttributeKeyAckHex              = "packet_ack_hex"
	AttributeKeySequence            = "packet_sequence"
	AttributeKeyTimeoutHeight       = "packet_timeout_height"
	AttributeKeyTimeoutTimestamp    = "packet_timeout_timestamp"
)
