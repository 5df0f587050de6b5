package types

// Event type strings and attribute keys fixed by the IBC protocol.
const (
	EventTypeCreateClient  = "create_client"
	EventTypeUpdateClient  = "update_client"
	EventTypeUpgradeClient = "upgrade_client"
	EventTypeMisbehaviour  = "misbehaviour"

	AttributeKeyClientID   = "client_id"
	AttributeKeyClientType = "client_type"
	AttributeKeyHeight     = "consensus_height"
)
