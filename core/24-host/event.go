package host

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Attribute is a single event attribute key/value pair.
type Attribute struct {
	Key   string
	Value string
}

// NewAttribute constructs an Attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Event is a typed record appended to a per-execution buffer: never a
// callback, always a value, so the host decides how and when to publish
// it after commit.
type Event struct {
	Type       string
	Attributes []Attribute
}

// NewEvent constructs an Event.
func NewEvent(eventType string, attributes ...Attribute) Event {
	return Event{Type: eventType, Attributes: attributes}
}

// ToSDKEvent converts e to a github.com/cosmos/cosmos-sdk/types.Event, for
// hosts that are themselves Cosmos SDK chains and want to feed the
// engine's events straight into their own EventManager.
func (e Event) ToSDKEvent() sdk.Event {
	attrs := make([]sdk.Attribute, len(e.Attributes))
	for i, a := range e.Attributes {
		attrs[i] = sdk.NewAttribute(a.Key, a.Value)
	}
	return sdk.NewEvent(e.Type, attrs...)
}

// MessageEventType is the core "Message" event classifying kind emitted
// before every protocol event.
const MessageEventType = "message"

// AttributeKeyMessageKind names the message kind attribute on the
// MessageEventType event: "client", "connection", "channel", or "packet".
const AttributeKeyMessageKind = "kind"
