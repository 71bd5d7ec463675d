package service

// Broadcaster fans events out to live form viewers over WebSocket. Declared
// here so services depend on the interface, not the transport package.
type Broadcaster interface {
	BroadcastToViewers(formID string, msgType string, payload interface{})
	DisconnectForm(formID string)
}
