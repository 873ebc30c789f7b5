// Package realtime delivers document-change events to connected viewers.
// A Hub fans events out to websocket sessions and to in-process channel
// subscriptions; per-user delivery follows publish order.
package realtime

// Event is one realtime notification.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// Client -> server operations.
const (
	OpHeartbeat = "heartbeat"
)

// Server -> client event types.
const (
	EventHeartbeatAck    = "heartbeat_ack"
	EventPresenceUpdate  = "presence_update"
	EventOrderCreated    = "order_created"
	EventOrderStatus     = "order_status"
	EventOrderComment    = "order_comment"
	EventOrderAttachment = "order_attachment"
	EventChatMessage     = "chat_message"
)
