package realtime

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher is the broadcast surface services depend on, so tests can swap
// in a recording fake.
type Publisher interface {
	PublishToUser(userID uuid.UUID, event Event)
	PublishTopic(topic string, event Event)
}

// SessionHooks receives websocket lifecycle signals. Connected fires on the
// first open session of a user, Disconnected when the last one closes,
// Heartbeat on every inbound heartbeat op.
type SessionHooks struct {
	Connected    func(userID uuid.UUID)
	Disconnected func(userID uuid.UUID)
	Heartbeat    func(userID uuid.UUID)
}

// Hub tracks websocket sessions and channel subscriptions. A user may hold
// several sessions at once (multiple tabs); lifecycle hooks fire only on the
// first and last of them.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*Client]bool
	subs    map[string]map[chan Event]struct{}

	register   chan *Client
	unregister chan *Client

	hooks SessionHooks
	log   *zap.SugaredLogger
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		clients:    make(map[uuid.UUID]map[*Client]bool),
		subs:       make(map[string]map[chan Event]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		log:        log,
	}
}

// SetSessionHooks wires lifecycle callbacks. Must be called before Run.
func (h *Hub) SetSessionHooks(hooks SessionHooks) {
	h.hooks = hooks
}

// Run is the hub event loop; start it with `go hub.Run()`.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		}
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	first := len(h.clients[client.userID]) == 0
	if h.clients[client.userID] == nil {
		h.clients[client.userID] = make(map[*Client]bool)
	}
	h.clients[client.userID][client] = true
	h.mu.Unlock()

	h.log.Infow("realtime client connected", "user_id", client.userID)
	if first && h.hooks.Connected != nil {
		h.hooks.Connected(client.userID)
	}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	last := false
	if sessions, ok := h.clients[client.userID]; ok {
		if _, exists := sessions[client]; exists {
			delete(sessions, client)
			close(client.send)
		}
		if len(sessions) == 0 {
			delete(h.clients, client.userID)
			last = true
		}
	}
	h.mu.Unlock()

	h.log.Infow("realtime client disconnected", "user_id", client.userID)
	if last && h.hooks.Disconnected != nil {
		h.hooks.Disconnected(client.userID)
	}
}

func (h *Hub) heartbeat(client *Client) {
	if h.hooks.Heartbeat != nil {
		h.hooks.Heartbeat(client.userID)
	}
	client.enqueue(Event{Type: EventHeartbeatAck})
}

// PublishToUser delivers an event to every open session of a user and to
// the user's topic subscribers.
func (h *Hub) PublishToUser(userID uuid.UUID, event Event) {
	h.mu.RLock()
	for client := range h.clients[userID] {
		client.enqueue(event)
	}
	h.mu.RUnlock()

	h.PublishTopic(UserTopic(userID), event)
}

// PublishTopic delivers an event to all channel subscribers of a topic.
// Delivery is non-blocking: a subscriber that stopped draining its channel
// misses events instead of stalling the publisher.
func (h *Hub) PublishTopic(topic string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribe registers an in-process listener for a topic. The returned
// cancel func releases the subscription and closes the channel; it is safe
// to call more than once.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan Event]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[topic], ch)
			if len(h.subs[topic]) == 0 {
				delete(h.subs, topic)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// OnlineUserIDs lists users with at least one open session.
func (h *Hub) OnlineUserIDs() []uuid.UUID {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]uuid.UUID, 0, len(h.clients))
	for id := range h.clients {
		ids = append(ids, id)
	}
	return ids
}

// PresenceTopic is the subscription topic for a user's presence changes.
func PresenceTopic(userID uuid.UUID) string { return "presence:" + userID.String() }

// UserTopic is the subscription topic mirroring a user's session feed.
func UserTopic(userID uuid.UUID) string { return "user:" + userID.String() }

// OrderTopic is the subscription topic for one order's events.
func OrderTopic(orderID uuid.UUID) string { return "order:" + orderID.String() }
