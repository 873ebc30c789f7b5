package services_test

import (
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
)

// recordedEvent is one publish captured by the fake bus.
type recordedEvent struct {
	Topic string
	Event realtime.Event
}

// fakeBus records publishes and feeds real channels to subscribers.
type fakeBus struct {
	mu     sync.Mutex
	events []recordedEvent
	subs   map[string][]chan realtime.Event
}

func newFakeBus() *fakeBus {
	return &fakeBus{subs: make(map[string][]chan realtime.Event)}
}

func (b *fakeBus) PublishToUser(userID uuid.UUID, event realtime.Event) {
	b.PublishTopic(realtime.UserTopic(userID), event)
}

func (b *fakeBus) PublishTopic(topic string, event realtime.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, recordedEvent{Topic: topic, Event: event})
	for _, ch := range b.subs[topic] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (b *fakeBus) Subscribe(topic string) (<-chan realtime.Event, func()) {
	ch := make(chan realtime.Event, 16)
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], ch)
	b.mu.Unlock()
	return ch, func() {}
}

func (b *fakeBus) published(topic string) []realtime.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []realtime.Event
	for _, e := range b.events {
		if e.Topic == topic {
			out = append(out, e.Event)
		}
	}
	return out
}

// fakeOrderStore is an in-memory OrderStore with the same guard semantics
// as the SQL implementation: conditional updates fail with sql.ErrNoRows
// when the status predicate does not hold.
type fakeOrderStore struct {
	mu          sync.Mutex
	seq         int64
	orders      map[uuid.UUID]*models.Order
	comments    map[uuid.UUID][]models.Comment
	attachments map[uuid.UUID][]models.Attachment
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:      make(map[uuid.UUID]*models.Order),
		comments:    make(map[uuid.UUID][]models.Comment),
		attachments: make(map[uuid.UUID][]models.Attachment),
	}
}

func (s *fakeOrderStore) CreateOrder(orderID, clientID uuid.UUID, details models.OrderDetails) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	now := time.Now().UTC()
	order := &models.Order{
		ID:          orderID,
		Seq:         s.seq,
		ClientID:    clientID,
		Status:      models.OrderPending,
		Description: details.Description,
		Size:        sql.NullString{String: details.Size, Valid: details.Size != ""},
		Style:       sql.NullString{String: details.Style, Valid: details.Style != ""},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.orders[orderID] = order
	clone := *order
	return &clone, nil
}

func (s *fakeOrderStore) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *order
	return &clone, nil
}

// sortNewestFirst mirrors the list ordering of the SQL store: created_at
// descending, ties broken by the insertion sequence.
func sortNewestFirst(orders []models.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if !orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].CreatedAt.After(orders[j].CreatedAt)
		}
		return orders[i].Seq < orders[j].Seq
	})
}

func (s *fakeOrderStore) ListOrdersForClient(clientID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.ClientID == clientID {
			out = append(out, *order)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *fakeOrderStore) ListOrdersForArtist(artistID uuid.UUID) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, order := range s.orders {
		if order.ArtistID.Valid && order.ArtistID.UUID == artistID {
			out = append(out, *order)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *fakeOrderStore) UpdateOrderStatus(orderID uuid.UUID, expected, next models.OrderStatus) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.Status != expected {
		return nil, sql.ErrNoRows
	}
	order.Status = next
	order.UpdatedAt = time.Now().UTC()
	if next == models.OrderCompleted {
		order.CompletedAt = sql.NullTime{Time: order.UpdatedAt, Valid: true}
	}
	clone := *order
	return &clone, nil
}

func (s *fakeOrderStore) PriceOrder(orderID, artistID uuid.UUID, price float64, invoice json.RawMessage) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.orders[orderID]
	if !ok || order.Status != models.OrderPending {
		return nil, sql.ErrNoRows
	}
	order.Status = models.OrderPriced
	order.ArtistID = uuid.NullUUID{UUID: artistID, Valid: true}
	order.Price = sql.NullFloat64{Float64: price, Valid: true}
	order.Invoice = invoice
	order.UpdatedAt = time.Now().UTC()
	clone := *order
	return &clone, nil
}

func (s *fakeOrderStore) InsertComment(commentID, orderID, authorID uuid.UUID, body string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[orderID]; !ok {
		return nil, sql.ErrNoRows
	}
	comment := models.Comment{
		ID:        commentID,
		OrderID:   orderID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	s.comments[orderID] = append(s.comments[orderID], comment)
	return &comment, nil
}

func (s *fakeOrderStore) ListComments(orderID uuid.UUID) ([]models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Comment(nil), s.comments[orderID]...), nil
}

func (s *fakeOrderStore) InsertAttachment(attachmentID, orderID, authorID uuid.UUID, url, filename, storagePath string) (*models.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[orderID]; !ok {
		return nil, sql.ErrNoRows
	}
	attachment := models.Attachment{
		ID:          attachmentID,
		OrderID:     orderID,
		AuthorID:    authorID,
		URL:         url,
		Filename:    sql.NullString{String: filename, Valid: filename != ""},
		StoragePath: sql.NullString{String: storagePath, Valid: storagePath != ""},
		CreatedAt:   time.Now().UTC(),
	}
	s.attachments[orderID] = append(s.attachments[orderID], attachment)
	return &attachment, nil
}

func (s *fakeOrderStore) ListAttachments(orderID uuid.UUID) ([]models.Attachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Attachment(nil), s.attachments[orderID]...), nil
}

// fakeFileStore records attachment-file deletions.
type fakeFileStore struct {
	mu      sync.Mutex
	deleted []fileDeletion
}

type fileDeletion struct {
	UserID  uuid.UUID
	OrderID uuid.UUID
}

func (s *fakeFileStore) DeleteOrderFiles(userID, orderID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, fileDeletion{UserID: userID, OrderID: orderID})
	return nil
}

func (s *fakeFileStore) deletions() []fileDeletion {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]fileDeletion(nil), s.deleted...)
}

// fakePresenceStore mirrors the upsert semantics of the user_status table.
type fakePresenceStore struct {
	mu       sync.Mutex
	statuses map[uuid.UUID]*models.UserStatus
}

func newFakePresenceStore() *fakePresenceStore {
	return &fakePresenceStore{statuses: make(map[uuid.UUID]*models.UserStatus)}
}

func (s *fakePresenceStore) get(userID uuid.UUID) *models.UserStatus {
	status, ok := s.statuses[userID]
	if !ok {
		status = &models.UserStatus{UserID: userID}
		s.statuses[userID] = status
	}
	return status
}

func (s *fakePresenceStore) MarkOnline(userID uuid.UUID) (*models.UserStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.get(userID)
	status.IsOnline = true
	status.LastHeartbeat = time.Now().UTC()
	clone := *status
	return &clone, nil
}

func (s *fakePresenceStore) MarkOffline(userID uuid.UUID) (*models.UserStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := s.get(userID)
	status.IsOnline = false
	status.LastSeen = time.Now().UTC()
	clone := *status
	return &clone, nil
}

func (s *fakePresenceStore) Heartbeat(userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.get(userID).LastHeartbeat = time.Now().UTC()
	return nil
}

func (s *fakePresenceStore) GetUserStatus(userID uuid.UUID) (*models.UserStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status, ok := s.statuses[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *status
	return &clone, nil
}

func (s *fakePresenceStore) SweepStaleSessions(cutoff time.Time) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var swept []uuid.UUID
	for id, status := range s.statuses {
		if status.IsOnline && status.LastHeartbeat.Before(cutoff) {
			status.IsOnline = false
			status.LastSeen = status.LastHeartbeat
			swept = append(swept, id)
		}
	}
	return swept, nil
}

// fakeChatStore keeps conversations in insertion order.
type fakeChatStore struct {
	mu       sync.Mutex
	messages map[uuid.UUID][]models.ChatMessage
}

func newFakeChatStore() *fakeChatStore {
	return &fakeChatStore{messages: make(map[uuid.UUID][]models.ChatMessage)}
}

func (s *fakeChatStore) InsertChatMessage(messageID, conversationID, senderID, recipientID uuid.UUID, body string) (*models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	message := models.ChatMessage{
		ID:             messageID,
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	s.messages[conversationID] = append(s.messages[conversationID], message)
	return &message, nil
}

func (s *fakeChatStore) ListChatMessages(conversationID uuid.UUID) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ChatMessage(nil), s.messages[conversationID]...), nil
}
