package services

import (
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/apperrors"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/realtime"
)

// OrderStore is the persistence surface the order service needs. Implemented
// by supabase.DatabaseClient; tests use an in-memory fake.
type OrderStore interface {
	CreateOrder(orderID, clientID uuid.UUID, details models.OrderDetails) (*models.Order, error)
	GetOrder(orderID uuid.UUID) (*models.Order, error)
	ListOrdersForClient(clientID uuid.UUID) ([]models.Order, error)
	ListOrdersForArtist(artistID uuid.UUID) ([]models.Order, error)
	UpdateOrderStatus(orderID uuid.UUID, expected, next models.OrderStatus) (*models.Order, error)
	PriceOrder(orderID, artistID uuid.UUID, price float64, invoice json.RawMessage) (*models.Order, error)
	InsertComment(commentID, orderID, authorID uuid.UUID, body string) (*models.Comment, error)
	ListComments(orderID uuid.UUID) ([]models.Comment, error)
	InsertAttachment(attachmentID, orderID, authorID uuid.UUID, url, filename, storagePath string) (*models.Attachment, error)
	ListAttachments(orderID uuid.UUID) ([]models.Attachment, error)
}

// FileStore removes stored attachment files. Implemented by
// supabase.StorageClient.
type FileStore interface {
	DeleteOrderFiles(userID, orderID uuid.UUID) error
}

type OrderService struct {
	store OrderStore
	files FileStore
	bus   realtime.Publisher
	log   *zap.SugaredLogger
}

func NewOrderService(store OrderStore, files FileStore, bus realtime.Publisher, log *zap.SugaredLogger) *OrderService {
	return &OrderService{store: store, files: files, bus: bus, log: log}
}

// Create persists a new pending order for the client. Validation and auth
// failures are rejected before any write.
func (s *OrderService) Create(clientID uuid.UUID, details models.OrderDetails) (*models.Order, error) {
	if clientID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	details.Description = strings.TrimSpace(details.Description)
	if details.Description == "" {
		return nil, apperrors.Validation("description is required")
	}

	order, err := s.store.CreateOrder(uuid.New(), clientID, details)
	if err != nil {
		return nil, apperrors.Store("create order", err)
	}

	s.bus.PublishToUser(clientID, realtime.Event{
		Type: realtime.EventOrderCreated,
		Data: realtime.OrderPayload(order),
	})
	return order, nil
}

func (s *OrderService) Get(orderID uuid.UUID) (*models.Order, error) {
	order, err := s.store.GetOrder(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Store("get order", err)
	}
	return order, nil
}

func (s *OrderService) ListForClient(clientID uuid.UUID) ([]models.Order, error) {
	if clientID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	orders, err := s.store.ListOrdersForClient(clientID)
	if err != nil {
		return nil, apperrors.Store("list client orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListForArtist(artistID uuid.UUID) ([]models.Order, error) {
	if artistID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	orders, err := s.store.ListOrdersForArtist(artistID)
	if err != nil {
		return nil, apperrors.Store("list artist orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order along the lifecycle. Illegal moves fail with
// ErrInvalidTransition; the store-level guard keeps a concurrent transition
// from being overwritten.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, apperrors.Validation("unknown status " + string(next))
	}

	current, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransition(next) {
		return nil, apperrors.InvalidTransition(string(current.Status), string(next))
	}

	order, err := s.store.UpdateOrderStatus(orderID, current.Status, next)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Lost the race against another transition.
			return nil, apperrors.InvalidTransition(string(current.Status), string(next))
		}
		return nil, apperrors.Store("update order status", err)
	}

	if next == models.OrderCancelled {
		s.removeStoredFiles(order)
	}

	s.publishOrderEvent(order, realtime.Event{
		Type: realtime.EventOrderStatus,
		Data: realtime.OrderPayload(order),
	})
	return order, nil
}

// removeStoredFiles clears both parties' uploads for a cancelled order.
// Best effort: the transition already happened, a storage failure only logs.
func (s *OrderService) removeStoredFiles(order *models.Order) {
	if err := s.files.DeleteOrderFiles(order.ClientID, order.ID); err != nil {
		s.log.Errorw("failed to remove cancelled order files", "order_id", order.ID, "user_id", order.ClientID, "error", err)
	}
	if order.ArtistID.Valid {
		if err := s.files.DeleteOrderFiles(order.ArtistID.UUID, order.ID); err != nil {
			s.log.Errorw("failed to remove cancelled order files", "order_id", order.ID, "user_id", order.ArtistID.UUID, "error", err)
		}
	}
}

// Price assigns the artist and attaches the invoice, moving the order from
// pending to priced. The invoice total is computed here, never trusted from
// the caller.
func (s *OrderService) Price(orderID, artistID uuid.UUID, materials []models.InvoiceMaterial, laborCost float64, notes string) (*models.Order, error) {
	if artistID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	if laborCost < 0 {
		return nil, apperrors.Validation("labor cost must not be negative")
	}
	for _, m := range materials {
		if m.Quantity < 0 || m.UnitPrice < 0 {
			return nil, apperrors.Validation("material quantities and prices must not be negative")
		}
	}

	current, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.OrderPending {
		return nil, apperrors.InvalidTransition(string(current.Status), string(models.OrderPriced))
	}

	invoice := models.Invoice{
		Materials: materials,
		LaborCost: laborCost,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}
	invoice.Total = invoice.ComputeTotal()

	raw, err := json.Marshal(invoice)
	if err != nil {
		return nil, apperrors.Store("encode invoice", err)
	}

	order, err := s.store.PriceOrder(orderID, artistID, invoice.Total, raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.InvalidTransition(string(current.Status), string(models.OrderPriced))
		}
		return nil, apperrors.Store("price order", err)
	}

	s.publishOrderEvent(order, realtime.Event{
		Type: realtime.EventOrderStatus,
		Data: realtime.OrderPayload(order),
	})
	return order, nil
}

// AppendComment adds a comment. Comments are append-only: concurrent
// appends all survive, there is no read-modify-write anywhere on this path.
func (s *OrderService) AppendComment(orderID, authorID uuid.UUID, body string) (*models.Comment, error) {
	if authorID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.Validation("comment body is required")
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	comment, err := s.store.InsertComment(uuid.New(), orderID, authorID, body)
	if err != nil {
		return nil, apperrors.Store("append comment", err)
	}

	s.publishOrderEvent(order, realtime.Event{
		Type: realtime.EventOrderComment,
		Data: realtime.CommentPayload(comment),
	})
	return comment, nil
}

// AppendAttachment records an attachment URL. Same append-only contract as
// comments.
func (s *OrderService) AppendAttachment(orderID, authorID uuid.UUID, url, filename, storagePath string) (*models.Attachment, error) {
	if authorID == uuid.Nil {
		return nil, apperrors.ErrAuthRequired
	}
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, apperrors.Validation("attachment url is required")
	}

	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}

	attachment, err := s.store.InsertAttachment(uuid.New(), orderID, authorID, url, filename, storagePath)
	if err != nil {
		return nil, apperrors.Store("append attachment", err)
	}

	s.publishOrderEvent(order, realtime.Event{
		Type: realtime.EventOrderAttachment,
		Data: realtime.AttachmentPayload(attachment),
	})
	return attachment, nil
}

func (s *OrderService) Comments(orderID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.store.ListComments(orderID)
	if err != nil {
		return nil, apperrors.Store("list comments", err)
	}
	return comments, nil
}

func (s *OrderService) Attachments(orderID uuid.UUID) ([]models.Attachment, error) {
	attachments, err := s.store.ListAttachments(orderID)
	if err != nil {
		return nil, apperrors.Store("list attachments", err)
	}
	return attachments, nil
}

// publishOrderEvent notifies the order topic and both parties.
func (s *OrderService) publishOrderEvent(order *models.Order, event realtime.Event) {
	s.bus.PublishTopic(realtime.OrderTopic(order.ID), event)
	s.bus.PublishToUser(order.ClientID, event)
	if order.ArtistID.Valid {
		s.bus.PublishToUser(order.ArtistID.UUID, event)
	}
}
