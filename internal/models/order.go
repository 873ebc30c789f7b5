package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderPriced     OrderStatus = "priced"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPriced, OrderInProgress, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

// CanTransition reports whether the move from s to next is legal.
// Progression is strictly forward (pending -> priced -> in_progress ->
// completed); cancellation is allowed from any non-terminal state.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.Valid() || s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	switch s {
	case OrderPending:
		return next == OrderPriced
	case OrderPriced:
		return next == OrderInProgress
	case OrderInProgress:
		return next == OrderCompleted
	}
	return false
}

// Order is a commissioned-art order record. ArtistID, Price and Invoice
// stay unset until an artist prices the order.
type Order struct {
	ID          uuid.UUID
	Seq         int64
	ClientID    uuid.UUID
	ArtistID    uuid.NullUUID
	Status      OrderStatus
	Description string
	Size        sql.NullString
	Style       sql.NullString
	Tone        sql.NullString
	Material    sql.NullString
	FrameSize   sql.NullString
	Background  sql.NullString
	Price       sql.NullFloat64
	Invoice     json.RawMessage
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt sql.NullTime
}

// OrderDetails carries the client-authored attributes of a new order.
type OrderDetails struct {
	Description string
	Size        string
	Style       string
	Tone        string
	Material    string
	FrameSize   string
	Background  string
}

// InvoiceMaterial is one line item of an invoice.
type InvoiceMaterial struct {
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Invoice is produced when an artist prices an order. Stored as a JSON
// document on the order row.
type Invoice struct {
	Materials []InvoiceMaterial `json:"materials"`
	LaborCost float64           `json:"labor_cost"`
	Total     float64           `json:"total"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// ComputeTotal returns labor plus the sum of material line totals.
func (i Invoice) ComputeTotal() float64 {
	total := i.LaborCost
	for _, m := range i.Materials {
		total += m.Quantity * m.UnitPrice
	}
	return total
}

// Comment is an append-only order comment. Rows are only ever inserted,
// never updated, so concurrent writers cannot overwrite each other.
type Comment struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	AuthorID  uuid.UUID
	Body      string
	CreatedAt time.Time
}

// Attachment is an append-only order attachment reference.
type Attachment struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	AuthorID    uuid.UUID
	URL         string
	Filename    sql.NullString
	StoragePath sql.NullString
	CreatedAt   time.Time
}
