package models

import "time"

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type OrderResponse struct {
	ID          string     `json:"order_id"`
	ClientID    string     `json:"client_id"`
	ArtistID    string     `json:"artist_id,omitempty"`
	Status      string     `json:"status"`
	Description string     `json:"description"`
	Size        string     `json:"size,omitempty"`
	Style       string     `json:"style,omitempty"`
	Tone        string     `json:"tone,omitempty"`
	Material    string     `json:"material,omitempty"`
	FrameSize   string     `json:"frame_size,omitempty"`
	Background  string     `json:"background,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Invoice     *Invoice   `json:"invoice,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentListResponse struct {
	Comments []CommentResponse `json:"comments"`
}

type AttachmentResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"order_id"`
	AuthorID  string    `json:"author_id"`
	URL       string    `json:"url"`
	Filename  string    `json:"filename,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type AttachmentListResponse struct {
	Attachments []AttachmentResponse `json:"attachments"`
}

type ChatMessageResponse struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	SenderID       string    `json:"sender_id"`
	RecipientID    string    `json:"recipient_id"`
	Body           string    `json:"body"`
	CreatedAt      time.Time `json:"created_at"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

type PresenceResponse struct {
	UserID   string    `json:"user_id"`
	IsOnline bool      `json:"is_online"`
	LastSeen time.Time `json:"last_seen"`
	// LastSeenText is the human bucket ("a moment ago", "2 days ago", ...).
	// Empty for users never seen.
	LastSeenText string `json:"last_seen_text,omitempty"`
}

type OnlineUsersResponse struct {
	Users []string `json:"users"`
	Count int      `json:"count"`
}

type MenuResponse struct {
	Role  string     `json:"role"`
	Items []MenuItem `json:"items"`
}

type SessionResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	AccessToken string `json:"access_token,omitempty"`
}
