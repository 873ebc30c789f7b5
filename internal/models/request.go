package models

type CreateOrderRequest struct {
	Description string `json:"description" example:"Oil portrait of two dogs"`
	Size        string `json:"size,omitempty" example:"40x60cm"`
	Style       string `json:"style,omitempty" example:"realism"`
	Tone        string `json:"tone,omitempty" example:"warm"`
	Material    string `json:"material,omitempty" example:"canvas"`
	FrameSize   string `json:"frame_size,omitempty"`
	Background  string `json:"background,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" example:"in_progress"`
}

type PriceOrderRequest struct {
	Materials []InvoiceMaterial `json:"materials"`
	LaborCost float64           `json:"labor_cost" example:"120"`
	Notes     string            `json:"notes,omitempty"`
}

type AppendCommentRequest struct {
	Body string `json:"body" example:"Could the background be darker?"`
}

type AppendAttachmentRequest struct {
	URL      string `json:"url" example:"https://example.com/reference.jpg"`
	Filename string `json:"filename,omitempty"`
}

type SendMessageRequest struct {
	RecipientID string `json:"recipient_id"`
	Body        string `json:"body" example:"The sketch is ready for review"`
}

type LoginRequest struct {
	Email    string `json:"email" example:"client@example.com"`
	Password string `json:"password"`
}
