package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/models"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/services"
	"github.com/JesusM04/ARTIST-WEBSHOP-sub001/internal/supabase"
)

const maxAttachmentSize = 20 << 20 // 20 MiB

type OrdersHandler struct {
	orders        *services.OrderService
	storageClient *supabase.StorageClient
}

func NewOrdersHandler(orders *services.OrderService, storageClient *supabase.StorageClient) *OrdersHandler {
	return &OrdersHandler{
		orders:        orders,
		storageClient: storageClient,
	}
}

// CreateOrder godoc
// @Summary     Create a new order request
// @Description Creates a commissioned-art order for the authenticated client. The order starts as pending with no artist, price or invoice.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CreateOrderRequest true "Order attributes (description is required)"
// @Success     201 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /orders [post]
func (h *OrdersHandler) CreateOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.orders.Create(userID, models.OrderDetails{
		Description: req.Description,
		Size:        req.Size,
		Style:       req.Style,
		Tone:        req.Tone,
		Material:    req.Material,
		FrameSize:   req.FrameSize,
		Background:  req.Background,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// ListOrders godoc
// @Summary     List orders for the caller
// @Description Clients get the orders they placed, artists the orders assigned to them, newest first.
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.OrderListResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /orders [get]
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}

	var (
		orders []models.Order
		err    error
	)
	if currentRole(c) == models.RoleArtist {
		orders, err = h.orders.ListForArtist(userID)
	} else {
		orders, err = h.orders.ListForClient(userID)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = toOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Orders: responses})
}

// GetOrder godoc
// @Summary     Get order details
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.OrderResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /orders/{order_id} [get]
func (h *OrdersHandler) GetOrder(c *gin.Context) {
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	order, err := h.orders.Get(orderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// UpdateStatus godoc
// @Summary     Update order status
// @Description Moves the order along pending -> priced -> in_progress -> completed; cancellation is allowed from any non-terminal state. Illegal moves return 409.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.UpdateStatusRequest true "Target status"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /orders/{order_id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	var req models.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.orders.UpdateStatus(orderID, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// PriceOrder godoc
// @Summary     Price an order
// @Description The authenticated artist takes a pending order: the invoice is attached, its total becomes the price, and the order moves to priced.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.PriceOrderRequest true "Invoice lines"
// @Success     200 {object} models.OrderResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /orders/{order_id}/price [post]
func (h *OrdersHandler) PriceOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	var req models.PriceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	order, err := h.orders.Price(orderID, userID, req.Materials, req.LaborCost, req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

// AppendComment godoc
// @Summary     Append a comment
// @Description Comments are append-only; concurrent appends from both parties are all retained.
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.AppendCommentRequest true "Comment body"
// @Success     201 {object} models.CommentResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /orders/{order_id}/comments [post]
func (h *OrdersHandler) AppendComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	var req models.AppendCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	comment, err := h.orders.AppendComment(orderID, userID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCommentResponse(comment))
}

// ListComments godoc
// @Summary     List order comments
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.CommentListResponse
// @Router      /orders/{order_id}/comments [get]
func (h *OrdersHandler) ListComments(c *gin.Context) {
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	comments, err := h.orders.Comments(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.CommentResponse, len(comments))
	for i := range comments {
		responses[i] = toCommentResponse(&comments[i])
	}
	c.JSON(http.StatusOK, models.CommentListResponse{Comments: responses})
}

// AppendAttachment godoc
// @Summary     Append an attachment by URL
// @Tags        orders
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       request body models.AppendAttachmentRequest true "Attachment reference"
// @Success     201 {object} models.AttachmentResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /orders/{order_id}/attachments [post]
func (h *OrdersHandler) AppendAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	var req models.AppendAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	attachment, err := h.orders.AppendAttachment(orderID, userID, req.URL, req.Filename, "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAttachmentResponse(attachment))
}

// UploadAttachment godoc
// @Summary     Upload an attachment file
// @Description Stores the file in the hosted bucket and appends its public URL to the order.
// @Tags        orders
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Param       file formData file true "Attachment file"
// @Success     201 {object} models.AttachmentResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /orders/{order_id}/attachments/upload [post]
func (h *OrdersHandler) UploadAttachment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return
	}
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing file", Message: err.Error()})
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open file", Message: err.Error()})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	storagePath, publicURL, err := h.storageClient.UploadAttachment(userID, orderID, fileHeader.Filename, contentType, data)
	if err != nil {
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to upload file", Message: err.Error()})
		return
	}

	attachment, err := h.orders.AppendAttachment(orderID, userID, publicURL, fileHeader.Filename, storagePath)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAttachmentResponse(attachment))
}

// ListAttachments godoc
// @Summary     List order attachments
// @Tags        orders
// @Produce     json
// @Security    Bearer
// @Param       order_id path string true "Order ID (UUID)"
// @Success     200 {object} models.AttachmentListResponse
// @Router      /orders/{order_id}/attachments [get]
func (h *OrdersHandler) ListAttachments(c *gin.Context) {
	orderID, ok := pathUUID(c, "order_id")
	if !ok {
		return
	}

	attachments, err := h.orders.Attachments(orderID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = toAttachmentResponse(&attachments[i])
	}
	c.JSON(http.StatusOK, models.AttachmentListResponse{Attachments: responses})
}
