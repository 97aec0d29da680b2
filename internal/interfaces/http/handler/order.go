package handler

import (
	checkoutapp "github.com/aswinkumar1126/JaiGuru-sub001/internal/application/checkout"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader carries the client-chosen duplicate-submission guard
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderHandler handles order assembly and submission endpoints
type OrderHandler struct {
	BaseHandler
	sessions *checkoutapp.SessionManager
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(sessions *checkoutapp.SessionManager) *OrderHandler {
	return &OrderHandler{sessions: sessions}
}

// Preview assembles an order payload from the current selection without
// submitting it, so the client can show a final confirmation
func (h *OrderHandler) Preview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	payload, err := session.Assembler.Assemble(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"itemCount":   len(payload.Items),
		"totalAmount": payload.TotalAmount.StringFixed(2),
	})
}

// Place assembles the selected lines into an order payload and submits it.
// Clients pass an Idempotency-Key header to guard against double submission;
// a reused key within the TTL is rejected with DUPLICATE_SUBMISSION.
func (h *OrderHandler) Place(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	idempotencyKey := c.GetHeader(IdempotencyKeyHeader)

	orderID, payload, err := session.Assembler.PlaceOrder(c.Request.Context(), idempotencyKey)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, checkoutapp.OrderResponse{
		OrderID:     orderID,
		ItemCount:   len(payload.Items),
		TotalAmount: payload.TotalAmount.StringFixed(2),
	})
}
