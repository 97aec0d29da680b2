package handler

import (
	"strconv"

	checkoutapp "github.com/aswinkumar1126/JaiGuru-sub001/internal/application/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart and selection API endpoints
type CartHandler struct {
	BaseHandler
	sessions *checkoutapp.SessionManager
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(sessions *checkoutapp.SessionManager) *CartHandler {
	return &CartHandler{sessions: sessions}
}

// AddItemRequest represents a request to add an item to the cart
type AddItemRequest struct {
	ItemID   int64   `json:"itemId" binding:"required,gt=0"`
	Quantity int64   `json:"quantity" binding:"required,gt=0"`
	TagNo    string  `json:"tagNo" binding:"omitempty,tagno"`
	Weight   float64 `json:"weight" binding:"gte=0"`
	Amount   float64 `json:"amount" binding:"gte=0"`
}

// ToggleSelectionRequest represents a request to toggle a line's selection
type ToggleSelectionRequest struct {
	LineID int64 `json:"lineId" binding:"required,gt=0"`
}

// GetView returns the composed cart view. The cart is loaded from the cart
// service on first access; a load failure surfaces as an error while the
// previously loaded lines, if any, stay served.
func (h *CartHandler) GetView(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	if !session.Store.Loaded() {
		if err := session.Store.Load(c.Request.Context()); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	view := session.Composer.View(c.Request.Context())
	h.Success(c, checkoutapp.ToCartViewResponse(view))
}

// Reload refreshes the cart from the cart service on demand
func (h *CartHandler) Reload(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	if err := session.Store.Load(c.Request.Context()); err != nil {
		h.HandleError(c, err)
		return
	}

	view := session.Composer.View(c.Request.Context())
	h.Success(c, checkoutapp.ToCartViewResponse(view))
}

// AddItem adds an item to the cart
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	spec := checkout.AddLineSpec{
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
		TagNo:    req.TagNo,
		Weight:   toDecimal(req.Weight),
		Amount:   toDecimal(req.Amount),
	}
	if err := spec.Validate(); err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	line, err := session.Store.Add(c.Request.Context(), spec)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"lineId": line.LineID})
}

// RemoveItem removes a cart line
func (h *CartHandler) RemoveItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	lineID, err := strconv.ParseInt(c.Param("lineId"), 10, 64)
	if err != nil || lineID <= 0 {
		h.BadRequest(c, "Invalid line id")
		return
	}

	session := h.sessions.Session(userID)
	if err := session.Store.Remove(c.Request.Context(), lineID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ToggleSelection flips a line's checkout selection
func (h *CartHandler) ToggleSelection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	var req ToggleSelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	session := h.sessions.Session(userID)
	selected, err := session.Store.Toggle(c.Request.Context(), req.LineID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"lineId": req.LineID, "isSelected": selected})
}

// SelectAll selects every line in the cart
func (h *CartHandler) SelectAll(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	session := h.sessions.Session(userID)
	session.Store.SelectAll(c.Request.Context())

	view := session.Composer.View(c.Request.Context())
	h.Success(c, checkoutapp.ToCartViewResponse(view))
}

// RetryProduct re-fetches a product whose earlier fetch failed
func (h *CartHandler) RetryProduct(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		h.HandleError(c, err)
		return
	}

	itemID, err := strconv.ParseInt(c.Param("itemId"), 10, 64)
	if err != nil || itemID <= 0 {
		h.BadRequest(c, "Invalid item id")
		return
	}

	h.sessions.ProductCache().Retry(c.Request.Context(), itemID)
	h.Success(c, gin.H{"itemId": itemID})
}
