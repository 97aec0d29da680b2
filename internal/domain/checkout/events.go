package checkout

import (
	"strconv"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
)

// Event types published by the checkout engine
const (
	EventTypeCartLinesChanged   = "checkout.cart_lines.changed"
	EventTypeSelectionChanged   = "checkout.selection.changed"
	EventTypeProductResolved    = "checkout.product.resolved"
	EventTypeProductFetchFailed = "checkout.product.fetch_failed"
	EventTypeOrderAssembled     = "checkout.order.assembled"
)

// CartLinesChangedEvent is published after every server-acknowledged cart
// mutation (load, add, remove)
type CartLinesChangedEvent struct {
	shared.BaseDomainEvent
	UserID    string  `json:"user_id"`
	LineIDs   []int64 `json:"line_ids"`
	ChangedBy string  `json:"changed_by"` // load, add, remove
}

// NewCartLinesChangedEvent creates a cart lines changed event
func NewCartLinesChangedEvent(userID string, lineIDs []int64, changedBy string) *CartLinesChangedEvent {
	return &CartLinesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartLinesChanged, "Cart", userID),
		UserID:          userID,
		LineIDs:         lineIDs,
		ChangedBy:       changedBy,
	}
}

// SelectionChangedEvent is published when the user toggles or bulk-selects
// cart lines
type SelectionChangedEvent struct {
	shared.BaseDomainEvent
	UserID        string  `json:"user_id"`
	SelectedLines []int64 `json:"selected_lines"`
}

// NewSelectionChangedEvent creates a selection changed event
func NewSelectionChangedEvent(userID string, selectedLines []int64) *SelectionChangedEvent {
	return &SelectionChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSelectionChanged, "Cart", userID),
		UserID:          userID,
		SelectedLines:   selectedLines,
	}
}

// ProductResolvedEvent is published when a product fetch completes
type ProductResolvedEvent struct {
	shared.BaseDomainEvent
	ItemID int64 `json:"item_id"`
}

// NewProductResolvedEvent creates a product resolved event
func NewProductResolvedEvent(itemID int64) *ProductResolvedEvent {
	return &ProductResolvedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductResolved, "Product", strconv.FormatInt(itemID, 10)),
		ItemID:          itemID,
	}
}

// ProductFetchFailedEvent is published when a product fetch fails; the
// item stays priced from its fallback until a retry is requested
type ProductFetchFailedEvent struct {
	shared.BaseDomainEvent
	ItemID int64  `json:"item_id"`
	Reason string `json:"reason"`
}

// NewProductFetchFailedEvent creates a product fetch failed event
func NewProductFetchFailedEvent(itemID int64, reason string) *ProductFetchFailedEvent {
	return &ProductFetchFailedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductFetchFailed, "Product", strconv.FormatInt(itemID, 10)),
		ItemID:          itemID,
		Reason:          reason,
	}
}

// OrderAssembledEvent is published after a payload has been assembled and
// accepted by the order service
type OrderAssembledEvent struct {
	shared.BaseDomainEvent
	UserID      string `json:"user_id"`
	OrderID     string `json:"order_id"`
	ItemCount   int    `json:"item_count"`
	TotalAmount string `json:"total_amount"`
}

// NewOrderAssembledEvent creates an order assembled event
func NewOrderAssembledEvent(userID, orderID string, itemCount int, totalAmount string) *OrderAssembledEvent {
	return &OrderAssembledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderAssembled, "Order", orderID),
		UserID:          userID,
		OrderID:         orderID,
		ItemCount:       itemCount,
		TotalAmount:     totalAmount,
	}
}
