package checkout

import "context"

// CartService is the remote cart collaborator. It is the source of truth
// for cart contents: the store's local list is always replaced by the
// server's acknowledged result, never optimistically merged.
type CartService interface {
	// FetchLines returns the full current cart
	FetchLines(ctx context.Context, userID string) ([]CartLine, error)
	// AddLine appends or merges a line and returns the acknowledged line
	AddLine(ctx context.Context, userID string, spec AddLineSpec) (CartLine, error)
	// RemoveLine deletes a line; the caller reflects the removal only
	// after this returns without error
	RemoveLine(ctx context.Context, userID string, lineID int64) error
}

// ProductService is the remote product collaborator, keyed by item id
type ProductService interface {
	FetchProduct(ctx context.Context, itemID int64) (ProductRecord, error)
}

// OrderService receives assembled order payloads
type OrderService interface {
	SubmitOrder(ctx context.Context, userID string, payload OrderPayload) (orderID string, err error)
}
