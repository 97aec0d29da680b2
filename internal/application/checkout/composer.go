package checkout

import (
	"context"
	"sync/atomic"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// CartComposer joins the cart line store, the product detail cache and the
// selection into the derived cart view. Composition is a pure function of
// the three snapshots, recomputed wholesale on every read rather than
// patched incrementally, so out-of-order fetch completions cannot leave a
// stale partial view behind. The composer subscribes to the engine's
// events to trigger product fetches for lines that lack a cache entry and
// to advance a revision counter that consumers can poll for changes.
type CartComposer struct {
	userID   string
	store    *CartLineStore
	cache    *ProductDetailCache
	logger   *zap.Logger
	revision atomic.Uint64
}

// NewCartComposer creates a composer over one user's stores
func NewCartComposer(userID string, store *CartLineStore, cache *ProductDetailCache, logger *zap.Logger) *CartComposer {
	return &CartComposer{
		userID: userID,
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// View composes the current derived cart view and fires fetches for any
// line whose product has no cache entry yet. The returned view is a
// detached snapshot; later store or cache changes do not alter it.
func (c *CartComposer) View(ctx context.Context) checkout.DerivedCartView {
	view := checkout.ComposeView(c.store.Lines(), c.cache, c.store.Selection())
	for _, itemID := range view.MissingItemIDs() {
		c.cache.Ensure(ctx, itemID)
	}
	return view
}

// Revision returns a counter that advances on every engine change; equal
// values mean the view has not changed since the last read
func (c *CartComposer) Revision() uint64 {
	return c.revision.Load()
}

// Handle reacts to engine events: cart changes trigger product fetches for
// newly missing entries, and every event advances the revision
func (c *CartComposer) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *checkout.CartLinesChangedEvent:
		if e.UserID != c.userID {
			return nil
		}
		view := checkout.ComposeView(c.store.Lines(), c.cache, c.store.Selection())
		for _, itemID := range view.MissingItemIDs() {
			c.cache.Ensure(ctx, itemID)
		}
	case *checkout.SelectionChangedEvent:
		if e.UserID != c.userID {
			return nil
		}
	}
	c.revision.Add(1)
	return nil
}

// EventTypes returns the event types the composer reacts to
func (c *CartComposer) EventTypes() []string {
	return []string{
		checkout.EventTypeCartLinesChanged,
		checkout.EventTypeSelectionChanged,
		checkout.EventTypeProductResolved,
		checkout.EventTypeProductFetchFailed,
	}
}

// Ensure CartComposer implements EventHandler
var _ shared.EventHandler = (*CartComposer)(nil)
