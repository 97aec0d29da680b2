package checkout

import (
	"context"
	"fmt"
	"sync"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// CartLineStore holds the authoritative cart line list for one user,
// together with the checkout selection over it. Every mutation follows the
// confirm-then-reflect discipline: the local list changes only after the
// cart service has acknowledged the mutation, so the displayed total never
// includes a line the server has already discarded, nor omits one that
// failed to delete. Selection reconciliation happens synchronously inside
// the same mutation, keeping the subset invariant airtight.
type CartLineStore struct {
	userID     string
	cart       checkout.CartService
	bus        shared.EventPublisher
	logger     *zap.Logger
	autoSelect bool

	mu        sync.Mutex
	lines     []checkout.CartLine
	selection checkout.SelectionSet
	knownIDs  []int64
	loaded    bool
	loadErr   error
}

// NewCartLineStore creates a cart line store for one user
func NewCartLineStore(userID string, cart checkout.CartService, bus shared.EventPublisher, logger *zap.Logger, autoSelect bool) *CartLineStore {
	return &CartLineStore{
		userID:     userID,
		cart:       cart,
		bus:        bus,
		logger:     logger,
		autoSelect: autoSelect,
		selection:  checkout.NewSelectionSet(),
	}
}

// Load refreshes the full line list from the cart service. A failed load
// is recorded as a surfaced error state; the previous list is kept so the
// user still sees something while retrying.
func (s *CartLineStore) Load(ctx context.Context) error {
	lines, err := s.cart.FetchLines(ctx, s.userID)
	if err != nil {
		s.mu.Lock()
		s.loadErr = err
		s.mu.Unlock()
		s.logger.Error("cart load failed", zap.String("user_id", s.userID), zap.Error(err))
		return fmt.Errorf("loading cart: %w", err)
	}

	s.mu.Lock()
	s.loadErr = nil
	s.loaded = true
	s.replaceLines(lines)
	ids := checkout.LineIDs(s.lines)
	s.mu.Unlock()

	_ = s.bus.Publish(ctx, checkout.NewCartLinesChangedEvent(s.userID, ids, "load"))
	return nil
}

// Add sends the spec to the cart service and reflects the acknowledged
// line. The server decides whether the line is appended or merged; its
// acknowledged result replaces any local line with the same line id.
func (s *CartLineStore) Add(ctx context.Context, spec checkout.AddLineSpec) (checkout.CartLine, error) {
	line, err := s.cart.AddLine(ctx, s.userID, spec)
	if err != nil {
		s.logger.Error("cart add failed",
			zap.String("user_id", s.userID),
			zap.Int64("item_id", spec.ItemID),
			zap.Error(err),
		)
		return checkout.CartLine{}, fmt.Errorf("adding cart line: %w", err)
	}

	s.mu.Lock()
	replaced := false
	next := make([]checkout.CartLine, len(s.lines))
	copy(next, s.lines)
	for i := range next {
		if next[i].LineID == line.LineID {
			next[i] = line
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, line)
	}
	s.replaceLines(next)
	ids := checkout.LineIDs(s.lines)
	s.mu.Unlock()

	_ = s.bus.Publish(ctx, checkout.NewCartLinesChangedEvent(s.userID, ids, "add"))
	return line, nil
}

// Remove deletes a line server-side first; the local list is untouched on
// failure, so a transient error never hides a line that still exists.
func (s *CartLineStore) Remove(ctx context.Context, lineID int64) error {
	if err := s.cart.RemoveLine(ctx, s.userID, lineID); err != nil {
		s.logger.Error("cart remove failed",
			zap.String("user_id", s.userID),
			zap.Int64("line_id", lineID),
			zap.Error(err),
		)
		return fmt.Errorf("removing cart line: %w", err)
	}

	s.mu.Lock()
	next := make([]checkout.CartLine, 0, len(s.lines))
	for _, line := range s.lines {
		if line.LineID != lineID {
			next = append(next, line)
		}
	}
	s.replaceLines(next)
	ids := checkout.LineIDs(s.lines)
	s.mu.Unlock()

	_ = s.bus.Publish(ctx, checkout.NewCartLinesChangedEvent(s.userID, ids, "remove"))
	return nil
}

// Toggle flips the selection of a line; purely local, no network I/O
func (s *CartLineStore) Toggle(ctx context.Context, lineID int64) (bool, error) {
	s.mu.Lock()
	if !s.hasLine(lineID) {
		s.mu.Unlock()
		return false, shared.ErrNotFound
	}
	selected := s.selection.Toggle(lineID)
	ids := s.selection.Current()
	s.mu.Unlock()

	_ = s.bus.Publish(ctx, checkout.NewSelectionChangedEvent(s.userID, ids))
	return selected, nil
}

// SelectAll selects every line in the cart
func (s *CartLineStore) SelectAll(ctx context.Context) {
	s.mu.Lock()
	s.selection.SelectAll(checkout.LineIDs(s.lines))
	ids := s.selection.Current()
	s.mu.Unlock()

	_ = s.bus.Publish(ctx, checkout.NewSelectionChangedEvent(s.userID, ids))
}

// Lines returns a copy of the current line list
func (s *CartLineStore) Lines() []checkout.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]checkout.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// Selection returns an independent copy of the current selection
func (s *CartLineStore) Selection() checkout.SelectionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Clone()
}

// Loaded reports whether an initial load has succeeded
func (s *CartLineStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LoadError returns the surfaced error of the last failed load, if any
func (s *CartLineStore) LoadError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadErr
}

// replaceLines swaps in the new line list and reconciles the selection
// against it. Callers must hold s.mu.
func (s *CartLineStore) replaceLines(lines []checkout.CartLine) {
	s.lines = lines
	s.selection.Reconcile(lines, s.knownIDs, s.autoSelect)
	s.knownIDs = checkout.LineIDs(lines)
}

func (s *CartLineStore) hasLine(lineID int64) bool {
	for _, line := range s.lines {
		if line.LineID == lineID {
			return true
		}
	}
	return false
}
