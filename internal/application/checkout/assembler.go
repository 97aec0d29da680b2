package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// OrderAssembler snapshots the composed view into immutable order payloads
// and submits them to the order service. The payload total is recomputed
// independently at assembly time; a mismatch with the view's selected
// subtotal indicates a reconciliation bug and is logged, with the freshly
// recomputed value winning.
type OrderAssembler struct {
	userID      string
	composer    *CartComposer
	orders      checkout.OrderService
	idempotency shared.IdempotencyStore
	ttl         time.Duration
	bus         shared.EventPublisher
	logger      *zap.Logger
}

// NewOrderAssembler creates an order assembler for one user
func NewOrderAssembler(userID string, composer *CartComposer, orders checkout.OrderService, idempotency shared.IdempotencyStore, ttl time.Duration, bus shared.EventPublisher, logger *zap.Logger) *OrderAssembler {
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyConfig().TTL
	}
	return &OrderAssembler{
		userID:      userID,
		composer:    composer,
		orders:      orders,
		idempotency: idempotency,
		ttl:         ttl,
		bus:         bus,
		logger:      logger,
	}
}

// Assemble snapshots the current view into an order payload. Fails with
// EMPTY_SELECTION when no lines are selected.
func (a *OrderAssembler) Assemble(ctx context.Context) (checkout.OrderPayload, error) {
	view := a.composer.View(ctx)

	payload, err := checkout.AssembleOrder(view)
	if err != nil {
		return checkout.OrderPayload{}, err
	}

	if !payload.TotalMatches(view.SelectedSubtotal) {
		a.logger.Error("selected subtotal does not match recomputed payload total",
			zap.String("user_id", a.userID),
			zap.String("view_subtotal", view.SelectedSubtotal.StringFixed(2)),
			zap.String("payload_total", payload.TotalAmount.StringFixed(2)),
		)
		// Assembly proceeds with the payload total: it was recomputed from
		// the emitted items and is the value to trust.
	}
	return payload, nil
}

// PlaceOrder assembles and submits an order. A non-empty idempotency key
// rejects duplicate submissions within the configured TTL. The key is
// recorded only after the order service accepted the payload, so a failed
// submission stays retryable with the same key.
func (a *OrderAssembler) PlaceOrder(ctx context.Context, idempotencyKey string) (string, checkout.OrderPayload, error) {
	if idempotencyKey != "" {
		processed, err := a.idempotency.IsProcessed(ctx, a.userID+":"+idempotencyKey)
		if err != nil {
			return "", checkout.OrderPayload{}, fmt.Errorf("checking idempotency key: %w", err)
		}
		if processed {
			return "", checkout.OrderPayload{}, shared.ErrDuplicateSubmission
		}
	}

	payload, err := a.Assemble(ctx)
	if err != nil {
		return "", checkout.OrderPayload{}, err
	}

	orderID, err := a.orders.SubmitOrder(ctx, a.userID, payload)
	if err != nil {
		return "", checkout.OrderPayload{}, fmt.Errorf("submitting order: %w", err)
	}

	if idempotencyKey != "" {
		if _, err := a.idempotency.MarkProcessed(ctx, a.userID+":"+idempotencyKey, a.ttl); err != nil {
			a.logger.Warn("failed to record idempotency key",
				zap.String("user_id", a.userID),
				zap.Error(err),
			)
		}
	}

	a.logger.Info("order placed",
		zap.String("user_id", a.userID),
		zap.String("order_id", orderID),
		zap.Int("item_count", len(payload.Items)),
		zap.String("total_amount", payload.TotalAmount.StringFixed(2)),
	)
	_ = a.bus.Publish(ctx, checkout.NewOrderAssembledEvent(
		a.userID, orderID, len(payload.Items), payload.TotalAmount.StringFixed(2)))

	return orderID, payload, nil
}
