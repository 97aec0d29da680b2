package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingHandler struct {
	mu     sync.Mutex
	types  []string
	events []shared.DomainEvent
	err    error
	panics bool
}

func (h *recordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	if h.panics {
		panic("boom")
	}
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
	return h.err
}

func (h *recordingHandler) EventTypes() []string {
	return h.types
}

func (h *recordingHandler) seen() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.events)
}

func TestPublishDeliversToSubscribedTypes(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	cartHandler := &recordingHandler{types: []string{checkout.EventTypeCartLinesChanged}}
	productHandler := &recordingHandler{types: []string{checkout.EventTypeProductResolved}}

	bus.Subscribe(cartHandler)
	bus.Subscribe(productHandler)

	err := bus.Publish(context.Background(),
		checkout.NewCartLinesChangedEvent("user-1", []int64{1, 2}, "load"),
		checkout.NewProductResolvedEvent(42),
	)

	assert.NoError(t, err)
	assert.Equal(t, 1, cartHandler.seen())
	assert.Equal(t, 1, productHandler.seen())
}

func TestWildcardHandlerReceivesAllEvents(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	all := &recordingHandler{}
	bus.Subscribe(all)

	_ = bus.Publish(context.Background(),
		checkout.NewCartLinesChangedEvent("user-1", nil, "load"),
		checkout.NewSelectionChangedEvent("user-1", nil),
		checkout.NewProductFetchFailedEvent(7, "timeout"),
	)

	assert.Equal(t, 3, all.seen())
}

func TestHandlerFailureDoesNotBlockOthers(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	failing := &recordingHandler{err: errors.New("handler error")}
	healthy := &recordingHandler{}
	bus.Subscribe(failing, checkout.EventTypeProductResolved)
	bus.Subscribe(healthy, checkout.EventTypeProductResolved)

	err := bus.Publish(context.Background(), checkout.NewProductResolvedEvent(1))

	assert.NoError(t, err)
	assert.Equal(t, 1, healthy.seen())
}

func TestHandlerPanicIsIsolated(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	panicking := &recordingHandler{panics: true}
	healthy := &recordingHandler{}
	bus.Subscribe(panicking, checkout.EventTypeProductResolved)
	bus.Subscribe(healthy, checkout.EventTypeProductResolved)

	assert.NotPanics(t, func() {
		_ = bus.Publish(context.Background(), checkout.NewProductResolvedEvent(1))
	})
	assert.Equal(t, 1, healthy.seen())
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewInMemoryEventBus(zap.NewNop())
	h := &recordingHandler{}
	bus.Subscribe(h, checkout.EventTypeProductResolved)
	bus.Unsubscribe(h)

	_ = bus.Publish(context.Background(), checkout.NewProductResolvedEvent(1))

	assert.Equal(t, 0, h.seen())
}
