package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/cache"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderService struct {
	mu          sync.Mutex
	submitErr   error
	submissions []checkout.OrderPayload
}

func (s *stubOrderService) SubmitOrder(_ context.Context, _ string, payload checkout.OrderPayload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return "", s.submitErr
	}
	s.submissions = append(s.submissions, payload)
	return fmt.Sprintf("ORD-%d", len(s.submissions)), nil
}

func (s *stubOrderService) submissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}

type assemblerFixture struct {
	*composerFixture
	orders    *stubOrderService
	assembler *OrderAssembler
}

func newAssemblerFixture(t *testing.T, cart *stubCartService, products *stubProductService) *assemblerFixture {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	productCache := NewProductDetailCache(products, bus, zap.NewNop())
	store := NewCartLineStore("user-1", cart, bus, zap.NewNop(), true)
	composer := NewCartComposer("user-1", store, productCache, zap.NewNop())
	bus.Subscribe(composer)

	idempotency := cache.NewInMemoryIdempotencyStore()
	t.Cleanup(func() { _ = idempotency.Close() })

	orders := &stubOrderService{}
	assembler := NewOrderAssembler("user-1", composer, orders, idempotency, 0, bus, zap.NewNop())
	return &assemblerFixture{
		composerFixture: &composerFixture{cart: cart, products: products, cache: productCache, store: store, composer: composer},
		orders:          orders,
		assembler:       assembler,
	}
}

func loadedAssemblerFixture(t *testing.T) *assemblerFixture {
	t.Helper()
	cart := &stubCartService{lines: []checkout.CartLine{
		cartLine(1, 10, 2, "100"),
		cartLine(2, 20, 1, "50"),
	}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10, Name: "Gold Chain", GrandTotal: decimal.NewFromInt(150)}
	products.records[20] = checkout.ProductRecord{ItemID: 20, Name: "Silver Anklet", GrandTotal: decimal.NewFromInt(50)}
	f := newAssemblerFixture(t, cart, products)

	require.NoError(t, f.store.Load(context.Background()))
	waitResolved(t, f.cache, 10)
	waitResolved(t, f.cache, 20)
	return f
}

func TestAssembleSnapshotsSelectedLines(t *testing.T) {
	f := loadedAssemblerFixture(t)

	payload, err := f.assembler.Assemble(context.Background())
	require.NoError(t, err)

	require.Len(t, payload.Items, 2)
	assert.Equal(t, "Gold Chain", payload.Items[0].Name)
	assert.Equal(t, int64(2), payload.Items[0].Quantity)
	assert.Equal(t, "350.00", payload.TotalAmount.StringFixed(2))
	assert.NotEmpty(t, payload.PayloadID)
}

func TestAssembleRejectsEmptySelection(t *testing.T) {
	f := loadedAssemblerFixture(t)
	ctx := context.Background()

	_, err := f.store.Toggle(ctx, 1)
	require.NoError(t, err)
	_, err = f.store.Toggle(ctx, 2)
	require.NoError(t, err)

	_, err = f.assembler.Assemble(ctx)
	assert.ErrorIs(t, err, shared.ErrEmptySelection)
	assert.Equal(t, 0, f.orders.submissionCount())
}

func TestPlaceOrderSubmitsAndReturnsID(t *testing.T) {
	f := loadedAssemblerFixture(t)

	orderID, payload, err := f.assembler.PlaceOrder(context.Background(), "key-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", orderID)
	assert.Equal(t, "350.00", payload.TotalAmount.StringFixed(2))
	assert.Equal(t, 1, f.orders.submissionCount())
}

func TestPlaceOrderRejectsDuplicateKey(t *testing.T) {
	f := loadedAssemblerFixture(t)
	ctx := context.Background()

	_, _, err := f.assembler.PlaceOrder(ctx, "key-1")
	require.NoError(t, err)

	_, _, err = f.assembler.PlaceOrder(ctx, "key-1")
	assert.ErrorIs(t, err, shared.ErrDuplicateSubmission)
	assert.Equal(t, 1, f.orders.submissionCount())

	// A different key goes through
	_, _, err = f.assembler.PlaceOrder(ctx, "key-2")
	require.NoError(t, err)
	assert.Equal(t, 2, f.orders.submissionCount())
}

func TestFailedSubmissionKeepsKeyRetryable(t *testing.T) {
	f := loadedAssemblerFixture(t)
	ctx := context.Background()

	f.orders.mu.Lock()
	f.orders.submitErr = errors.New("order service down")
	f.orders.mu.Unlock()

	_, _, err := f.assembler.PlaceOrder(ctx, "key-1")
	require.Error(t, err)
	require.NotErrorIs(t, err, shared.ErrDuplicateSubmission)

	f.orders.mu.Lock()
	f.orders.submitErr = nil
	f.orders.mu.Unlock()

	// The key was not consumed by the failed attempt
	orderID, _, err := f.assembler.PlaceOrder(ctx, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", orderID)
}

func TestPlaceOrderWithoutKeySkipsIdempotency(t *testing.T) {
	f := loadedAssemblerFixture(t)
	ctx := context.Background()

	_, _, err := f.assembler.PlaceOrder(ctx, "")
	require.NoError(t, err)
	_, _, err = f.assembler.PlaceOrder(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 2, f.orders.submissionCount())
}
