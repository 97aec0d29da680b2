package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProductService is a controllable product service for cache tests
type stubProductService struct {
	mu      sync.Mutex
	calls   map[int64]int
	records map[int64]checkout.ProductRecord
	errs    map[int64]error
	gate    chan struct{} // when set, fetches block until the gate closes
}

func newStubProductService() *stubProductService {
	return &stubProductService{
		calls:   make(map[int64]int),
		records: make(map[int64]checkout.ProductRecord),
		errs:    make(map[int64]error),
	}
}

func (s *stubProductService) FetchProduct(_ context.Context, itemID int64) (checkout.ProductRecord, error) {
	s.mu.Lock()
	s.calls[itemID]++
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.errs[itemID]; ok {
		return checkout.ProductRecord{}, err
	}
	return s.records[itemID], nil
}

func (s *stubProductService) callCount(itemID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[itemID]
}

func newTestCache(t *testing.T, products checkout.ProductService) *ProductDetailCache {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	return NewProductDetailCache(products, bus, zap.NewNop())
}

func waitResolved(t *testing.T, cache *ProductDetailCache, itemID int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, state := cache.Get(itemID)
		return state == checkout.FetchResolved
	}, time.Second, time.Millisecond)
}

func waitFailed(t *testing.T, cache *ProductDetailCache, itemID int64) {
	t.Helper()
	require.Eventually(t, func() bool {
		_, state := cache.Get(itemID)
		return state == checkout.FetchFailed
	}, time.Second, time.Millisecond)
}

func TestEnsureFetchesExactlyOnce(t *testing.T) {
	products := newStubProductService()
	products.records[1] = checkout.ProductRecord{ItemID: 1, Name: "Ring", GrandTotal: decimal.NewFromInt(150)}
	cache := newTestCache(t, products)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Ensure(ctx, 1)
		}()
	}
	wg.Wait()
	waitResolved(t, cache, 1)

	assert.Equal(t, 1, products.callCount(1))

	record, state := cache.Get(1)
	require.NotNil(t, record)
	assert.Equal(t, checkout.FetchResolved, state)
	assert.Equal(t, "Ring", record.Name)
}

func TestEnsureIsNoopOnResolvedID(t *testing.T) {
	products := newStubProductService()
	products.records[1] = checkout.ProductRecord{ItemID: 1}
	cache := newTestCache(t, products)
	ctx := context.Background()

	cache.Ensure(ctx, 1)
	waitResolved(t, cache, 1)

	cache.Ensure(ctx, 1)
	cache.Ensure(ctx, 1)

	assert.Equal(t, 1, products.callCount(1))
}

func TestPendingMarkerGatesConcurrentFetches(t *testing.T) {
	products := newStubProductService()
	products.records[1] = checkout.ProductRecord{ItemID: 1}
	products.gate = make(chan struct{})
	cache := newTestCache(t, products)
	ctx := context.Background()

	cache.Ensure(ctx, 1)
	require.Eventually(t, func() bool {
		_, state := cache.Get(1)
		return state == checkout.FetchPending
	}, time.Second, time.Millisecond)

	// More ensures while the first fetch is still in flight
	cache.Ensure(ctx, 1)
	cache.Ensure(ctx, 1)

	close(products.gate)
	waitResolved(t, cache, 1)
	assert.Equal(t, 1, products.callCount(1))
}

func TestFailedFetchRetainsErrorUntilRetry(t *testing.T) {
	products := newStubProductService()
	fetchErr := errors.New("service unavailable")
	products.errs[1] = fetchErr
	cache := newTestCache(t, products)
	ctx := context.Background()

	cache.Ensure(ctx, 1)
	waitFailed(t, cache, 1)
	assert.ErrorIs(t, cache.FetchError(1), fetchErr)

	// Ensure on a failed id does not re-fetch
	cache.Ensure(ctx, 1)
	assert.Equal(t, 1, products.callCount(1))

	// Explicit retry re-issues exactly one fetch
	products.mu.Lock()
	delete(products.errs, 1)
	products.records[1] = checkout.ProductRecord{ItemID: 1, Name: "Chain"}
	products.mu.Unlock()

	cache.Retry(ctx, 1)
	waitResolved(t, cache, 1)
	assert.Equal(t, 2, products.callCount(1))
	assert.NoError(t, cache.FetchError(1))
}

func TestRetryIsNoopUnlessFailed(t *testing.T) {
	products := newStubProductService()
	products.records[1] = checkout.ProductRecord{ItemID: 1}
	cache := newTestCache(t, products)
	ctx := context.Background()

	// Retry on an absent id does nothing
	cache.Retry(ctx, 1)
	assert.Equal(t, 0, products.callCount(1))

	cache.Ensure(ctx, 1)
	waitResolved(t, cache, 1)

	// Retry on a resolved id does nothing
	cache.Retry(ctx, 1)
	assert.Equal(t, 1, products.callCount(1))
}

func TestDistinctIDsFetchConcurrently(t *testing.T) {
	products := newStubProductService()
	for id := int64(1); id <= 5; id++ {
		products.records[id] = checkout.ProductRecord{ItemID: id}
	}
	cache := newTestCache(t, products)
	ctx := context.Background()

	for id := int64(1); id <= 5; id++ {
		cache.Ensure(ctx, id)
	}
	for id := int64(1); id <= 5; id++ {
		waitResolved(t, cache, id)
		assert.Equal(t, 1, products.callCount(id))
	}
}
