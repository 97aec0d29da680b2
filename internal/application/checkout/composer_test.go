package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/infrastructure/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type composerFixture struct {
	cart     *stubCartService
	products *stubProductService
	cache    *ProductDetailCache
	store    *CartLineStore
	composer *CartComposer
}

func newComposerFixture(t *testing.T, cart *stubCartService, products *stubProductService) *composerFixture {
	t.Helper()
	bus := event.NewInMemoryEventBus(zap.NewNop())
	cache := NewProductDetailCache(products, bus, zap.NewNop())
	store := NewCartLineStore("user-1", cart, bus, zap.NewNop(), true)
	composer := NewCartComposer("user-1", store, cache, zap.NewNop())
	bus.Subscribe(composer)
	return &composerFixture{cart: cart, products: products, cache: cache, store: store, composer: composer}
}

func (f *composerFixture) waitSubtotal(t *testing.T, want string) checkout.DerivedCartView {
	t.Helper()
	var view checkout.DerivedCartView
	require.Eventually(t, func() bool {
		view = f.composer.View(context.Background())
		return view.SelectedSubtotal.StringFixed(2) == want
	}, time.Second, time.Millisecond)
	return view
}

func TestViewReflectsResolvedPrices(t *testing.T) {
	cart := &stubCartService{lines: []checkout.CartLine{
		cartLine(1, 10, 2, "100"),
	}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10, Name: "Gold Ring", GrandTotal: decimal.NewFromInt(150)}
	f := newComposerFixture(t, cart, products)
	ctx := context.Background()

	require.NoError(t, f.store.Load(ctx))

	// Before resolution the fallback price carries the total
	first := f.composer.View(ctx)
	require.Len(t, first.Lines, 1)

	view := f.waitSubtotal(t, "300.00")
	require.NotNil(t, view.Lines[0].Product)
	assert.Equal(t, "Gold Ring", view.Lines[0].Product.Name)
	assert.Equal(t, checkout.FetchResolved, view.Lines[0].State)
	assert.Equal(t, 1, products.callCount(10))
}

func TestLoadTriggersFetchesWithoutView(t *testing.T) {
	cart := &stubCartService{lines: []checkout.CartLine{
		cartLine(1, 10, 1, "100"),
		cartLine(2, 20, 1, "50"),
	}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10}
	products.records[20] = checkout.ProductRecord{ItemID: 20}
	f := newComposerFixture(t, cart, products)

	// The cart-changed event alone must kick off the fetches
	require.NoError(t, f.store.Load(context.Background()))
	waitResolved(t, f.cache, 10)
	waitResolved(t, f.cache, 20)
}

func TestFailedFetchKeepsLineInTotal(t *testing.T) {
	cart := &stubCartService{lines: []checkout.CartLine{
		cartLine(1, 10, 1, "100"),
		cartLine(2, 20, 1, "54"),
	}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10, GrandTotal: decimal.NewFromInt(100)}
	products.errs[20] = errors.New("timeout")
	f := newComposerFixture(t, cart, products)
	ctx := context.Background()

	require.NoError(t, f.store.Load(ctx))
	waitResolved(t, f.cache, 10)
	waitFailed(t, f.cache, 20)

	view := f.composer.View(ctx)
	assert.Equal(t, "154.00", view.SelectedSubtotal.StringFixed(2))
	assert.True(t, view.Lines[1].StalePrice)
}

func TestRevisionAdvancesOnEngineChanges(t *testing.T) {
	cart := &stubCartService{lines: []checkout.CartLine{cartLine(1, 10, 1, "100")}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10}
	f := newComposerFixture(t, cart, products)
	ctx := context.Background()

	before := f.composer.Revision()
	require.NoError(t, f.store.Load(ctx))
	afterLoad := f.composer.Revision()
	assert.Greater(t, afterLoad, before)

	waitResolved(t, f.cache, 10)
	require.Eventually(t, func() bool {
		return f.composer.Revision() > afterLoad
	}, time.Second, time.Millisecond)

	beforeToggle := f.composer.Revision()
	_, err := f.store.Toggle(ctx, 1)
	require.NoError(t, err)
	assert.Greater(t, f.composer.Revision(), beforeToggle)
}

func TestEventsOfOtherUsersAreIgnored(t *testing.T) {
	cart := &stubCartService{}
	products := newStubProductService()
	f := newComposerFixture(t, cart, products)
	ctx := context.Background()

	before := f.composer.Revision()
	err := f.composer.Handle(ctx, checkout.NewCartLinesChangedEvent("someone-else", []int64{1}, "load"))
	require.NoError(t, err)
	assert.Equal(t, before, f.composer.Revision())
}

func TestViewIsDetachedSnapshot(t *testing.T) {
	cart := &stubCartService{lines: []checkout.CartLine{cartLine(1, 10, 1, "100")}}
	products := newStubProductService()
	products.records[10] = checkout.ProductRecord{ItemID: 10, GrandTotal: decimal.NewFromInt(100)}
	f := newComposerFixture(t, cart, products)
	ctx := context.Background()

	require.NoError(t, f.store.Load(ctx))
	view := f.waitSubtotal(t, "100.00")

	require.NoError(t, f.store.Remove(ctx, 1))

	// The earlier snapshot is unaffected by the removal
	assert.Len(t, view.Lines, 1)
	assert.Equal(t, "100.00", view.SelectedSubtotal.StringFixed(2))
	assert.Empty(t, f.composer.View(ctx).Lines)
}
