package checkout

import (
	"sync"
	"time"

	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/checkout"
	"github.com/aswinkumar1126/JaiGuru-sub001/internal/domain/shared"
	"go.uber.org/zap"
)

// CheckoutSession bundles one user's engine instances
type CheckoutSession struct {
	UserID    string
	Store     *CartLineStore
	Composer  *CartComposer
	Assembler *OrderAssembler
}

// SessionManagerConfig holds the policy knobs of the session manager
type SessionManagerConfig struct {
	AutoSelectNewLines bool
	IdempotencyTTL     time.Duration
}

// SessionManager creates and caches per-user checkout sessions. The
// product detail cache is deliberately shared across all sessions; the
// cart store, selection and composer are per user.
type SessionManager struct {
	cart        checkout.CartService
	orders      checkout.OrderService
	cache       *ProductDetailCache
	bus         shared.EventBus
	idempotency shared.IdempotencyStore
	logger      *zap.Logger
	cfg         SessionManagerConfig

	mu       sync.Mutex
	sessions map[string]*CheckoutSession
}

// NewSessionManager creates a session manager
func NewSessionManager(
	cart checkout.CartService,
	products checkout.ProductService,
	orders checkout.OrderService,
	bus shared.EventBus,
	idempotency shared.IdempotencyStore,
	logger *zap.Logger,
	cfg SessionManagerConfig,
) *SessionManager {
	return &SessionManager{
		cart:        cart,
		orders:      orders,
		cache:       NewProductDetailCache(products, bus, logger.Named("product_cache")),
		bus:         bus,
		idempotency: idempotency,
		logger:      logger,
		cfg:         cfg,
		sessions:    make(map[string]*CheckoutSession),
	}
}

// Session returns the checkout session for a user, creating it on first use
func (m *SessionManager) Session(userID string) *CheckoutSession {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[userID]; ok {
		return session
	}

	store := NewCartLineStore(userID, m.cart, m.bus, m.logger.Named("cart_store"), m.cfg.AutoSelectNewLines)
	composer := NewCartComposer(userID, store, m.cache, m.logger.Named("composer"))
	assembler := NewOrderAssembler(userID, composer, m.orders, m.idempotency, m.cfg.IdempotencyTTL, m.bus, m.logger.Named("assembler"))

	m.bus.Subscribe(composer)

	session := &CheckoutSession{
		UserID:    userID,
		Store:     store,
		Composer:  composer,
		Assembler: assembler,
	}
	m.sessions[userID] = session
	return session
}

// ProductCache exposes the shared cache, e.g. for retry endpoints
func (m *SessionManager) ProductCache() *ProductDetailCache {
	return m.cache
}
