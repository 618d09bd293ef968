// Package session holds everything one storefront visit owns: catalog, cart,
// orders, wishlist, currency, view, quick-view sidebar and concierge chat.
// All mutation goes through State, which serialises it.
package session

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"sync"
	"time"

	"github.com/lumiere-stone/atelier/internal/catalog"
	"github.com/lumiere-stone/atelier/internal/chat"
	"github.com/lumiere-stone/atelier/internal/currency"
	"github.com/lumiere-stone/atelier/internal/llm"
	"github.com/lumiere-stone/atelier/internal/metrics"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/narrative"
	"github.com/lumiere-stone/atelier/internal/notify"
	"github.com/lumiere-stone/atelier/internal/orders"
	"github.com/lumiere-stone/atelier/internal/router"
	"github.com/lumiere-stone/atelier/internal/wishlist"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrUnknownCurrency = errors.New("unknown currency")
	ErrInvalidSize     = errors.New("size is not offered for rings")
)

// NarrativeSource writes the sidebar prose for a product. It never fails.
type NarrativeSource interface {
	Generate(ctx context.Context, p models.Product) string
}

type Dependencies struct {
	Narratives NarrativeSource
	Chat       llm.ConversationStarter
	Notifier   notify.Notifier
	Logger     *slog.Logger

	// CollaboratorTimeout bounds each call to the text service and the mailer.
	CollaboratorTimeout time.Duration

	// Products seeds the catalog. Nil means the signature collection.
	Products []models.Product
}

var policy = bluemonday.StrictPolicy()

// plainText strips markup from shopper or admin input.
func plainText(s string) string {
	return html.UnescapeString(policy.Sanitize(s))
}

type State struct {
	id        string
	createdAt time.Time
	deps      Dependencies
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	lastSeen time.Time
	catalog  *catalog.Store
	orders   *orders.Manager
	wishlist *wishlist.Wishlist
	currency models.CurrencyCode
	router   *router.Router
	sidebar  sidebar

	chat       *chat.Assistant
	narratives sync.WaitGroup
}

func newState(id string, now time.Time, deps Dependencies) *State {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("sessionId", id))

	products := deps.Products
	if products == nil {
		products = catalog.Seed()
	}
	if deps.Narratives == nil {
		deps.Narratives = fallbackOnly{}
	}
	if deps.Chat == nil {
		deps.Chat = llm.Unavailable{}
	}
	if deps.Notifier == nil {
		deps.Notifier = notify.LogNotifier{Logger: logger}
	}

	return &State{
		id:        id,
		createdAt: now,
		deps:      deps,
		logger:    logger,
		now:       time.Now,
		lastSeen:  now,
		catalog:   catalog.NewStore(products),
		orders:    orders.NewManager(),
		wishlist:  wishlist.New(),
		currency:  currency.DefaultCode,
		router:    router.New(),
		chat:      chat.NewAssistant(deps.Chat, logger),
	}
}

func (s *State) ID() string { return s.id }

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// collaboratorContext detaches from the request so a dropped connection does
// not cut a reply short, and applies the configured timeout.
func (s *State) collaboratorContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.deps.CollaboratorTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.deps.CollaboratorTimeout)
}

func (s *State) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return models.SessionSnapshot{
		ID:            s.id,
		View:          s.router.View(),
		Fragment:      s.router.Fragment(),
		Currency:      s.currency,
		CartCount:     len(s.orders.Cart()),
		WishlistCount: s.wishlist.Len(),
		CreatedAt:     s.createdAt,
	}
}

func (s *State) View() models.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.View()
}

// Navigate applies a location-fragment change.
func (s *State) Navigate(fragment string) models.View {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.router.Navigate(fragment)
	return s.router.View()
}

func (s *State) SetCurrency(code models.CurrencyCode) error {
	if _, ok := currency.Lookup(code); !ok {
		return ErrUnknownCurrency
	}

	s.mu.Lock()
	s.currency = code
	s.mu.Unlock()

	return nil
}

func (s *State) displayConfig() models.CurrencyConfig {
	cfg, _ := currency.Lookup(s.currency)
	return cfg
}

// Products lists the catalog priced in the selected currency.
func (s *State) Products() []models.ProductView {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg := s.displayConfig()
	products := s.catalog.Products()
	views := make([]models.ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, models.ProductView{
			Product:      p,
			DisplayPrice: currency.DisplayPrice(p.PriceUSD, cfg),
			Wishlisted:   s.wishlist.Contains(p.ID),
		})
	}
	return views
}

// ToggleWishlist flips membership for productID and returns the new state.
// Any id is accepted, in or out of the catalog.
func (s *State) ToggleWishlist(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.wishlist.Toggle(productID)
}

func (s *State) Cart() models.CartResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.orders.CartTotal()
	return models.CartResponse{
		Items:        s.orders.Cart(),
		TotalUSD:     total,
		DisplayTotal: currency.DisplayPrice(total, s.displayConfig()),
	}
}

func (s *State) AddToCart(productID, size string) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return models.CartItem{}, ErrProductNotFound
	}
	if p.Category == models.CategoryRing && size != "" && !models.IsRingSize(size) {
		return models.CartItem{}, ErrInvalidSize
	}

	item := orders.NewCartItem(p, size)
	s.orders.AddToCart(item)
	return item, nil
}

// Checkout places an order from the cart. An empty cart places nothing.
// The confirmation notice is sent after the session lock is released.
func (s *State) Checkout(ctx context.Context) models.CheckoutResponse {
	s.mu.Lock()
	order, ok := s.orders.Checkout(s.now())
	s.mu.Unlock()

	if !ok {
		return models.CheckoutResponse{Placed: false}
	}

	metrics.OrderPlaced()
	s.logger.Info("Order placed", slog.String("orderId", order.ID), slog.Float64("totalUSD", order.TotalUSD))

	nctx, cancel := s.collaboratorContext(ctx)
	defer cancel()
	if err := s.deps.Notifier.OrderPlaced(nctx, order); err != nil {
		s.logger.Warn("Order confirmation could not be sent", slog.String("orderId", order.ID), slog.String("error", err.Error()))
	}

	return models.CheckoutResponse{Placed: true, Message: models.CheckoutConfirmation, Order: &order}
}

func (s *State) OpenChat(ctx context.Context) models.ChatResponse {
	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	s.chat.Open(cctx)
	return s.chat.Snapshot()
}

func (s *State) Chat() models.ChatResponse {
	return s.chat.Snapshot()
}

// SendChat blocks until the reply (or the apology) is in the transcript.
func (s *State) SendChat(ctx context.Context, text string) (models.ChatResponse, error) {
	cctx, cancel := s.collaboratorContext(ctx)
	defer cancel()

	if err := s.chat.Send(cctx, plainText(text)); err != nil {
		return models.ChatResponse{}, err
	}
	return s.chat.Snapshot(), nil
}

type fallbackOnly struct{}

func (fallbackOnly) Generate(_ context.Context, p models.Product) string {
	return narrative.Fallback(p)
}
