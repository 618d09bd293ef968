package session

import (
	"strings"

	"github.com/lumiere-stone/atelier/internal/models"
)

// LoginSucceeded moves AdminLogin to AdminDashboard.
func (s *State) LoginSucceeded() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.LoginSucceeded()
}

func (s *State) CancelLogin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Cancel()
}

// ExitAdmin returns to the storefront and closes the admin session.
func (s *State) ExitAdmin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.router.Exit()
}

func (s *State) CatalogProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalog.Products()
}

// AddProduct ignores drafts without a name or with a zero price.
func (s *State) AddProduct(draft models.ProductDraft) (models.Product, bool) {
	draft.Name = strings.TrimSpace(plainText(draft.Name))

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.AddProduct(draft)
	if ok {
		s.logger.Info("Product added to catalog", "productId", p.ID)
	}
	return p, ok
}

// RemoveProduct deletes id only when the removal was confirmed.
func (s *State) RemoveProduct(id string, confirmed bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.catalog.RemoveProduct(id, func(models.Product) bool { return confirmed })
	if removed {
		s.logger.Info("Product removed from catalog", "productId", id)
	}
	return removed
}

func (s *State) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.Orders()
}

func (s *State) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders.UpdateOrderStatus(id, status)
}
