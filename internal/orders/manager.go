// Package orders keeps a session's cart and its order history.
package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/lumiere-stone/atelier/internal/models"
)

// Manager is not safe for concurrent use; the owning session serialises access.
type Manager struct {
	cart   []models.CartItem
	orders []models.Order
	newID  func() string
}

type Option func(*Manager)

func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{newID: uuid.NewString}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewCartItem snapshots p for the cart. The size is only kept for rings.
func NewCartItem(p models.Product, size string) models.CartItem {
	item := models.CartItem{Product: p}
	if p.Category == models.CategoryRing {
		if size == "" {
			size = models.DefaultRingSize
		}
		item.SelectedSize = size
	}
	return item
}

// AddToCart appends item. Identical products stay separate lines.
func (m *Manager) AddToCart(item models.CartItem) {
	m.cart = append(m.cart, item)
}

func (m *Manager) Cart() []models.CartItem {
	return append([]models.CartItem(nil), m.cart...)
}

func (m *Manager) CartTotal() float64 {
	return sum(m.cart)
}

// Checkout turns the cart into a Processing order at the head of the history
// and empties the cart. An empty cart is left alone and ok is false.
func (m *Manager) Checkout(now time.Time) (order models.Order, ok bool) {
	if len(m.cart) == 0 {
		return models.Order{}, false
	}

	items := append([]models.CartItem(nil), m.cart...)

	order = models.Order{
		ID:            m.newID(),
		Date:          now.UTC(),
		CustomerName:  models.GuestCustomerName,
		CustomerEmail: models.GuestCustomerEmail,
		Items:         items,
		TotalUSD:      sum(items),
		Status:        models.OrderStatusProcessing,
	}

	m.orders = append([]models.Order{order}, m.orders...)
	m.cart = nil

	return snapshot(order), true
}

// Orders returns the history, most recent first.
func (m *Manager) Orders() []models.Order {
	out := make([]models.Order, len(m.orders))
	for i, o := range m.orders {
		out[i] = snapshot(o)
	}
	return out
}

// UpdateOrderStatus reports false for unknown ids and changes nothing.
func (m *Manager) UpdateOrderStatus(id string, status models.OrderStatus) (models.Order, bool) {
	for i := range m.orders {
		if m.orders[i].ID == id {
			m.orders[i].Status = status
			return snapshot(m.orders[i]), true
		}
	}
	return models.Order{}, false
}

func snapshot(o models.Order) models.Order {
	o.Items = append([]models.CartItem(nil), o.Items...)
	return o
}

func sum(items []models.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.PriceUSD
	}
	return total
}
