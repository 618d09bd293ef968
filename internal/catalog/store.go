// Package catalog holds the product list of one storefront session. It is the
// only mutator of that list. A Store is not safe for concurrent use; the
// owning session serialises access.
package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lumiere-stone/atelier/internal/models"
)

type Store struct {
	products []models.Product
	newID    func() string
}

type Option func(*Store)

// WithIDGenerator replaces the UUID generator used for admin-added pieces.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

func NewStore(products []models.Product, opts ...Option) *Store {
	s := &Store{
		products: append([]models.Product(nil), products...),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Products() []models.Product {
	return append([]models.Product(nil), s.products...)
}

func (s *Store) Len() int {
	return len(s.products)
}

func (s *Store) Get(id string) (models.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// AddProduct prepends a new piece built from draft. Drafts without a name or
// with a zero price are ignored and reported with ok == false.
func (s *Store) AddProduct(draft models.ProductDraft) (models.Product, bool) {
	name := strings.TrimSpace(draft.Name)
	if name == "" || draft.PriceUSD == 0 {
		return models.Product{}, false
	}

	image := draft.Image
	if image == "" {
		image = DefaultImage
	}

	p := models.Product{
		ID:       s.newID(),
		Name:     name,
		Category: draft.Category,
		PriceUSD: draft.PriceUSD,
		Image:    image,
		Metal:    draft.Metal,
		Specs:    draft.Specs,
	}

	s.products = append([]models.Product{p}, s.products...)

	return p, true
}

// RemoveProduct deletes the first product with the given id once confirm
// approves it. It reports whether the catalog changed.
func (s *Store) RemoveProduct(id string, confirm func(models.Product) bool) bool {
	for i, p := range s.products {
		if p.ID != id {
			continue
		}
		if confirm == nil || !confirm(p) {
			return false
		}
		s.products = append(s.products[:i:i], s.products[i+1:]...)
		return true
	}
	return false
}
