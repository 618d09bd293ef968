package session

import (
	"context"
	"log/slog"

	"github.com/lumiere-stone/atelier/internal/currency"
	"github.com/lumiere-stone/atelier/internal/models"
)

type sidebar struct {
	open        bool
	product     models.Product
	description string
	loading     bool
}

// OpenSidebar shows p in the quick view and starts writing its narrative in
// the background. A narrative is applied only while its product is still
// the one shown, so a late reply never lands on another piece.
func (s *State) OpenSidebar(ctx context.Context, productID string) (models.Sidebar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(productID)
	if !ok {
		return models.Sidebar{}, ErrProductNotFound
	}

	s.sidebar = sidebar{open: true, product: p, loading: true}

	gctx, cancel := s.collaboratorContext(ctx)
	s.narratives.Add(1)
	go func() {
		defer s.narratives.Done()
		defer cancel()

		text := s.deps.Narratives.Generate(gctx, p)
		s.applyNarrative(p.ID, text)
	}()

	return s.sidebarLocked(), nil
}

func (s *State) applyNarrative(productID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.sidebar.open || s.sidebar.product.ID != productID {
		s.logger.Debug("Discarding narrative for a product no longer shown", slog.String("productId", productID))
		return
	}
	s.sidebar.description = text
	s.sidebar.loading = false
}

func (s *State) Sidebar() models.Sidebar {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sidebarLocked()
}

func (s *State) CloseSidebar() {
	s.mu.Lock()
	s.sidebar = sidebar{}
	s.mu.Unlock()
}

// WaitNarratives blocks until every background narrative has finished.
func (s *State) WaitNarratives() {
	s.narratives.Wait()
}

func (s *State) sidebarLocked() models.Sidebar {
	if !s.sidebar.open {
		return models.Sidebar{}
	}
	p := s.sidebar.product
	return models.Sidebar{
		Open:         true,
		Product:      &p,
		DisplayPrice: currency.DisplayPrice(p.PriceUSD, s.displayConfig()),
		Description:  s.sidebar.description,
		Loading:      s.sidebar.loading,
	}
}
