// Package router is the three-way view switch of a storefront session.
package router

import (
	"errors"

	"github.com/lumiere-stone/atelier/internal/models"
)

// AdminMarker is the navigation fragment that opens the admin login.
const AdminMarker = "#admin"

var ErrInvalidTransition = errors.New("invalid view transition")

// Router starts on the storefront. The dashboard is only reachable through
// the login view.
type Router struct {
	view     models.View
	fragment string
}

func New() *Router {
	return &Router{view: models.ViewStorefront}
}

func (r *Router) View() models.View {
	return r.view
}

func (r *Router) Fragment() string {
	return r.fragment
}

// Navigate records a fragment change. It is also applied once on load.
func (r *Router) Navigate(fragment string) {
	r.fragment = fragment
	if r.view == models.ViewStorefront && fragment == AdminMarker {
		r.view = models.ViewAdminLogin
	}
}

func (r *Router) LoginSucceeded() error {
	return r.transition(models.ViewAdminLogin, models.ViewAdminDashboard, false)
}

// Cancel leaves the login view and clears the fragment.
func (r *Router) Cancel() error {
	return r.transition(models.ViewAdminLogin, models.ViewStorefront, true)
}

// Exit leaves the dashboard and clears the fragment.
func (r *Router) Exit() error {
	return r.transition(models.ViewAdminDashboard, models.ViewStorefront, true)
}

func (r *Router) transition(from, to models.View, clearFragment bool) error {
	if r.view != from {
		return ErrInvalidTransition
	}
	r.view = to
	if clearFragment {
		r.fragment = ""
	}
	return nil
}
