// Package wishlist tracks which products a shopper has marked.
package wishlist

import "sort"

type Wishlist struct {
	ids map[string]struct{}
}

func New() *Wishlist {
	return &Wishlist{ids: make(map[string]struct{})}
}

// Toggle flips membership of id and returns the new membership.
func (w *Wishlist) Toggle(id string) bool {
	if _, ok := w.ids[id]; ok {
		delete(w.ids, id)
		return false
	}
	w.ids[id] = struct{}{}
	return true
}

func (w *Wishlist) Contains(id string) bool {
	_, ok := w.ids[id]
	return ok
}

func (w *Wishlist) Len() int {
	return len(w.ids)
}

// IDs returns the members in lexical order.
func (w *Wishlist) IDs() []string {
	out := make([]string, 0, len(w.ids))
	for id := range w.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
