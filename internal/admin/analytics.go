// Package admin derives the dashboard's clientele and sales figures from the
// order history.
package admin

import (
	"sort"

	"github.com/lumiere-stone/atelier/internal/models"
)

// Customers groups orders by email. Name and last order date come from each
// customer's most recent order; the result is newest first.
func Customers(orders []models.Order) []models.Customer {
	byEmail := make(map[string]*models.Customer)
	var order []string

	for _, o := range orders {
		c, ok := byEmail[o.CustomerEmail]
		if !ok {
			c = &models.Customer{Email: o.CustomerEmail, Name: o.CustomerName, LastOrderDate: o.Date}
			byEmail[o.CustomerEmail] = c
			order = append(order, o.CustomerEmail)
		}
		c.TotalSpent += o.TotalUSD
		if o.Date.After(c.LastOrderDate) {
			c.LastOrderDate = o.Date
			c.Name = o.CustomerName
		}
	}

	out := make([]models.Customer, 0, len(order))
	for _, email := range order {
		out = append(out, *byEmail[email])
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastOrderDate.After(out[j].LastOrderDate)
	})

	return out
}

func Summary(orders []models.Order) models.SalesSummary {
	s := models.SalesSummary{OrderCount: len(orders)}
	for _, o := range orders {
		s.TotalRevenue += o.TotalUSD
	}
	for _, c := range Customers(orders) {
		if c.TotalSpent > s.TopSpend {
			s.TopSpend = c.TotalSpent
		}
	}
	return s
}
