package admin_test

import (
	"testing"
	"time"

	"github.com/lumiere-stone/atelier/internal/admin"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(email, name string, total float64, at time.Time) models.Order {
	return models.Order{ID: email + at.String(), CustomerEmail: email, CustomerName: name, TotalUSD: total, Date: at, Status: models.OrderStatusProcessing}
}

func TestCustomers(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		order("guest@example.com", "Guest Client", 4200, base.Add(2*time.Hour)),
		order("amelie@example.com", "Amélie", 22000, base.Add(3*time.Hour)),
		order("guest@example.com", "Guest", 12500, base),
	}

	customers := admin.Customers(orders)

	require.Len(t, customers, 2)
	assert.Equal(t, "amelie@example.com", customers[0].Email)
	assert.Equal(t, 22000.0, customers[0].TotalSpent)

	assert.Equal(t, "guest@example.com", customers[1].Email)
	assert.Equal(t, "Guest Client", customers[1].Name, "name comes from the latest order")
	assert.Equal(t, 16700.0, customers[1].TotalSpent)
	assert.Equal(t, base.Add(2*time.Hour), customers[1].LastOrderDate)
}

func TestCustomersEmpty(t *testing.T) {
	assert.Empty(t, admin.Customers(nil))
	assert.Equal(t, models.SalesSummary{}, admin.Summary(nil))
}

func TestSummary(t *testing.T) {
	base := time.Now()
	orders := []models.Order{
		order("a@example.com", "A", 100, base),
		order("b@example.com", "B", 300, base),
		order("a@example.com", "A", 250, base),
	}

	s := admin.Summary(orders)

	assert.Equal(t, 650.0, s.TotalRevenue)
	assert.Equal(t, 3, s.OrderCount)
	assert.Equal(t, 350.0, s.TopSpend)
}
