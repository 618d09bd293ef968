package orders_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/lumiere-stone/atelier/internal/catalog"
	"github.com/lumiere-stone/atelier/internal/models"
	"github.com/lumiere-stone/atelier/internal/orders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() orders.Option {
	n := 0
	return orders.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("order-%d", n)
	})
}

func TestNewCartItem(t *testing.T) {
	seed := catalog.Seed()
	ring, necklace := seed[0], seed[1]

	assert.Equal(t, "7.5", orders.NewCartItem(ring, "7.5").SelectedSize)
	assert.Equal(t, models.DefaultRingSize, orders.NewCartItem(ring, "").SelectedSize)
	assert.Empty(t, orders.NewCartItem(necklace, "7").SelectedSize, "size is only meaningful for rings")
}

func TestCheckoutEmptyCart(t *testing.T) {
	m := orders.NewManager()

	_, ok := m.Checkout(time.Now())

	assert.False(t, ok)
	assert.Empty(t, m.Orders())
	assert.Empty(t, m.Cart())

	_, ok = m.Checkout(time.Now())
	assert.False(t, ok)
	assert.Empty(t, m.Orders())
}

func TestCheckout(t *testing.T) {
	seed := catalog.Seed()
	m := orders.NewManager(sequentialIDs())
	now := time.Date(2024, 3, 14, 10, 30, 0, 0, time.UTC)

	m.AddToCart(orders.NewCartItem(seed[0], "6"))
	m.AddToCart(orders.NewCartItem(seed[0], "6"))
	m.AddToCart(orders.NewCartItem(seed[4], ""))
	require.Len(t, m.Cart(), 3, "identical products stay separate lines")
	assert.Equal(t, 47000.0, m.CartTotal())

	order, ok := m.Checkout(now)

	require.True(t, ok)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, now, order.Date)
	assert.Equal(t, models.GuestCustomerName, order.CustomerName)
	assert.Equal(t, models.GuestCustomerEmail, order.CustomerEmail)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Len(t, order.Items, 3)
	assert.Equal(t, 12500.0+12500.0+22000.0, order.TotalUSD)
	assert.Empty(t, m.Cart())
	assert.Zero(t, m.CartTotal())
}

func TestCheckoutPrependsHistory(t *testing.T) {
	seed := catalog.Seed()
	m := orders.NewManager(sequentialIDs())

	m.AddToCart(orders.NewCartItem(seed[1], ""))
	first, _ := m.Checkout(time.Now())
	m.AddToCart(orders.NewCartItem(seed[2], ""))
	second, _ := m.Checkout(time.Now())

	history := m.Orders()
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)
}

func TestOrderItemsAreFrozen(t *testing.T) {
	seed := catalog.Seed()
	m := orders.NewManager()

	m.AddToCart(orders.NewCartItem(seed[3], "5"))
	order, _ := m.Checkout(time.Now())

	order.Items[0].PriceUSD = 1
	m.AddToCart(orders.NewCartItem(seed[5], "8"))

	history := m.Orders()
	require.Len(t, history, 1)
	require.Len(t, history[0].Items, 1)
	assert.Equal(t, 15000.0, history[0].Items[0].PriceUSD)
	assert.Equal(t, 15000.0, history[0].TotalUSD)
}

func TestUpdateOrderStatus(t *testing.T) {
	seed := catalog.Seed()
	m := orders.NewManager(sequentialIDs())
	m.AddToCart(orders.NewCartItem(seed[0], ""))
	order, _ := m.Checkout(time.Now())

	t.Run("Known id", func(t *testing.T) {
		updated, ok := m.UpdateOrderStatus(order.ID, models.OrderStatusShipped)

		require.True(t, ok)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
		assert.Equal(t, models.OrderStatusShipped, m.Orders()[0].Status)
		assert.Equal(t, order.TotalUSD, m.Orders()[0].TotalUSD)
	})

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		before := m.Orders()

		_, ok := m.UpdateOrderStatus("missing", models.OrderStatusDelivered)

		assert.False(t, ok)
		assert.Equal(t, before, m.Orders())
	})
}
