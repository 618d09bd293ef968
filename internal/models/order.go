package models

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

const (
	GuestCustomerName  = "Guest Client"
	GuestCustomerEmail = "guest@example.com"

	CheckoutConfirmation = "Thank you for your purchase. Your order has been sent to our atelier."
)

// Order is an immutable snapshot of a cart at checkout. Only Status changes
// afterwards.
type Order struct {
	ID            string      `json:"id"`
	Date          time.Time   `json:"date"`
	CustomerName  string      `json:"customer_name"`
	CustomerEmail string      `json:"customer_email"`
	Items         []CartItem  `json:"items"`
	TotalUSD      float64     `json:"total_usd"`
	Status        OrderStatus `json:"status"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=Processing Shipped Delivered"`
}

type CheckoutResponse struct {
	Placed  bool   `json:"placed"`
	Message string `json:"message,omitempty"`
	Order   *Order `json:"order,omitempty"`
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(s); st {
	case OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered:
		return st, nil
	}
	return "", fmt.Errorf("unknown order status %q", s)
}

// Customer is derived from orders for the clientele view.
type Customer struct {
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	TotalSpent    float64   `json:"total_spent"`
	LastOrderDate time.Time `json:"last_order_date"`
}

type SalesSummary struct {
	TotalRevenue float64 `json:"total_revenue"`
	OrderCount   int     `json:"order_count"`
	TopSpend     float64 `json:"top_spend"`
}
