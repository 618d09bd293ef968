package models

// RingSizes lists the sizes offered for rings, smallest first.
var RingSizes = []string{"4", "4.5", "5", "5.5", "6", "6.5", "7", "7.5", "8", "8.5", "9"}

// DefaultRingSize is preselected in the quick view.
const DefaultRingSize = "6"

// CartItem is a product snapshot plus the size chosen for rings.
type CartItem struct {
	Product
	SelectedSize string `json:"selected_size,omitempty"`
}

type AddItemRequest struct {
	ProductID    string `json:"product_id"    validate:"required"`
	SelectedSize string `json:"selected_size" validate:"omitempty,oneof=4 4.5 5 5.5 6 6.5 7 7.5 8 8.5 9"`
}

type CartResponse struct {
	Items        []CartItem `json:"items"`
	TotalUSD     float64    `json:"total_usd"`
	DisplayTotal string     `json:"display_total"`
}

func IsRingSize(size string) bool {
	for _, s := range RingSizes {
		if s == size {
			return true
		}
	}
	return false
}
