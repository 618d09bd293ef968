package models

type Category string

const (
	CategoryRing     Category = "Ring"
	CategoryNecklace Category = "Necklace"
	CategoryEarrings Category = "Earrings"
)

type Metal string

const (
	MetalYellowGold Metal = "18k Yellow Gold"
	MetalPlatinum   Metal = "Platinum"
	MetalRoseGold   Metal = "18k Rose Gold"
)

// FourCs is the grading of a product's centre stone. Set once at creation.
type FourCs struct {
	Carat   float64 `json:"carat"   validate:"required,gt=0"`
	Cut     string  `json:"cut"     validate:"required,oneof='Excellent' 'Very Good' 'Good'"`
	Color   string  `json:"color"   validate:"required,oneof=D E F G H"`
	Clarity string  `json:"clarity" validate:"required,oneof=FL IF VVS1 VVS2 VS1"`
}

type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	PriceUSD float64  `json:"price_usd"`
	Image    string   `json:"image"`
	Metal    Metal    `json:"metal"`
	Specs    FourCs   `json:"specs"`
}

// ProductDraft is the admin-submitted form for a new catalog piece.
type ProductDraft struct {
	Name     string   `json:"name"`
	Category Category `json:"category"  validate:"required,oneof=Ring Necklace Earrings"`
	PriceUSD float64  `json:"price_usd" validate:"gte=0,lte=100000000"`
	Image    string   `json:"image"     validate:"omitempty,url"`
	Metal    Metal    `json:"metal"     validate:"required,oneof='18k Yellow Gold' 'Platinum' '18k Rose Gold'"`
	Specs    FourCs   `json:"specs"`
}

// ProductView is a catalog entry as rendered for the storefront.
type ProductView struct {
	Product
	DisplayPrice string `json:"display_price"`
	Wishlisted   bool   `json:"wishlisted"`
}
