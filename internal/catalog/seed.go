package catalog

import "github.com/lumiere-stone/atelier/internal/models"

// DefaultImage is used when an admin adds a piece without a photograph.
const DefaultImage = "https://images.unsplash.com/photo-1617038220319-88af15286a77?auto=format&fit=crop&q=80&w=1000"

// Seed returns a fresh copy of the signature collection.
func Seed() []models.Product {
	return []models.Product{
		{
			ID:       "1",
			Name:     "The Solitaire Absolu",
			Category: models.CategoryRing,
			PriceUSD: 12500,
			Image:    "https://images.unsplash.com/photo-1605100804763-247f67b3557e?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 1.5, Cut: "Excellent", Color: "E", Clarity: "VVS1"},
		},
		{
			ID:       "2",
			Name:     "Aurum Pendant",
			Category: models.CategoryNecklace,
			PriceUSD: 4200,
			Image:    "https://images.unsplash.com/photo-1599643478518-17488fbbcd75?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalYellowGold,
			Specs:    models.FourCs{Carat: 0.5, Cut: "Very Good", Color: "G", Clarity: "VS1"},
		},
		{
			ID:       "3",
			Name:     "Rose Éternelle",
			Category: models.CategoryRing,
			PriceUSD: 8900,
			Image:    "https://images.unsplash.com/photo-1603561591411-07134e71a2a9?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalRoseGold,
			Specs:    models.FourCs{Carat: 1.02, Cut: "Excellent", Color: "F", Clarity: "IF"},
		},
		{
			ID:       "4",
			Name:     "Midnight Sapphire",
			Category: models.CategoryRing,
			PriceUSD: 15000,
			Image:    "https://images.unsplash.com/photo-1598560916726-2824cf965b32?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 2.1, Cut: "Excellent", Color: "D", Clarity: "VVS2"},
		},
		{
			ID:       "5",
			Name:     "Lumière Cascade",
			Category: models.CategoryNecklace,
			PriceUSD: 22000,
			Image:    "https://images.unsplash.com/photo-1515562141207-7a88fb7ce338?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalYellowGold,
			Specs:    models.FourCs{Carat: 3.5, Cut: "Excellent", Color: "E", Clarity: "VVS1"},
		},
		{
			ID:       "6",
			Name:     "Vintage Halo",
			Category: models.CategoryRing,
			PriceUSD: 6800,
			Image:    "https://images.unsplash.com/photo-1626784215021-2e39ccf971cd?auto=format&fit=crop&q=80&w=1000",
			Metal:    models.MetalPlatinum,
			Specs:    models.FourCs{Carat: 0.9, Cut: "Very Good", Color: "H", Clarity: "VS1"},
		},
	}
}
