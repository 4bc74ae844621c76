package catalog

import "atelier-boutique/internal/domain"

// SeedProducts returns the static sample catalog a fresh session starts
// from. Prices are whole Chilean pesos.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Suéter Cashmere",
			Category:    "Sweaters",
			Price:       89900,
			Description: "Suéter de cashmere premium en tono beige. Perfecta para cualquier ocasión, combina elegancia y comodidad.",
			Image:       "/assets/product-1.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 3},
				{Size: "M", Stock: 5},
				{Size: "L", Stock: 2},
			},
		},
		{
			ID:          "2",
			Name:        "Vestido Seda Olive",
			Category:    "Vestidos",
			Price:       129900,
			Description: "Vestido fluido de seda en tono olive green. Diseño atemporal con corte favorecedor.",
			Image:       "/assets/product-2.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 4},
				{Size: "M", Stock: 4},
				{Size: "L", Stock: 4},
			},
		},
		{
			ID:          "3",
			Name:        "Abrigo Lana Copper",
			Category:    "Abrigos",
			Price:       189900,
			Description: "Abrigo de lana en tono copper. Confección italiana, corte estructurado y elegante.",
			Image:       "/assets/product-3.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 2},
				{Size: "M", Stock: 3},
				{Size: "L", Stock: 1},
			},
		},
		{
			ID:          "4",
			Name:        "Blazer Lino Cream",
			Category:    "Blazers",
			Price:       119900,
			Description: "Blazer de lino en tono cream. Perfecto para look casual-chic, corte relajado.",
			Image:       "/assets/product-4.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 6},
				{Size: "M", Stock: 2},
				{Size: "L", Stock: 3},
			},
		},
		{
			ID:          "5",
			Name:        "Blusa Seda Sage",
			Category:    "Blusas",
			Price:       79900,
			Description: "Blusa de seda en tono sage green. Diseño versátil y sofisticado.",
			Image:       "/assets/product-5.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 0},
				{Size: "M", Stock: 0},
				{Size: "L", Stock: 0},
			},
		},
		{
			ID:          "6",
			Name:        "Pantalón Wide Leg Taupe",
			Category:    "Pantalones",
			Price:       94900,
			Description: "Pantalón wide leg en tono taupe. Tela fluida, tiro alto, silueta favorecedora.",
			Image:       "/assets/product-6.jpg",
			Sizes: []domain.SizeStock{
				{Size: "S", Stock: 5},
				{Size: "M", Stock: 0},
				{Size: "L", Stock: 10},
			},
		},
	}
}
