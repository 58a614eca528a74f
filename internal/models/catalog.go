package models

// Catalog enumerates every attribute value the service accepts for a
// custom pizza. It is built once at startup and never mutated.
type Catalog struct {
	Sizes    []string        `json:"sizes"`
	Crusts   []string        `json:"crusts"`
	Sauces   []string        `json:"sauces"`
	Cheeses  []string        `json:"cheeses"`
	Toppings CatalogToppings `json:"toppings"`
}

// CatalogToppings groups the available toppings by category.
type CatalogToppings struct {
	Meats      []string `json:"meats"`
	Vegetables []string `json:"vegetables"`
}

// NewCatalog returns the static menu catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Sizes:   []string{"small", "medium", "large", "xlarge"},
		Crusts:  []string{"regular", "thick", "thin", "stuffed"},
		Sauces:  []string{"regular", "light", "extra", "alfredo"},
		Cheeses: []string{"regular", "extra", "none", "cheddar"},
		Toppings: CatalogToppings{
			Meats:      []string{"pepperoni", "sausage", "bacon", "ham", "chicken"},
			Vegetables: []string{"olives", "mushrooms", "onions", "peppers", "tomatoes", "pineapple"},
		},
	}
}
