package catalog

// Category groups menu items for browsing.
type Category string

const (
	CategoryMains    Category = "mains"
	CategorySides    Category = "sides"
	CategoryDesserts Category = "desserts"
	CategoryDrinks   Category = "drinks"
)

var Categories = []Category{
	CategoryMains,
	CategorySides,
	CategoryDesserts,
	CategoryDrinks,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// AddOn is an optional extra a customizable item offers.
type AddOn struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// MenuItem is one purchasable catalog entry. The catalog is seeded at
// startup and never mutated afterwards.
type MenuItem struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	Price        float64  `json:"price" yaml:"price"`
	Image        string   `json:"image" yaml:"image"`
	Category     Category `json:"category" yaml:"category"`
	Customizable bool     `json:"customizable" yaml:"customizable"`
	AddOns       []AddOn  `json:"add_ons,omitempty" yaml:"add_ons,omitempty"`
}
