package catalog

import (
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if c.Len() != 8 {
		t.Errorf("Default() Len = %d, want 8", c.Len())
	}

	t.Run("lookupKnownItem", func(t *testing.T) {
		item, ok := c.ItemByID("koshary")
		if !ok {
			t.Fatal("ItemByID(koshary) not found")
		}
		if item.Name != "Koshary" {
			t.Errorf("ItemByID(koshary) Name = %q, want %q", item.Name, "Koshary")
		}
		if item.Category != CategoryMains {
			t.Errorf("ItemByID(koshary) Category = %q, want %q", item.Category, CategoryMains)
		}
		if !item.Customizable {
			t.Error("ItemByID(koshary) should be customizable")
		}
		if len(item.AddOns) != 3 {
			t.Errorf("ItemByID(koshary) AddOns = %d, want 3", len(item.AddOns))
		}
	})

	t.Run("lookupUnknownItem", func(t *testing.T) {
		_, ok := c.ItemByID("shawarma")
		if ok {
			t.Error("ItemByID(shawarma) should not be found")
		}
	})

	t.Run("nonCustomizableItemHasNoAddOns", func(t *testing.T) {
		for _, item := range c.Items() {
			if !item.Customizable && len(item.AddOns) > 0 {
				t.Errorf("item %q is not customizable but carries %d add-ons", item.ID, len(item.AddOns))
			}
		}
	})

	t.Run("everyCategoryHasValidValue", func(t *testing.T) {
		for _, item := range c.Items() {
			if !item.Category.Valid() {
				t.Errorf("item %q has invalid category %q", item.ID, item.Category)
			}
		}
	})
}

func TestItemsByCategory(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		name     string
		category Category
		want     int
	}{
		{name: "mains", category: CategoryMains, want: 2},
		{name: "sides", category: CategorySides, want: 3},
		{name: "drinks", category: CategoryDrinks, want: 2},
		{name: "desserts", category: CategoryDesserts, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := c.ItemsByCategory(tt.category)
			if len(items) != tt.want {
				t.Errorf("ItemsByCategory(%s) = %d items, want %d", tt.category, len(items), tt.want)
			}
			for _, item := range items {
				if item.Category != tt.category {
					t.Errorf("ItemsByCategory(%s) returned item %q with category %q", tt.category, item.ID, item.Category)
				}
			}
		})
	}
}

func TestItemsReturnsCopy(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	items := c.Items()
	items[0].Name = "mutated"

	again := c.Items()
	if again[0].Name == "mutated" {
		t.Error("Items() should return a copy, not the backing slice")
	}
}

func TestNewNormalizesNonCustomizableAddOns(t *testing.T) {
	c, err := New([]MenuItem{
		{
			ID:       "soda",
			Name:     "Soda",
			Price:    60,
			Category: CategoryDrinks,
			AddOns:   []AddOn{{Name: "Ice", Price: 0}},
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	item, _ := c.ItemByID("soda")
	if len(item.AddOns) != 0 {
		t.Errorf("New() kept add-ons on non-customizable item, got %d", len(item.AddOns))
	}
}
