package cart

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/nilekitchen/storefront/storage"
)

func kosharyLine(quantity int) LineItem {
	li := LineItem{
		ID:        "koshary",
		Name:      "Koshary",
		UnitPrice: 12.99,
		Quantity:  quantity,
		Customization: &Customization{
			AddOns: []AddOn{{Name: "Extra Sauce", Price: 1.00}},
		},
	}
	li.Recalculate()
	return li
}

func hydratedStore(t *testing.T) (*Store, *storage.MemKV) {
	t.Helper()
	kv := storage.NewMemKV()
	s := NewStore(kv, nil)
	if err := s.Hydrate(context.Background()); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	return s, kv
}

func TestStoreAddItemMergesSameLine(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kosharyLine(1))
	s.AddItem(ctx, kosharyLine(1))

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("Items() = %d lines, want 1 merged line", len(items))
	}
	if items[0].Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", items[0].Quantity)
	}
	if !almostEqual(items[0].TotalPrice, 27.98) {
		t.Errorf("TotalPrice = %v, want 27.98", items[0].TotalPrice)
	}
	if !almostEqual(s.TotalAmount(), 27.98) {
		t.Errorf("TotalAmount() = %v, want 27.98", s.TotalAmount())
	}
	if s.TotalItems() != 2 {
		t.Errorf("TotalItems() = %d, want 2", s.TotalItems())
	}
}

func TestStoreAddItemKeepsDistinctCustomizations(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kosharyLine(1))

	plain := LineItem{ID: "koshary", Name: "Koshary", UnitPrice: 12.99, Quantity: 1}
	plain.Recalculate()
	s.AddItem(ctx, plain)

	if len(s.Items()) != 2 {
		t.Errorf("Items() = %d lines, want 2 distinct lines", len(s.Items()))
	}
}

func TestStoreAddItemQuantitySums(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	quantities := []int{1, 2, 3}
	for _, q := range quantities {
		s.AddItem(ctx, kosharyLine(q))
	}

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("Items() = %d lines, want 1", len(items))
	}
	if items[0].Quantity != 6 {
		t.Errorf("Quantity = %d, want 6", items[0].Quantity)
	}
	want := float64(6) * (12.99 + 1.00)
	if !almostEqual(items[0].TotalPrice, want) {
		t.Errorf("TotalPrice = %v, want %v", items[0].TotalPrice, want)
	}
}

func TestStoreUpdateQuantity(t *testing.T) {
	tests := []struct {
		name      string
		quantity  int
		wantLines int
		wantQty   int
	}{
		{
			name:      "positiveQuantityUpdates",
			quantity:  5,
			wantLines: 1,
			wantQty:   5,
		},
		{
			name:      "zeroQuantityRemoves",
			quantity:  0,
			wantLines: 0,
		},
		{
			name:      "negativeQuantityRemoves",
			quantity:  -1,
			wantLines: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := hydratedStore(t)
			ctx := context.Background()
			line := kosharyLine(2)
			s.AddItem(ctx, line)

			s.UpdateQuantity(ctx, line.ID, line.Customization, tt.quantity)

			items := s.Items()
			if len(items) != tt.wantLines {
				t.Fatalf("Items() = %d lines, want %d", len(items), tt.wantLines)
			}
			if tt.wantLines == 0 {
				return
			}
			if items[0].Quantity != tt.wantQty {
				t.Errorf("Quantity = %d, want %d", items[0].Quantity, tt.wantQty)
			}
			want := float64(tt.wantQty) * (12.99 + 1.00)
			if !almostEqual(items[0].TotalPrice, want) {
				t.Errorf("TotalPrice = %v, want %v", items[0].TotalPrice, want)
			}
		})
	}
}

func TestStoreUpdateQuantityOnlyTouchesMatchingCustomization(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	customized := kosharyLine(1)
	plain := LineItem{ID: "koshary", UnitPrice: 12.99, Quantity: 1}
	plain.Recalculate()
	s.AddItem(ctx, customized)
	s.AddItem(ctx, plain)

	s.UpdateQuantity(ctx, "koshary", nil, 4)

	for _, item := range s.Items() {
		if item.Customization == nil && item.Quantity != 4 {
			t.Errorf("plain line Quantity = %d, want 4", item.Quantity)
		}
		if item.Customization != nil && item.Quantity != 1 {
			t.Errorf("customized line Quantity = %d, want untouched 1", item.Quantity)
		}
	}
}

func TestStoreRemoveItem(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	line := kosharyLine(1)
	s.AddItem(ctx, line)
	s.RemoveItem(ctx, line.ID, line.Customization)

	if len(s.Items()) != 0 {
		t.Errorf("Items() = %d lines after removal, want 0", len(s.Items()))
	}

	// Removing again is a no-op.
	s.RemoveItem(ctx, line.ID, line.Customization)
}

func TestStoreClear(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kosharyLine(2))
	s.Clear(ctx)

	if got := s.TotalAmount(); got != 0 {
		t.Errorf("TotalAmount() after Clear = %v, want 0", got)
	}
	if got := s.TotalItems(); got != 0 {
		t.Errorf("TotalItems() after Clear = %v, want 0", got)
	}
}

func TestStoreHydrateRoundTrip(t *testing.T) {
	kv := storage.NewMemKV()
	ctx := context.Background()

	first := NewStore(kv, nil)
	if err := first.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	first.AddItem(ctx, kosharyLine(2))

	second := NewStore(kv, nil)
	if second.Hydrated() {
		t.Error("Hydrated() should be false before Hydrate")
	}
	if err := second.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}
	if !second.Hydrated() {
		t.Error("Hydrated() should be true after Hydrate")
	}

	items := second.Items()
	if len(items) != 1 {
		t.Fatalf("Items() = %d lines after reload, want 1", len(items))
	}
	if !items[0].SameLine(&LineItem{ID: "koshary", Customization: &Customization{AddOns: []AddOn{{Name: "Extra Sauce", Price: 1.00}}}}) {
		t.Error("reloaded line lost its identity")
	}
	if items[0].Quantity != 2 || !almostEqual(items[0].TotalPrice, 27.98) {
		t.Errorf("reloaded line = qty %d total %v, want qty 2 total 27.98", items[0].Quantity, items[0].TotalPrice)
	}
}

func TestStoreHydrateMissingKeyStartsEmpty(t *testing.T) {
	s, _ := hydratedStore(t)

	if len(s.Items()) != 0 {
		t.Errorf("Items() = %d, want empty cart", len(s.Items()))
	}
	if !s.Hydrated() {
		t.Error("Hydrated() should be true after load of absent key")
	}
}

func TestStoreHydrateMalformedDataStartsEmpty(t *testing.T) {
	kv := storage.NewMemKV()
	ctx := context.Background()
	if err := kv.Save(ctx, StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := NewStore(kv, nil)
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() should swallow parse failures, got %v", err)
	}
	if !s.Hydrated() {
		t.Error("Hydrated() should be true even after a load failure")
	}
	if len(s.Items()) != 0 {
		t.Errorf("Items() = %d, want empty cart after load failure", len(s.Items()))
	}
}

func TestStoreHydrateRecalculatesStaleTotals(t *testing.T) {
	kv := storage.NewMemKV()
	ctx := context.Background()

	stale := []LineItem{{ID: "koshary", UnitPrice: 12.99, Quantity: 2, TotalPrice: 1.00}}
	data, err := json.Marshal(stale)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := kv.Save(ctx, StorageKey, data); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s := NewStore(kv, nil)
	if err := s.Hydrate(ctx); err != nil {
		t.Fatalf("Hydrate() error = %v", err)
	}

	items := s.Items()
	if !almostEqual(items[0].TotalPrice, 25.98) {
		t.Errorf("TotalPrice = %v, want recomputed 25.98", items[0].TotalPrice)
	}
}

func TestStorePersistsEmptyArrayOnClear(t *testing.T) {
	s, kv := hydratedStore(t)
	ctx := context.Background()

	s.AddItem(ctx, kosharyLine(1))
	s.Clear(ctx)

	data, err := kv.Load(ctx, StorageKey)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("persisted cart = %s, want []", data)
	}
}

func TestStoreItemsReturnsDeepCopy(t *testing.T) {
	s, _ := hydratedStore(t)
	ctx := context.Background()
	s.AddItem(ctx, kosharyLine(1))

	items := s.Items()
	items[0].Customization.AddOns[0].Price = 999

	again := s.Items()
	if again[0].Customization.AddOns[0].Price == 999 {
		t.Error("Items() should deep-copy customizations")
	}
}
