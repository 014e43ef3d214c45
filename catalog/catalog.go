// Package catalog holds the static menu every other component consults:
// the browsing views read it to list items, and the cart builds line
// items from it. It is read-only after construction.
package catalog

// Catalog is an immutable table of menu items. Lookup is a linear scan;
// the menu is small and fixed for the life of the process.
type Catalog struct {
	items []MenuItem
}

// New validates and normalizes the given items and builds a catalog
// from them.
func New(items []MenuItem) (*Catalog, error) {
	if errs := ValidateItems(items); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	normalized := make([]MenuItem, len(items))
	for i, item := range items {
		normalized[i] = normalizeItem(item)
	}

	return &Catalog{items: normalized}, nil
}

// Items returns a copy of the full menu in seed order.
func (c *Catalog) Items() []MenuItem {
	out := make([]MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// ItemByID returns the item with the given id, or false when the id is
// unknown. Absence is a signal, not an error; callers decide whether to
// redirect or no-op.
func (c *Catalog) ItemByID(id string) (MenuItem, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return MenuItem{}, false
}

// ItemsByCategory returns the items in the given category, in seed order.
func (c *Catalog) ItemsByCategory(category Category) []MenuItem {
	var out []MenuItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

func (c *Catalog) Len() int {
	return len(c.items)
}
