// Package cart maintains the working set of not-yet-ordered line items
// and their derived totals. Two lines are the same line only when both
// the catalog id and the customization record match; every mutation
// re-derives the line total from the canonical pricing formula:
//
//	total = (unit price + sum of selected add-on prices) × quantity
package cart

import (
	"github.com/nilekitchen/storefront/catalog"
)

// AddOn is a selected extra on a cart line.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Customization is the user-chosen add-ons and free-text instructions
// attached to a line item. It is part of the line's identity.
type Customization struct {
	AddOns              []AddOn `json:"add_ons,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// Equal reports structural equality: the add-on list is compared as a
// multiset, so ordering does not matter, and a nil record equals an
// empty one.
func (c *Customization) Equal(other *Customization) bool {
	if c.instructions() != other.instructions() {
		return false
	}

	mine := c.addOns()
	theirs := other.addOns()
	if len(mine) != len(theirs) {
		return false
	}

	counts := make(map[AddOn]int, len(mine))
	for _, a := range mine {
		counts[a]++
	}
	for _, a := range theirs {
		counts[a]--
		if counts[a] < 0 {
			return false
		}
	}
	return true
}

// AddOnTotal sums the selected add-on prices. Nil-safe.
func (c *Customization) AddOnTotal() float64 {
	total := 0.0
	for _, a := range c.addOns() {
		total += a.Price
	}
	return total
}

func (c *Customization) clone() *Customization {
	if c == nil {
		return nil
	}
	out := &Customization{SpecialInstructions: c.SpecialInstructions}
	if len(c.AddOns) > 0 {
		out.AddOns = make([]AddOn, len(c.AddOns))
		copy(out.AddOns, c.AddOns)
	}
	return out
}

func (c *Customization) addOns() []AddOn {
	if c == nil {
		return nil
	}
	return c.AddOns
}

func (c *Customization) instructions() string {
	if c == nil {
		return ""
	}
	return c.SpecialInstructions
}

// LineItem is one distinct purchasable entry in the cart.
type LineItem struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	UnitPrice     float64        `json:"unit_price"`
	Image         string         `json:"image"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"total_price"`
	Customization *Customization `json:"customization,omitempty"`
}

// NewLineItem builds a line from a catalog item and the user's choices.
// Add-ons and instructions are ignored when the item is not
// customizable.
func NewLineItem(item catalog.MenuItem, quantity int, addOns []catalog.AddOn, instructions string) LineItem {
	li := LineItem{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.Price,
		Image:     item.Image,
		Quantity:  quantity,
	}

	if item.Customizable {
		var selected []AddOn
		for _, a := range addOns {
			selected = append(selected, AddOn{Name: a.Name, Price: a.Price})
		}
		if len(selected) > 0 || instructions != "" {
			li.Customization = &Customization{
				AddOns:              selected,
				SpecialInstructions: instructions,
			}
		}
	}

	li.Recalculate()
	return li
}

// SameLine reports whether other belongs to the same cart line: same
// catalog id and structurally equal customization.
func (li *LineItem) SameLine(other *LineItem) bool {
	return li.ID == other.ID && li.Customization.Equal(other.Customization)
}

// Recalculate re-derives TotalPrice from the canonical pricing formula.
func (li *LineItem) Recalculate() {
	li.TotalPrice = (li.UnitPrice + li.Customization.AddOnTotal()) * float64(li.Quantity)
}

func (li LineItem) clone() LineItem {
	out := li
	out.Customization = li.Customization.clone()
	return out
}
