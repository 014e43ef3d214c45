package storefront

import (
	"context"

	"github.com/nilekitchen/storefront/cart"
	"github.com/nilekitchen/storefront/catalog"
	"github.com/nilekitchen/storefront/orders"
)

// seedDemo places a small set of demo orders so a fresh install has
// something to show. Runs in the background; cancellation between
// orders stops the remainder.
func (a *App) seedDemo(ctx context.Context) {
	a.logger.Info("Starting demo order seeding in background")

	for _, draft := range a.demoDrafts() {
		select {
		case <-ctx.Done():
			a.logger.Debug("demo seeding cancelled")
			return
		default:
		}

		id := a.Orders.PlaceOrder(ctx, draft)
		a.logger.Info("Created demo order", "order_id", id, "type", string(draft.Type))
	}

	a.logger.Info("Demo order seeding completed")
}

// demoDrafts builds one delivery and one pickup order from catalog
// items, priced through the same line-item path real carts use.
func (a *App) demoDrafts() []orders.Draft {
	var drafts []orders.Draft

	delivery := a.demoLines(
		demoChoice{itemID: "koshary", quantity: 2, addOns: []string{"Extra Sauce"}},
		demoChoice{itemID: "fool", quantity: 1, instructions: "Extra cumin please"},
	)
	if len(delivery) > 0 {
		drafts = append(drafts, orders.Draft{
			Items:       orderItems(delivery),
			TotalAmount: linesTotal(delivery),
			Type:        orders.TypeDelivery,
			CustomerInfo: orders.CustomerInfo{
				Name:  "Demo Customer",
				Phone: "+20 100 000 0000",
				Address: &orders.Address{
					Street:  "14 Nile Corniche",
					City:    "Cairo",
					ZipCode: "11511",
				},
			},
		})
	}

	pickup := a.demoLines(
		demoChoice{itemID: "orange-juice", quantity: 2},
		demoChoice{itemID: "rice-pudding", quantity: 1},
	)
	if len(pickup) > 0 {
		drafts = append(drafts, orders.Draft{
			Items:       orderItems(pickup),
			TotalAmount: linesTotal(pickup),
			Type:        orders.TypePickup,
			CustomerInfo: orders.CustomerInfo{
				Name:  "Demo Walk-in",
				Phone: "+20 100 000 0001",
			},
			PickupInfo: &orders.PickupInfo{
				Location:     defaultPickupLocation,
				Instructions: defaultPickupInstructions,
			},
		})
	}

	return drafts
}

type demoChoice struct {
	itemID       string
	quantity     int
	instructions string
	addOns       []string
}

func (a *App) demoLines(choices ...demoChoice) []cart.LineItem {
	var lines []cart.LineItem
	for _, choice := range choices {
		item, ok := a.Catalog.ItemByID(choice.itemID)
		if !ok {
			a.logger.Debug("demo item not in catalog, skipping", "item_id", choice.itemID)
			continue
		}

		var chosen []catalog.AddOn
		for _, name := range choice.addOns {
			for _, ao := range item.AddOns {
				if ao.Name == name {
					chosen = append(chosen, ao)
				}
			}
		}

		lines = append(lines, cart.NewLineItem(item, choice.quantity, chosen, choice.instructions))
	}
	return lines
}

func linesTotal(lines []cart.LineItem) float64 {
	var total float64
	for _, line := range lines {
		total += line.TotalPrice
	}
	return total
}
