package storefront

import (
	"context"
	"errors"

	"github.com/nilekitchen/storefront/cart"
	"github.com/nilekitchen/storefront/orders"
)

const (
	defaultPickupLocation     = "123 Kitchen Street, Cairo, Egypt"
	defaultPickupInstructions = "Please ask for your order at the counter"
)

// ErrEmptyCart is returned when checking out with no cart lines.
var ErrEmptyCart = errors.New("storefront: cart is empty")

// CheckoutInfo carries the fulfillment details collected at checkout.
// Pickup may be left nil for pickup orders, in which case the default
// pickup location is used.
type CheckoutInfo struct {
	Type     orders.OrderType
	Customer orders.CustomerInfo
	Pickup   *orders.PickupInfo
}

// Checkout snapshots the cart into an order draft, places the order,
// clears the cart and starts the status simulation for the new order.
// It returns the new order id.
func (a *App) Checkout(ctx context.Context, info CheckoutInfo) (string, error) {
	lines := a.Cart.Items()
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	draft := orders.Draft{
		Items:        orderItems(lines),
		TotalAmount:  a.Cart.TotalAmount(),
		Type:         info.Type,
		CustomerInfo: info.Customer,
		PickupInfo:   info.Pickup,
	}
	if draft.Type == orders.TypePickup && draft.PickupInfo == nil {
		draft.PickupInfo = &orders.PickupInfo{
			Location:     defaultPickupLocation,
			Instructions: defaultPickupInstructions,
		}
	}

	id := a.Orders.PlaceOrder(ctx, draft)
	a.Cart.Clear(ctx)

	if err := a.Simulator.Start(ctx, id); err != nil {
		a.logger.Error("cannot start order simulation", "order_id", id, "error", err)
	}
	return id, nil
}

// orderItems freezes cart lines into order items. Nothing is shared by
// reference with the cart afterwards.
func orderItems(lines []cart.LineItem) []orders.OrderItem {
	out := make([]orders.OrderItem, len(lines))
	for i, line := range lines {
		item := orders.OrderItem{
			ID:         line.ID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Image:      line.Image,
			Quantity:   line.Quantity,
			TotalPrice: line.TotalPrice,
		}
		if line.Customization != nil {
			c := &orders.Customization{
				SpecialInstructions: line.Customization.SpecialInstructions,
			}
			for _, ao := range line.Customization.AddOns {
				c.AddOns = append(c.AddOns, orders.AddOn{Name: ao.Name, Price: ao.Price})
			}
			item.Customization = c
		}
		out[i] = item
	}
	return out
}
