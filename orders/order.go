// Package orders records placed orders and walks them through their
// fulfillment status machine. Orders are immutable after placement
// except for status, estimated time and the completed flag, which only
// the store's status-transition operation touches.
package orders

import (
	"time"
)

// OrderType selects which status machine and customer-info shape apply.
type OrderType string

const (
	TypeDelivery OrderType = "delivery"
	TypePickup   OrderType = "pickup"
)

// Address is required for delivery orders and absent otherwise.
type Address struct {
	Street    string `json:"street"`
	Apartment string `json:"apartment,omitempty"`
	City      string `json:"city"`
	ZipCode   string `json:"zip_code"`
}

type CustomerInfo struct {
	Name    string   `json:"name"`
	Phone   string   `json:"phone"`
	Address *Address `json:"address,omitempty"`
}

// PickupInfo is present on pickup orders only.
type PickupInfo struct {
	Location     string `json:"location"`
	Instructions string `json:"instructions"`
}

// AddOn mirrors a selected cart add-on at placement time.
type AddOn struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Customization is the snapshot of a line's chosen extras.
type Customization struct {
	AddOns              []AddOn `json:"add_ons,omitempty"`
	SpecialInstructions string  `json:"special_instructions,omitempty"`
}

// OrderItem is a copy of a cart line frozen at placement time. Nothing
// is shared by reference with the cart store.
type OrderItem struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	UnitPrice     float64        `json:"unit_price"`
	Image         string         `json:"image"`
	Quantity      int            `json:"quantity"`
	TotalPrice    float64        `json:"total_price"`
	Customization *Customization `json:"customization,omitempty"`
}

func (oi OrderItem) clone() OrderItem {
	out := oi
	if oi.Customization != nil {
		c := &Customization{SpecialInstructions: oi.Customization.SpecialInstructions}
		if len(oi.Customization.AddOns) > 0 {
			c.AddOns = make([]AddOn, len(oi.Customization.AddOns))
			copy(c.AddOns, oi.Customization.AddOns)
		}
		out.Customization = c
	}
	return out
}

// Order is a placed order. The id is a 6-digit numeric string; no
// uniqueness check is performed against existing ids.
type Order struct {
	ID            string       `json:"id"`
	Items         []OrderItem  `json:"items"`
	TotalAmount   float64      `json:"total_amount"`
	Type          OrderType    `json:"type"`
	Status        Status       `json:"status"`
	EstimatedTime string       `json:"estimated_time"`
	PlacedAt      time.Time    `json:"placed_at"`
	Completed     bool         `json:"completed"`
	CustomerInfo  CustomerInfo `json:"customer_info"`
	PickupInfo    *PickupInfo  `json:"pickup_info,omitempty"`
}

func (o Order) clone() Order {
	out := o
	if len(o.Items) > 0 {
		out.Items = make([]OrderItem, len(o.Items))
		for i, item := range o.Items {
			out.Items[i] = item.clone()
		}
	}
	if o.CustomerInfo.Address != nil {
		addr := *o.CustomerInfo.Address
		out.CustomerInfo.Address = &addr
	}
	if o.PickupInfo != nil {
		info := *o.PickupInfo
		out.PickupInfo = &info
	}
	return out
}

// Draft is what checkout hands to the store: an order lacking id,
// status, timestamp and completion state.
type Draft struct {
	Items         []OrderItem
	TotalAmount   float64
	Type          OrderType
	EstimatedTime string
	CustomerInfo  CustomerInfo
	PickupInfo    *PickupInfo
}

// normalize makes the draft satisfy the fulfillment invariant instead of
// rejecting it: pickup orders carry no address, delivery orders carry no
// pickup info, and an unset type defaults to delivery.
func (d Draft) normalize() Draft {
	if d.Type != TypePickup {
		d.Type = TypeDelivery
	}
	switch d.Type {
	case TypePickup:
		d.CustomerInfo.Address = nil
	case TypeDelivery:
		d.PickupInfo = nil
	}
	return d
}
