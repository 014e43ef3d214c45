package event

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrBusClosed is returned when subscribing to a closed bus.
var ErrBusClosed = errors.New("event: bus is closed")

const (
	OrdersTopic        = "storefront.orders"
	OrderCommandsTopic = "storefront.orders.commands"

	EventOrderPlaced    = "order.placed"
	EventOrderCompleted = "order.completed"
	CommandOrderAdvance = "order.advance"
)

// Metadata is the envelope every payload carries, parsed first to pick
// the concrete type.
type Metadata struct {
	EventType string `json:"event_type"`
}

// OrderPlacedEvent announces a newly placed order.
type OrderPlacedEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	OrderID     string    `json:"order_id"`
	OrderType   string    `json:"order_type"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
}

func NewOrderPlaced(orderID, orderType string, totalAmount float64, itemCount int) OrderPlacedEvent {
	return OrderPlacedEvent{
		EventType:   EventOrderPlaced,
		EventID:     uuid.NewString(),
		OccurredAt:  time.Now(),
		OrderID:     orderID,
		OrderType:   orderType,
		TotalAmount: totalAmount,
		ItemCount:   itemCount,
	}
}

// OrderCompletedEvent announces an order reaching its terminal status.
type OrderCompletedEvent struct {
	EventType  string    `json:"event_type"`
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	OrderType  string    `json:"order_type"`
	Status     string    `json:"status"`
}

func NewOrderCompleted(orderID, orderType, status string) OrderCompletedEvent {
	return OrderCompletedEvent{
		EventType:  EventOrderCompleted,
		EventID:    uuid.NewString(),
		OccurredAt: time.Now(),
		OrderID:    orderID,
		OrderType:  orderType,
		Status:     status,
	}
}

// StatusAdvanceCommand asks the order store to advance the given order
// one step along its status machine. The store stays the sole writer;
// issuers never mutate order state themselves.
type StatusAdvanceCommand struct {
	EventType  string    `json:"event_type"`
	CommandID  string    `json:"command_id"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
}

func NewStatusAdvance(orderID string) StatusAdvanceCommand {
	return StatusAdvanceCommand{
		EventType:  CommandOrderAdvance,
		CommandID:  uuid.NewString(),
		OccurredAt: time.Now(),
		OrderID:    orderID,
	}
}
