package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/events"

	"github.com/nilekitchen/storefront/event"
)

// AdvanceSubscriber consumes status-advance commands and applies them
// through the store's status-transition operation. The store itself
// never assumes a live simulator exists.
type AdvanceSubscriber struct {
	subscriber events.Subscriber
	store      *Store
	logger     apt.Logger
}

func NewAdvanceSubscriber(sub events.Subscriber, store *Store, logger apt.Logger) *AdvanceSubscriber {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &AdvanceSubscriber{
		subscriber: sub,
		store:      store,
		logger:     logger,
	}
}

func (s *AdvanceSubscriber) Start(ctx context.Context) error {
	s.logger.Info("starting order advance subscriber", "topic", event.OrderCommandsTopic)
	if s.subscriber == nil {
		return fmt.Errorf("advance subscriber not configured")
	}
	return s.subscriber.Subscribe(ctx, event.OrderCommandsTopic, s.handleCommand)
}

func (s *AdvanceSubscriber) Stop(ctx context.Context) error {
	return nil
}

func (s *AdvanceSubscriber) handleCommand(ctx context.Context, msg []byte) error {
	var metadata event.Metadata
	if err := json.Unmarshal(msg, &metadata); err != nil {
		s.logger.Info("invalid order command", "error", err)
		return nil
	}

	switch metadata.EventType {
	case event.CommandOrderAdvance:
		return s.handleAdvance(ctx, msg)
	default:
		s.logger.Debug("unknown order command type", "event_type", metadata.EventType)
		return nil
	}
}

func (s *AdvanceSubscriber) handleAdvance(ctx context.Context, msg []byte) error {
	var cmd event.StatusAdvanceCommand
	if err := json.Unmarshal(msg, &cmd); err != nil {
		s.logger.Info("invalid advance command", "error", err)
		return nil
	}
	if cmd.OrderID == "" {
		s.logger.Debug("advance command missing order_id", "command_id", cmd.CommandID)
		return nil
	}

	order, ok := s.store.OrderByID(cmd.OrderID)
	if !ok {
		s.logger.Debug("advance command for unknown order", "order_id", cmd.OrderID)
		return nil
	}
	if order.Completed {
		return nil
	}

	next, ok := Next(order.Status, order.Type)
	if !ok {
		return nil
	}

	s.store.UpdateOrderStatus(ctx, cmd.OrderID, next)
	s.logger.Debug("advanced order status", "order_id", cmd.OrderID, "status", next)
	return nil
}
