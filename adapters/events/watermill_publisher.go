package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/dictgate/dictgate/core"
	"github.com/dictgate/dictgate/ports"
)

// GateTopic is the topic gate transitions are published to.
const GateTopic = "dictgate.gate"

// WatermillPublisher implements the EventPublisher interface on top of
// any watermill publisher (Redis stream in production, gochannel in
// single-process deployments and tests).
type WatermillPublisher struct {
	publisher message.Publisher
	topic     string
}

// NewWatermillPublisher creates a gate event publisher.
func NewWatermillPublisher(publisher message.Publisher) ports.EventPublisher {
	return &WatermillPublisher{
		publisher: publisher,
		topic:     GateTopic,
	}
}

// PublishGateEvent publishes a single gate transition.
func (p *WatermillPublisher) PublishGateEvent(ctx context.Context, event core.GateEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(uuid.New().String(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
