package ports

import (
	"context"

	"github.com/dictgate/dictgate/core"
)

// EventPublisher publishes gate transitions for external observers.
// Publishing is best-effort: the gate logs failures and carries on.
type EventPublisher interface {
	PublishGateEvent(ctx context.Context, event core.GateEvent) error
}
