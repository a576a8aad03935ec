package notifications

import (
	"context"

	"github.com/rs/zerolog"
)

// defaultBufferSize bounds the in-flight event queue. Publishing to a full
// queue drops the event with a warning rather than blocking a workflow
// operation on notification delivery.
const defaultBufferSize = 64

// Dispatcher fans domain events out to a consumer on its own goroutine.
type Dispatcher struct {
	events   chan DomainEvent
	consumer Consumer
	logger   zerolog.Logger
}

// Consumer handles a single domain event. Errors are the consumer's own to
// log; the dispatcher never propagates them.
type Consumer interface {
	Handle(ctx context.Context, event DomainEvent)
}

// NewDispatcher creates a new Dispatcher
func NewDispatcher(consumer Consumer, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		events:   make(chan DomainEvent, defaultBufferSize),
		consumer: consumer,
		logger:   logger,
	}
}

// Publish enqueues an event without blocking. A full queue drops the event.
func (d *Dispatcher) Publish(event DomainEvent) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn().
			Str("kind", string(event.Kind)).
			Int64("adoptionId", event.AdoptionID).
			Msg("Notification queue full, dropping event")
	}
}

// Run consumes events until the context is cancelled. Intended to run on a
// dedicated goroutine started at bootstrap.
func (d *Dispatcher) Run(ctx context.Context) {
	d.logger.Info().Msg("Notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.Info().Msg("Notification dispatcher stopped")
			return
		case event := <-d.events:
			d.consumer.Handle(ctx, event)
		}
	}
}
