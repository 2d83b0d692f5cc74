// Package subscriber receives preemption notifications from a Pub/Sub
// subscription and hands each one to a message handler.
package subscriber

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"nightking/internal/intake"
	"nightking/pkg/logging"
)

const subsystem = "Subscriber"

// DefaultSubscription is the subscription name used when none is configured.
const DefaultSubscription = "night-king-preempt"

// MessageHandler consumes one event. It is called concurrently and must
// acknowledge the event itself.
type MessageHandler interface {
	Handle(ctx context.Context, ev intake.Event)
}

// Settings tune how many messages are processed concurrently.
type Settings struct {
	// MaxOutstandingMessages caps unacknowledged messages held by the
	// client. Zero keeps the Pub/Sub default.
	MaxOutstandingMessages int

	// NumGoroutines is the number of streaming pulls. Zero keeps the
	// Pub/Sub default.
	NumGoroutines int

	// ShutdownGrace is how long handlers keep running once Listen's
	// context is cancelled. Zero interrupts them immediately.
	ShutdownGrace time.Duration
}

// Listener pulls messages from one subscription.
type Listener struct {
	client *pubsub.Client
	sub    *pubsub.Subscription
	grace  time.Duration
}

// NewListener connects to subscription in project.
func NewListener(ctx context.Context, project, subscription string, settings Settings, opts ...option.ClientOption) (*Listener, error) {
	if project == "" {
		return nil, errors.New("project is required")
	}
	if subscription == "" {
		subscription = DefaultSubscription
	}

	client, err := pubsub.NewClient(ctx, project, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}

	sub := client.Subscription(subscription)
	if settings.MaxOutstandingMessages > 0 {
		sub.ReceiveSettings.MaxOutstandingMessages = settings.MaxOutstandingMessages
	}
	if settings.NumGoroutines > 0 {
		sub.ReceiveSettings.NumGoroutines = settings.NumGoroutines
	}

	return &Listener{client: client, sub: sub, grace: settings.ShutdownGrace}, nil
}

// Path returns the fully qualified subscription name.
func (l *Listener) Path() string {
	return l.sub.String()
}

// Check verifies that the subscription exists.
func (l *Listener) Check(ctx context.Context) error {
	ok, err := l.sub.Exists(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up subscription %s: %w", l.Path(), err)
	}
	if !ok {
		return fmt.Errorf("subscription %s does not exist", l.Path())
	}
	return nil
}

// Listen blocks, dispatching every received message to h, until ctx is
// cancelled or the subscription fails. Cancellation is not an error.
//
// Handlers do not see ctx. They run on a context that is cancelled only once
// the shutdown grace period has passed, and Listen returns after the last
// of them does.
func (l *Listener) Listen(ctx context.Context, h MessageHandler) error {
	logging.Info(subsystem, "Listening for messages on subscription: %s", l.Path())

	handlerCtx, cancelHandlers := context.WithCancel(context.WithoutCancel(ctx))
	defer cancelHandlers()
	go l.interruptAfterGrace(ctx, handlerCtx, cancelHandlers)

	err := l.sub.Receive(ctx, func(_ context.Context, m *pubsub.Message) {
		h.Handle(handlerCtx, &message{msg: m})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("receive on %s failed: %w", l.Path(), err)
	}

	logging.Info(subsystem, "Stopped listening on subscription: %s", l.Path())
	return nil
}

// interruptAfterGrace cancels the handlers once ctx has been done for the
// grace period. It returns early when Listen has already returned.
func (l *Listener) interruptAfterGrace(ctx, handlerCtx context.Context, cancel context.CancelFunc) {
	select {
	case <-ctx.Done():
	case <-handlerCtx.Done():
		return
	}

	logging.Info(subsystem, "Waiting up to %s for in-flight messages", l.grace)
	timer := time.NewTimer(l.grace)
	defer timer.Stop()

	select {
	case <-timer.C:
		logging.Warn(subsystem, "Shutdown grace period of %s expired, interrupting in-flight messages", l.grace)
		cancel()
	case <-handlerCtx.Done():
	}
}

// Close releases the underlying client.
func (l *Listener) Close() error {
	return l.client.Close()
}

// message adapts a Pub/Sub message to intake.Event.
type message struct {
	msg *pubsub.Message
}

func (m *message) ID() string   { return m.msg.ID }
func (m *message) Data() []byte { return m.msg.Data }
func (m *message) Ack()         { m.msg.Ack() }
