package intake

import (
	"sync"

	"github.com/google/uuid"
)

// Event is one delivered notification together with its acknowledgment
// handle. The transport owns redelivery; the Handler acks every Event exactly
// once.
type Event interface {
	// ID identifies the delivery in logs.
	ID() string

	// Data is the raw payload.
	Data() []byte

	// Ack confirms the event has been handled and suppresses redelivery.
	Ack()
}

// syntheticEvent is an Event that did not come from a transport, such as
// the one-shot resurrect command.
type syntheticEvent struct {
	id   string
	data []byte
	once sync.Once
	ack  func()
}

// NewSyntheticEvent wraps data in an Event with a random ID. onAck, if not
// nil, runs once when the event is acknowledged.
func NewSyntheticEvent(data []byte, onAck func()) Event {
	return &syntheticEvent{
		id:   uuid.NewString(),
		data: data,
		ack:  onAck,
	}
}

func (e *syntheticEvent) ID() string   { return e.id }
func (e *syntheticEvent) Data() []byte { return e.data }

func (e *syntheticEvent) Ack() {
	e.once.Do(func() {
		if e.ack != nil {
			e.ack()
		}
	})
}
