package channel

import (
	"context"
	"encoding/json"
)

// Handler receives the raw payload of one inbound event. Handlers are
// invoked in network receipt order from a single dispatch goroutine and
// never run concurrently with each other.
type Handler func(data json.RawMessage)

// Channel is one persistent, bidirectional, event-typed connection to
// the transcription backend, parameterized by room at connect time.
type Channel interface {
	Connect(ctx context.Context, roomID string) error
	// Send is fire-and-forget; delivery is not acknowledged at this
	// layer and errors are only useful for logging.
	Send(event string, payload any) error
	// On registers the handler for an event name. Registration must
	// happen before Connect.
	On(event string, handler Handler)
	// Disconnect tears the connection down; idempotent.
	Disconnect() error
}
