package control

import "context"

// Client issues the session control requests to the backend. Failures
// are non-fatal to the surrounding start/stop sequence: callers log and
// continue.
type Client interface {
	StartTranscription(ctx context.Context, room string) error
	StopTranscription(ctx context.Context, room string) error
}
