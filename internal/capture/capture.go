package capture

import "errors"

var (
	// ErrPermissionDenied means the microphone could not be acquired.
	// It is the only fatal failure of a session start.
	ErrPermissionDenied = errors.New("microphone permission denied or device unavailable")

	// ErrAlreadyCapturing is returned by Begin while a prior Begin has
	// not been released; the device is exclusively owned.
	ErrAlreadyCapturing = errors.New("capture already in progress")
)

// Capture produces a time-sliced sequence of encoded audio chunks from
// the microphone. Chunks are delivered in capture order, one per
// configured interval.
type Capture interface {
	// Begin acquires the microphone and starts invoking onChunk with
	// encoded single-channel audio once per interval.
	Begin(onChunk func(chunk []byte)) error
	// End stops capture and invokes onComplete once teardown finishes.
	// Calling End when not capturing is a no-op.
	End(onComplete func())
}

type Factory func() Capture
