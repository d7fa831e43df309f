package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lipika1080/np03frontend/internal/capture"
	"github.com/lipika1080/np03frontend/internal/channel"
	"github.com/lipika1080/np03frontend/internal/control"
)

const controlRequestTimeout = 10 * time.Second

// ErrSessionActive is returned by Start when a session is not Idle; at
// most one session is active per client.
var ErrSessionActive = errors.New("a transcription session is already active")

type State int

const (
	StateIdle State = iota
	StateStarting
	StateActive
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateActive:
		return "active"
	case StateStopping:
		return "stopping"
	default:
		return "idle"
	}
}

// Snapshot is the read surface consumed by the presentation layer.
type Snapshot struct {
	Recording     bool
	Segments      []Segment
	Progress      float64
	ChapterTitles string
}

// Controller sequences a session from Idle to Active and back,
// synchronizing the control requests, microphone capture and the
// streaming channel. The room identifier is generated once per client
// and stays stable for its lifetime.
type Controller struct {
	roomID     string
	control    control.Client
	channel    channel.Channel
	capture    capture.Capture
	aggregator *Aggregator

	mu        sync.Mutex
	state     State
	connected bool
}

func NewController(ctrl control.Client, ch channel.Channel, newCapture capture.Factory, agg *Aggregator) *Controller {
	c := &Controller{
		roomID:     uuid.NewString(),
		control:    ctrl,
		channel:    ch,
		capture:    newCapture(),
		aggregator: agg,
	}
	// Inbound handlers must be registered before the channel connects.
	agg.Bind(ch)
	return c
}

func (c *Controller) RoomID() string {
	return c.roomID
}

func (c *Controller) Aggregator() *Aggregator {
	return c.aggregator
}

// Start moves the session from Idle to Active. Only a microphone
// acquisition failure is fatal; a failed control request or channel
// connect is logged and capture proceeds anyway, since losing capture
// is worse than a missed backend notification.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle {
		c.mu.Unlock()
		return ErrSessionActive
	}
	// Clear previous results before any network activity so a late
	// event from the prior session cannot survive into this one.
	c.aggregator.Reset()
	c.state = StateStarting
	c.mu.Unlock()
	slog.Info("session starting", "room_id", c.roomID)

	go func() {
		reqCtx, cancel := context.WithTimeout(context.Background(), controlRequestTimeout)
		defer cancel()
		if err := c.control.StartTranscription(reqCtx, c.roomID); err != nil {
			slog.Warn("start control request failed; capture continues", "error", err, "room_id", c.roomID)
		}
	}()

	c.ensureConnected(ctx)

	if err := c.capture.Begin(c.sendChunk); err != nil {
		c.mu.Lock()
		c.state = StateIdle
		c.mu.Unlock()
		slog.Error("failed to begin audio capture", "error", err, "room_id", c.roomID)
		return fmt.Errorf("begin audio capture: %w", err)
	}

	c.mu.Lock()
	c.state = StateActive
	c.mu.Unlock()
	slog.Info("session active", "room_id", c.roomID)
	return nil
}

// Stop moves an Active session back to Idle. Calling Stop in any other
// state is a guarded no-op: no state change, no control request. The
// streaming channel stays open so trailing server events (late finals,
// chapter titles) are still aggregated after stop.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.state != StateActive {
		c.mu.Unlock()
		slog.Debug("stop ignored; no active session", "state", c.state.String())
		return
	}
	c.state = StateStopping
	c.mu.Unlock()
	slog.Info("session stopping", "room_id", c.roomID)

	go func() {
		reqCtx, cancel := context.WithTimeout(context.Background(), controlRequestTimeout)
		defer cancel()
		if err := c.control.StopTranscription(reqCtx, c.roomID); err != nil {
			slog.Warn("stop control request failed", "error", err, "room_id", c.roomID)
		}
	}()

	c.capture.End(func() {
		slog.Info("audio capture released", "room_id", c.roomID)
	})

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	slog.Info("session stopped", "room_id", c.roomID)
}

// Close disposes the client context entirely; only now is the
// streaming channel torn down.
func (c *Controller) Close() error {
	return c.channel.Disconnect()
}

func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateActive
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	segments, progress, titles := c.aggregator.Snapshot()
	return Snapshot{
		Recording:     c.Recording(),
		Segments:      segments,
		Progress:      progress,
		ChapterTitles: titles,
	}
}

func (c *Controller) ensureConnected(ctx context.Context) {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if connected {
		return
	}
	if err := c.channel.Connect(ctx, c.roomID); err != nil {
		slog.Warn("streaming channel connect failed; capture continues", "error", err, "room_id", c.roomID)
		return
	}
	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
}

func (c *Controller) sendChunk(chunk []byte) {
	err := c.channel.Send(channel.EventAudioData, channel.AudioDataPayload{
		Room:  c.roomID,
		Audio: chunk,
	})
	if err != nil {
		slog.Warn("audio chunk send failed", "error", err, "room_id", c.roomID, "chunk_bytes", len(chunk))
	}
}
