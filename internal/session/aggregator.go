package session

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/lipika1080/np03frontend/internal/channel"
)

// UnknownSpeaker is the sentinel used when an event carries no speaker.
const UnknownSpeaker = "unknown"

type Finality int

const (
	Partial Finality = iota
	Final
)

func (f Finality) String() string {
	if f == Final {
		return "final"
	}
	return "partial"
}

// Segment is one accepted transcript entry. Segments are append-only:
// a partial is never mutated in place, its final counterpart is
// appended as a new entry.
type Segment struct {
	Text      string
	SpeakerID string
	Finality  Finality
}

// Aggregator folds inbound streaming events into the three observable
// state slices: the transcript log, progress and chapter titles. Events
// arrive on the channel dispatch goroutine, snapshots are read from the
// presentation side, so all state is guarded by one mutex.
type Aggregator struct {
	mu            sync.Mutex
	segments      []Segment
	progress      float64
	chapterTitles string

	onChapterTitles func(titles string)
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// SetChapterTitlesNotify registers the one-shot user-visible
// notification invoked each time chapter titles arrive.
func (a *Aggregator) SetChapterTitlesNotify(fn func(titles string)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onChapterTitles = fn
}

// Bind registers the aggregator's handlers for every inbound event kind.
func (a *Aggregator) Bind(ch channel.Channel) {
	ch.On(channel.EventJoinRoom, a.handleJoinRoom)
	ch.On(channel.EventPartialResult, a.transcriptHandler(channel.EventPartialResult, Partial))
	ch.On(channel.EventFinalResult, a.transcriptHandler(channel.EventFinalResult, Final))
	ch.On(channel.EventTranscribePartial, a.transcriptHandler(channel.EventTranscribePartial, Partial))
	ch.On(channel.EventTranscribeFinal, a.handleTranscribeFinal)
	ch.On(channel.EventTranscriptionProgress, a.handleProgress)
	ch.On(channel.EventChapterTitles, a.handleChapterTitles)
}

// Reset clears all aggregated state. It runs synchronously at the top
// of a session start, before any chunk can be sent, so results from a
// previous session never bleed into the next one.
func (a *Aggregator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.segments = nil
	a.progress = 0
	a.chapterTitles = ""
}

// Snapshot returns a copy of the transcript log plus the scalar state.
func (a *Aggregator) Snapshot() ([]Segment, float64, string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	segments := make([]Segment, len(a.segments))
	copy(segments, a.segments)
	return segments, a.progress, a.chapterTitles
}

func (a *Aggregator) transcriptHandler(event string, finality Finality) channel.Handler {
	return func(data json.RawMessage) {
		var p channel.TranscriptPayload
		if err := json.Unmarshal(data, &p); err != nil {
			slog.Warn("discarding malformed transcript event", "event", event, "error", err)
			return
		}
		a.appendSegment(event, p.Text, p.SpeakerID, finality)
	}
}

func (a *Aggregator) handleTranscribeFinal(data json.RawMessage) {
	var p channel.TranscribeFinalPayload
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding malformed transcript event", "event", channel.EventTranscribeFinal, "error", err)
		return
	}
	text := p.Transcript
	if text == "" {
		text = p.Text
	}
	a.appendSegment(channel.EventTranscribeFinal, text, p.SpeakerID, Final)
}

func (a *Aggregator) appendSegment(event, text, speakerID string, finality Finality) {
	if text == "" {
		slog.Warn("discarding transcript event without text", "event", event)
		return
	}
	if speakerID == "" {
		speakerID = UnknownSpeaker
	}
	a.mu.Lock()
	a.segments = append(a.segments, Segment{Text: text, SpeakerID: speakerID, Finality: finality})
	total := len(a.segments)
	a.mu.Unlock()
	slog.Debug("transcript segment appended", "event", event, "finality", finality.String(), "speaker_id", speakerID, "total_segments", total)
}

func (a *Aggregator) handleProgress(data json.RawMessage) {
	var p channel.ProgressPayload
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding malformed progress event", "error", err)
		return
	}
	// Last write wins; the backend is trusted for value correctness, so
	// no clamping and no monotonicity enforcement.
	a.mu.Lock()
	a.progress = p.Progress
	a.mu.Unlock()
}

func (a *Aggregator) handleChapterTitles(data json.RawMessage) {
	var p channel.ChapterTitlesPayload
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding malformed chapter titles event", "error", err)
		return
	}
	a.mu.Lock()
	a.chapterTitles = p.Titles
	notify := a.onChapterTitles
	a.mu.Unlock()
	slog.Info("chapter titles received", "titles", p.Titles)
	if notify != nil {
		notify(p.Titles)
	}
}

func (a *Aggregator) handleJoinRoom(data json.RawMessage) {
	var p channel.JoinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("discarding malformed join_room event", "error", err)
		return
	}
	// Informational acknowledgment only; no state mutation.
	slog.Info("room joined", "room_id", p.Room)
}
