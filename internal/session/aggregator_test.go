package session

import (
	"fmt"
	"testing"

	"github.com/lipika1080/np03frontend/internal/channel"
)

func newBoundAggregator() (*Aggregator, *mockChannel) {
	agg := NewAggregator()
	ch := newMockChannel()
	agg.Bind(ch)
	return agg, ch
}

func TestAppendOnlyLog_LengthEqualsEventCountInArrivalOrder(t *testing.T) {
	agg, ch := newBoundAggregator()

	// A final arriving before its partial is kept in arrival order; the
	// client performs no resequencing.
	ch.emit(t, channel.EventFinalResult, `{"text":"world","speakerId":"B"}`)
	ch.emit(t, channel.EventPartialResult, `{"text":"wor","speakerId":"B"}`)
	ch.emit(t, channel.EventTranscribePartial, `{"text":"file part"}`)
	ch.emit(t, channel.EventTranscribeFinal, `{"transcript":"file final","speakerId":"C"}`)

	segments, _, _ := agg.Snapshot()
	if len(segments) != 4 {
		t.Fatalf("expected 4 segments, got %d", len(segments))
	}
	want := []Segment{
		{Text: "world", SpeakerID: "B", Finality: Final},
		{Text: "wor", SpeakerID: "B", Finality: Partial},
		{Text: "file part", SpeakerID: UnknownSpeaker, Finality: Partial},
		{Text: "file final", SpeakerID: "C", Finality: Final},
	}
	for i, seg := range want {
		if segments[i] != seg {
			t.Fatalf("segment %d: got %+v, want %+v", i, segments[i], seg)
		}
	}
}

func TestAppendOnlyLog_PartialNeverMergedAway(t *testing.T) {
	agg, ch := newBoundAggregator()

	for i := 0; i < 5; i++ {
		ch.emit(t, channel.EventPartialResult, fmt.Sprintf(`{"text":"p%d"}`, i))
		ch.emit(t, channel.EventFinalResult, fmt.Sprintf(`{"text":"f%d"}`, i))
	}

	segments, _, _ := agg.Snapshot()
	if len(segments) != 10 {
		t.Fatalf("expected 10 segments after 10 events, got %d", len(segments))
	}
}

func TestTranscribeFinal_FallsBackToSecondaryTextField(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventTranscribeFinal, `{"text":"from secondary"}`)

	segments, _, _ := agg.Snapshot()
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "from secondary" {
		t.Fatalf("expected fallback text, got %q", segments[0].Text)
	}
	if segments[0].Finality != Final {
		t.Fatal("expected final segment")
	}
}

func TestTranscribeFinal_PrimaryFieldWinsWhenPresent(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventTranscribeFinal, `{"transcript":"primary","text":"secondary"}`)

	segments, _, _ := agg.Snapshot()
	if len(segments) != 1 || segments[0].Text != "primary" {
		t.Fatalf("expected primary transcript field to win, got %+v", segments)
	}
}

func TestProgress_LastWriteWinsWithoutEnforcement(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventTranscriptionProgress, `{"progress":10}`)
	ch.emit(t, channel.EventTranscriptionProgress, `{"progress":45}`)
	ch.emit(t, channel.EventTranscriptionProgress, `{"progress":30}`)

	_, progress, _ := agg.Snapshot()
	if progress != 30 {
		t.Fatalf("expected progress 30, got %v", progress)
	}
}

func TestUnknownSpeakerSentinel(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventPartialResult, `{"text":"no speaker"}`)

	segments, _, _ := agg.Snapshot()
	if segments[0].SpeakerID != UnknownSpeaker {
		t.Fatalf("expected %q speaker sentinel, got %q", UnknownSpeaker, segments[0].SpeakerID)
	}
}

func TestMalformedEvents_SkippedNotFatal(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventPartialResult, `not json`)
	ch.emit(t, channel.EventPartialResult, `{"text":""}`)
	ch.emit(t, channel.EventTranscribeFinal, `{}`)
	ch.emit(t, channel.EventTranscriptionProgress, `not json`)
	ch.emit(t, channel.EventPartialResult, `{"text":"ok"}`)

	segments, progress, _ := agg.Snapshot()
	if len(segments) != 1 || segments[0].Text != "ok" {
		t.Fatalf("expected only the valid event to be aggregated, got %+v", segments)
	}
	if progress != 0 {
		t.Fatalf("expected progress untouched by malformed event, got %v", progress)
	}
}

func TestChapterTitles_OverwriteAndNotify(t *testing.T) {
	agg, ch := newBoundAggregator()
	var notices []string
	agg.SetChapterTitlesNotify(func(titles string) {
		notices = append(notices, titles)
	})

	ch.emit(t, channel.EventChapterTitles, `{"titles":"Intro"}`)
	ch.emit(t, channel.EventChapterTitles, `{"titles":"Intro, Outro"}`)

	_, _, titles := agg.Snapshot()
	if titles != "Intro, Outro" {
		t.Fatalf("expected last titles to win, got %q", titles)
	}
	if len(notices) != 2 || notices[0] != "Intro" || notices[1] != "Intro, Outro" {
		t.Fatalf("expected one notification per event, got %+v", notices)
	}
}

func TestJoinRoom_NoStateMutation(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventJoinRoom, `{"room":"room-1"}`)

	segments, progress, titles := agg.Snapshot()
	if len(segments) != 0 || progress != 0 || titles != "" {
		t.Fatal("expected join_room acknowledgment to mutate nothing")
	}
}

func TestReset_ClearsAllStateSlices(t *testing.T) {
	agg, ch := newBoundAggregator()

	ch.emit(t, channel.EventFinalResult, `{"text":"hello"}`)
	ch.emit(t, channel.EventTranscriptionProgress, `{"progress":55}`)
	ch.emit(t, channel.EventChapterTitles, `{"titles":"One"}`)

	agg.Reset()

	segments, progress, titles := agg.Snapshot()
	if len(segments) != 0 {
		t.Fatalf("expected empty log after reset, got %d segments", len(segments))
	}
	if progress != 0 {
		t.Fatalf("expected progress 0 after reset, got %v", progress)
	}
	if titles != "" {
		t.Fatalf("expected empty titles after reset, got %q", titles)
	}
}
