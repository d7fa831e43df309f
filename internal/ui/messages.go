package ui

import (
	"time"

	"github.com/lipika1080/np03frontend/internal/session"
)

// TickMsg triggers a snapshot refresh.
type TickMsg time.Time

// StartResultMsg carries the outcome of a session start.
type StartResultMsg struct {
	Err error
}

// ChapterTitlesNoticeMsg is the one-shot notification that chapter
// titles arrived. Sent into the program from the aggregator callback.
type ChapterTitlesNoticeMsg struct {
	Titles string
}

// ClearNoticeMsg clears the chapter-titles notice after a timeout.
type ClearNoticeMsg struct{}

// SnapshotMsg carries a fresh controller snapshot.
type SnapshotMsg struct {
	Snapshot session.Snapshot
}
