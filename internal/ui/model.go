package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lipika1080/np03frontend/internal/capture"
	"github.com/lipika1080/np03frontend/internal/session"
)

const (
	snapshotInterval = 200 * time.Millisecond
	noticeDuration   = 5 * time.Second
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	recordingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	idleStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	partialStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true)
	speakerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	noticeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Controller is the session-control surface the view needs: invoke
// start/stop and read snapshots, nothing else.
type Controller interface {
	Start(ctx context.Context) error
	Stop()
	Snapshot() session.Snapshot
}

// Model is the thin presentation layer: it renders aggregator state and
// invokes session start/stop. No business logic lives here.
type Model struct {
	controller Controller
	snapshot   session.Snapshot
	notice     string
	errMsg     string
	width      int
}

func New(controller Controller) Model {
	return Model{controller: controller}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.snapshot.Recording {
				m.controller.Stop()
				m.snapshot = m.controller.Snapshot()
				return m, nil
			}
			m.errMsg = ""
			return m, startCmd(m.controller)
		}
		return m, nil

	case TickMsg:
		m.snapshot = m.controller.Snapshot()
		return m, tickCmd()

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		return m, nil

	case StartResultMsg:
		if msg.Err != nil {
			if errors.Is(msg.Err, capture.ErrPermissionDenied) {
				m.errMsg = "Microphone unavailable. Grant microphone access to this terminal and press space to retry."
			} else {
				m.errMsg = msg.Err.Error()
			}
		}
		m.snapshot = m.controller.Snapshot()
		return m, nil

	case ChapterTitlesNoticeMsg:
		m.notice = fmt.Sprintf("Chapter titles ready: %s", msg.Titles)
		return m, clearNoticeCmd()

	case ClearNoticeMsg:
		m.notice = ""
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("np03 transcription"))
	b.WriteString("\n\n")

	if m.snapshot.Recording {
		b.WriteString(recordingStyle.Render("● recording"))
	} else {
		b.WriteString(idleStyle.Render("○ idle"))
	}
	b.WriteString(fmt.Sprintf("  progress: %.0f%%\n\n", m.snapshot.Progress))

	for _, seg := range m.snapshot.Segments {
		line := fmt.Sprintf("%s %s", speakerStyle.Render(seg.SpeakerID+":"), seg.Text)
		if seg.Finality == session.Partial {
			line = partialStyle.Render(fmt.Sprintf("%s: %s", seg.SpeakerID, seg.Text))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.snapshot.ChapterTitles != "" {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Chapters"))
		b.WriteString("\n")
		b.WriteString(m.snapshot.ChapterTitles)
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("space: start/stop recording • q: quit"))
	b.WriteString("\n")
	return b.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(snapshotInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func startCmd(controller Controller) tea.Cmd {
	return func() tea.Msg {
		return StartResultMsg{Err: controller.Start(context.Background())}
	}
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return ClearNoticeMsg{}
	})
}
