package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/warad-t/internal/audio"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewChapters ViewType = iota
	ViewReader
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewChapters:
		return "Surahs"
	case ViewReader:
		return "Reader"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Message types for inter-view communication

// OpenChapterMsg is sent when a chapter is selected to read. VerseNumber,
// when set, is the verse to scroll to.
type OpenChapterMsg struct {
	ChapterID   int
	VerseNumber int
}

// PlaybackMsg carries an audio slot state change.
type PlaybackMsg struct {
	Status audio.Status
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the current error
type ClearErrorMsg struct{}

// SwitchViewMsg requests a view switch
type SwitchViewMsg struct {
	View ViewType
}

// Helper functions to create messages

// SendError creates an error message command
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// ClearError creates a command to clear errors
func ClearError() tea.Cmd {
	return func() tea.Msg {
		return ClearErrorMsg{}
	}
}

// SwitchTo creates a command to switch views
func SwitchTo(view ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: view}
	}
}

// OpenChapter creates a command to open a chapter
func OpenChapter(chapterID, verseNumber int) tea.Cmd {
	return func() tea.Msg {
		return OpenChapterMsg{ChapterID: chapterID, VerseNumber: verseNumber}
	}
}
