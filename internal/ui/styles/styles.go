package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Colors of the active theme
var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
)

// Styles built from the active theme by ApplyTheme
var (
	// Title bar
	TitleBar lipgloss.Style

	// Footer bar with key help
	FooterBar lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style

	// Error message
	ErrorStyle lipgloss.Style

	// Success message
	SuccessStyle lipgloss.Style

	// Notice box for dismissible errors
	Notice lipgloss.Style

	// List styles
	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	// Chapter list
	ChapterNumber lipgloss.Style
	ChapterArabic lipgloss.Style
	BadgeMakkah   lipgloss.Style
	BadgeMadinah  lipgloss.Style

	// Continue reading card
	ContinueCard lipgloss.Style

	// Reader styles
	ReaderHeader     lipgloss.Style
	Bismillah        lipgloss.Style
	VerseKey         lipgloss.Style
	VerseText        lipgloss.Style
	VerseTranslation lipgloss.Style
	VerseSelected    lipgloss.Style
	VerseIdle        lipgloss.Style
	PlayingBadge     lipgloss.Style

	// Dialog/Modal styles
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
)

// TruncateText shortens s to width terminal cells, ending with an ellipsis.
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// HelpLine renders key/description pairs as a footer line.
func HelpLine(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, HelpKey.Render(pairs[i])+Help.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// SpaceBetween joins left and right, padding the gap to width.
func SpaceBetween(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	return left + strings.Repeat(" ", gap) + right
}
