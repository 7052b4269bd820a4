package views

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/justyntemme/warad-t/internal/session"
	"github.com/justyntemme/warad-t/internal/ui/styles"
	"github.com/justyntemme/warad-t/pkg/models"
)

const chaptersFailedMessage = "Failed to load surahs. Please try again later."

// ChaptersView lists the surahs and the last-read card
type ChaptersView struct {
	library *session.Library

	chapters []models.Chapter
	cursor   int
	offset   int

	// State
	loading bool
	err     error
	spinner spinner.Model
	caser   cases.Caser

	// Dimensions
	width  int
	height int
}

// NewChaptersView creates a new chapter list view
func NewChaptersView(library *session.Library) *ChaptersView {
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &ChaptersView{
		library: library,
		spinner: spin,
		caser:   cases.Title(language.English),
		width:   80,
		height:  24,
	}
}

// chaptersLoadedMsg is sent when the chapter list fetch finishes
type chaptersLoadedMsg struct {
	err error
}

// Init implements View
func (v *ChaptersView) Init() tea.Cmd {
	if chapters := v.library.Chapters(); len(chapters) > 0 {
		v.setChapters(chapters)
		return nil
	}
	v.loading = true
	return tea.Batch(v.spinner.Tick, v.loadChapters())
}

// Update implements View
func (v *ChaptersView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case chaptersLoadedMsg:
		v.loading = false
		v.err = msg.err
		v.setChapters(v.library.Chapters())
		return v, nil

	case spinner.TickMsg:
		if !v.loading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	return v, nil
}

func (v *ChaptersView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		v.moveCursor(1)
	case "k", "up":
		v.moveCursor(-1)
	case "g", "home":
		v.cursor = 0
		v.offset = 0
	case "G", "end":
		v.cursor = max(0, len(v.chapters)-1)
		v.updateOffset()
	case "ctrl+d", "pgdown":
		v.moveCursor(v.visibleLines() / 2)
	case "ctrl+u", "pgup":
		v.moveCursor(-v.visibleLines() / 2)
	case "enter":
		if len(v.chapters) > 0 && v.cursor < len(v.chapters) {
			return v, OpenChapter(v.chapters[v.cursor].ID, 0)
		}
	case "c":
		// Continue reading, starting from Al-Fatihah when nothing is saved
		if b, ok := v.library.LastRead(); ok {
			return v, OpenChapter(b.ChapterID, b.VerseNumber)
		}
		return v, OpenChapter(1, 0)
	case "r":
		if v.err != nil && !v.loading {
			v.loading = true
			v.err = nil
			return v, tea.Batch(v.spinner.Tick, v.loadChapters())
		}
	}
	return v, nil
}

// View implements View
func (v *ChaptersView) View() string {
	var b strings.Builder

	b.WriteString(v.renderHeader() + "\n")
	b.WriteString(v.renderContinueCard() + "\n")

	if v.loading {
		b.WriteString(v.placeCenter(v.spinner.View() + " " + styles.MutedText.Render("Loading Quran data...")))
		return b.String()
	}

	if v.err != nil {
		msg := styles.ErrorStyle.Render(chaptersFailedMessage) + "\n\n" +
			styles.HelpLine("r", "retry", "c", "continue reading", "q", "quit")
		b.WriteString(v.placeCenter(msg))
		return b.String()
	}

	if len(v.chapters) == 0 {
		b.WriteString(v.placeCenter(styles.MutedText.Render("No surahs available")))
		return b.String()
	}

	visible := v.visibleLines()
	for i := v.offset; i < min(v.offset+visible, len(v.chapters)); i++ {
		b.WriteString(v.renderChapterLine(v.chapters[i], i == v.cursor) + "\n")
	}

	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *ChaptersView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.updateOffset()
}

func (v *ChaptersView) renderHeader() string {
	title := styles.TitleBar.Render(" Al-Quran ")
	sub := styles.Help.Render(" Read & Listen to the Holy Quran")

	total := len(v.library.Chapters())
	count := styles.Help.Render(fmt.Sprintf(" %d Surahs ", total))
	return styles.SpaceBetween(title+sub, count, v.width)
}

func (v *ChaptersView) renderContinueCard() string {
	name, verse := "Al-Fatihah", 1
	if b, ok := v.library.LastRead(); ok {
		name, verse = b.ChapterName, b.VerseNumber
	}

	body := styles.MutedText.Render("Last Read") + "\n" +
		styles.SecondaryText.Bold(true).Render(name) + "  " +
		styles.Help.Render(fmt.Sprintf("Ayah No: %d", verse)) + "   " +
		styles.HelpLine("c", "continue")
	return styles.ContinueCard.Render(body)
}

func (v *ChaptersView) renderChapterLine(ch models.Chapter, selected bool) string {
	badge := styles.BadgeMadinah
	if ch.RevelationPlace == models.RevelationMakkah {
		badge = styles.BadgeMakkah
	}
	place := badge.Render(v.caser.String(ch.RevelationPlace))

	right := place + " " + styles.MutedText.Render(fmt.Sprintf("%3d ayahs", ch.VersesCount)) +
		"  " + styles.ChapterArabic.Render(ch.NameArabic)

	// Truncate the plain names before styling so escape codes stay intact.
	width := v.width - 4
	number := styles.ChapterNumber.Render(strconv.Itoa(ch.ID)) + "  "
	room := width - lipgloss.Width(number) - lipgloss.Width(right) - 2
	name := styles.TruncateText(ch.NameSimple, room)
	left := number + name
	if sub := ch.TranslatedName.Name; sub != "" {
		if rest := room - lipgloss.Width(name) - 2; rest > 3 {
			left += styles.MutedText.Render("  " + styles.TruncateText(sub, rest))
		}
	}
	line := styles.SpaceBetween(left, right, width)

	if selected {
		return styles.ListItemSelected.Width(v.width).Render(line)
	}
	return styles.ListItem.Render(line)
}

func (v *ChaptersView) renderFooter() string {
	help := styles.HelpLine(
		"j/k", "nav",
		"enter", "open",
		"c", "continue",
		"T", "theme",
		"?", "help",
		"q", "quit",
	)
	return styles.FooterBar.Width(v.width).Render(help)
}

func (v *ChaptersView) placeCenter(content string) string {
	return lipgloss.Place(v.width, max(1, v.height-8), lipgloss.Center, lipgloss.Center, content)
}

// setChapters replaces the list, keeping the cursor in range
func (v *ChaptersView) setChapters(chapters []models.Chapter) {
	v.chapters = chapters
	if v.cursor >= len(v.chapters) {
		v.cursor = max(0, len(v.chapters)-1)
	}
	v.updateOffset()
}

func (v *ChaptersView) loadChapters() tea.Cmd {
	lib := v.library
	return func() tea.Msg {
		return chaptersLoadedMsg{err: lib.ReloadChapters(context.Background())}
	}
}

// moveCursor moves the cursor by delta
func (v *ChaptersView) moveCursor(delta int) {
	v.cursor += delta
	if v.cursor >= len(v.chapters) {
		v.cursor = len(v.chapters) - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
	v.updateOffset()
}

// updateOffset ensures the cursor is visible
func (v *ChaptersView) updateOffset() {
	visible := v.visibleLines()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
}

// visibleLines returns the number of visible chapter lines
func (v *ChaptersView) visibleLines() int {
	// Header, continue card, footer and margins
	lines := v.height - 8
	if lines < 1 {
		lines = 1
	}
	return lines
}
