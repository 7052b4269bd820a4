package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/justyntemme/warad-t/internal/audio"
	"github.com/justyntemme/warad-t/internal/session"
	"github.com/justyntemme/warad-t/internal/ui/styles"
	"github.com/justyntemme/warad-t/pkg/models"
)

const bismillah = "بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"

// ReaderView displays the verses of one chapter and drives its audio
type ReaderView struct {
	library *session.Library
	loader  session.VerseLoader
	player  session.Player
	logger  *slog.Logger

	// Current chapter session; replaced on every SetChapter
	ctrl      *session.Controller
	chapterID int
	jumpTo    int // verse number to move the cursor to once loaded

	// Cursor is an index into the loaded verses
	cursor int
	offset int

	spinner   spinner.Model
	statusMsg string // transient message, cleared on the next key

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView(library *session.Library, loader session.VerseLoader, player session.Player, logger *slog.Logger) *ReaderView {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &ReaderView{
		library: library,
		loader:  loader,
		player:  player,
		logger:  logger,
		spinner: spin,
		width:   80,
		height:  24,
	}
}

// SetChapter starts a new reading session for chapterID. verseNumber, when
// non-zero, is where the cursor lands once the verses arrive.
func (v *ReaderView) SetChapter(chapterID, verseNumber int) {
	v.Close()
	v.ctrl = session.NewController(v.library, v.loader, v.player, v.logger)
	v.chapterID = chapterID
	v.jumpTo = verseNumber
	v.cursor = 0
	v.offset = 0
	v.statusMsg = ""

	v.logger.Debug("reading session started", "session", v.ctrl.ID(), "chapter", chapterID, "verse", verseNumber)
}

// Close ends the current session and releases its audio. Called when
// leaving the reader.
func (v *ReaderView) Close() {
	if v.ctrl != nil {
		v.ctrl.Close()
	}
}

// Message types
type chapterLoadedMsg struct {
	ctrl *session.Controller
	err  error
}

type playResultMsg struct {
	ctrl *session.Controller
	err  error
}

type bookmarkResultMsg struct {
	ctrl  *session.Controller
	verse models.Verse
	err   error
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	if v.ctrl == nil {
		return nil
	}
	return tea.Batch(v.spinner.Tick, v.openChapter())
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		v.statusMsg = "" // Clear transient messages on any key
		return v.handleKeyMsg(msg)

	case chapterLoadedMsg:
		if msg.ctrl != v.ctrl || errors.Is(msg.err, session.ErrSuperseded) {
			return v, nil
		}
		v.restoreCursor()
		return v, nil

	case playResultMsg:
		// Playback errors surface through the controller notice.
		return v, nil

	case bookmarkResultMsg:
		if msg.ctrl != v.ctrl {
			return v, nil
		}
		if msg.err != nil {
			v.statusMsg = "Failed to save bookmark"
			return v, nil
		}
		v.statusMsg = fmt.Sprintf("Bookmarked ayah %d", msg.verse.Number)
		return v, nil

	case PlaybackMsg:
		// State is read from the controller on render.
		return v, nil

	case spinner.TickMsg:
		if v.ctrl == nil || v.ctrl.Snapshot().Status != session.StatusLoading {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *ReaderView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.ctrl == nil {
		return v, nil
	}
	st := v.ctrl.Snapshot()

	switch msg.String() {
	case "j", "down":
		v.moveCursor(1, len(st.Verses))
	case "k", "up":
		v.moveCursor(-1, len(st.Verses))
	case "ctrl+d", "pgdown":
		v.moveCursor(5, len(st.Verses))
	case "ctrl+u", "pgup":
		v.moveCursor(-5, len(st.Verses))
	case "g", "home":
		v.cursor = 0
		v.offset = 0
	case "G", "end":
		v.cursor = max(0, len(st.Verses)-1)
	case "enter", " ":
		if verse, ok := v.currentVerse(st); ok {
			return v, v.requestPlay(verse)
		}
	case "b":
		if verse, ok := v.currentVerse(st); ok {
			return v, v.bookmark(verse)
		}
	case "x":
		v.ctrl.DismissNotice()
	case "r":
		if st.Status == session.StatusFailed {
			return v, tea.Batch(v.spinner.Tick, v.openChapter())
		}
	case "]", "n":
		if v.chapterID < models.ChapterCount {
			return v, OpenChapter(v.chapterID+1, 0)
		}
	case "[", "p":
		if v.chapterID > 1 {
			return v, OpenChapter(v.chapterID-1, 0)
		}
	}
	return v, nil
}

// View implements View
func (v *ReaderView) View() string {
	if v.ctrl == nil {
		return styles.ErrorStyle.Render("No surah selected")
	}
	st := v.ctrl.Snapshot()

	var b strings.Builder
	b.WriteString(v.renderHeader(st) + "\n")

	switch st.Status {
	case session.StatusLoading:
		b.WriteString(v.placeCenter(v.spinner.View() + " " + styles.MutedText.Render("Loading surah details...")))
		return b.String()

	case session.StatusFailed:
		msg := styles.ErrorStyle.Render(st.Message) + "\n\n" +
			styles.HelpLine("r", "retry", "esc", "go back")
		b.WriteString(v.placeCenter(msg))
		return b.String()
	}

	body := v.renderBody(st)
	visible := v.visibleLines(st)
	v.scrollTo(body, visible)
	end := min(v.offset+visible, len(body.lines))
	for _, line := range body.lines[v.offset:end] {
		b.WriteString(line + "\n")
	}

	if st.Notice != "" {
		b.WriteString(styles.Notice.Render("Audio Error: "+st.Notice+"  ") + styles.HelpLine("x", "dismiss") + "\n")
	}
	b.WriteString(v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *ReaderView) renderHeader(st session.State) string {
	name := fmt.Sprintf("Surah %d", v.chapterID)
	info := ""
	if st.HasChapter {
		name = fmt.Sprintf("%d. %s", st.Chapter.ID, st.Chapter.NameSimple)
		info = styles.Help.Render(fmt.Sprintf(" %s · %d ayahs ", st.Chapter.TranslatedName.Name, st.Chapter.VersesCount))
	}
	left := styles.ReaderHeader.Render(" "+styles.TruncateText(name, max(10, v.width/3))+" ") + info

	right := ""
	switch pb := st.Playback; pb.State {
	case audio.StateLoading:
		right = styles.MutedText.Render(" loading audio... ")
	case audio.StatePlaying:
		if verse, ok := verseByID(st.Verses, pb.VerseID); ok {
			right = styles.PlayingBadge.Render(fmt.Sprintf("▶ %s", verse.Key))
		}
	}
	return styles.SpaceBetween(left, right, v.width)
}

// verseBody is the rendered verse list with the line span of every verse
type verseBody struct {
	lines  []string
	starts []int
	ends   []int
}

func (v *ReaderView) renderBody(st session.State) verseBody {
	var body verseBody
	textWidth := max(20, v.width-6)

	showBismillah := models.ChapterShowsBismillah(v.chapterID)
	if st.HasChapter {
		showBismillah = st.Chapter.ShowsBismillah()
	}
	if showBismillah {
		body.lines = append(body.lines, styles.Bismillah.Width(v.width).Render(bismillah), "")
	}

	for i, verse := range st.Verses {
		body.starts = append(body.starts, len(body.lines))

		marker := styles.VerseKey.Render(verse.Key)
		if verse.ID == st.ActiveVerseID {
			marker += " " + styles.PlayingBadge.Render("▶ playing")
		} else if verse.Number == st.SelectedVerse {
			marker += " " + styles.SecondaryText.Render("◆")
		}

		block := []string{marker}
		block = append(block, strings.Split(styles.VerseText.Render(wordwrap.String(verse.Text, textWidth)), "\n")...)
		if verse.Translation != "" {
			block = append(block, strings.Split(styles.VerseTranslation.Render(wordwrap.String(verse.Translation, textWidth)), "\n")...)
		}

		frame := styles.VerseIdle
		if i == v.cursor {
			frame = styles.VerseSelected
		}
		rendered := frame.Render(strings.Join(block, "\n"))
		body.lines = append(body.lines, strings.Split(rendered, "\n")...)
		body.ends = append(body.ends, len(body.lines))
		body.lines = append(body.lines, "")
	}
	return body
}

func (v *ReaderView) renderFooter() string {
	if v.statusMsg != "" {
		return styles.FooterBar.Width(v.width).Render(styles.SecondaryText.Render(v.statusMsg))
	}
	help := styles.HelpLine(
		"j/k", "ayah",
		"enter", "play/stop",
		"b", "bookmark",
		"[/]", "surah",
		"?", "help",
		"q", "back",
	)
	return styles.FooterBar.Width(v.width).Render(help)
}

func (v *ReaderView) placeCenter(content string) string {
	return lipgloss.Place(v.width, max(1, v.height-4), lipgloss.Center, lipgloss.Center, content)
}

// scrollTo keeps the cursor verse on screen
func (v *ReaderView) scrollTo(body verseBody, visible int) {
	if v.cursor < len(body.starts) {
		start, end := body.starts[v.cursor], body.ends[v.cursor]
		if v.cursor == 0 {
			start = 0 // keep the bismillah in view above the first verse
		}
		if start < v.offset {
			v.offset = start
		}
		if end > v.offset+visible {
			v.offset = max(start, end-visible)
		}
	}
	v.offset = min(v.offset, max(0, len(body.lines)-visible))
	v.offset = max(0, v.offset)
}

// visibleLines returns the number of body lines that fit
func (v *ReaderView) visibleLines(st session.State) int {
	lines := v.height - 4 // Header, footer, margins
	if st.Notice != "" {
		lines -= 3
	}
	return max(1, lines)
}

func (v *ReaderView) moveCursor(delta, count int) {
	v.cursor += delta
	if v.cursor >= count {
		v.cursor = count - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

// restoreCursor moves to the verse requested in SetChapter, if any
func (v *ReaderView) restoreCursor() {
	if v.jumpTo <= 0 {
		return
	}
	for i, verse := range v.ctrl.Snapshot().Verses {
		if verse.Number == v.jumpTo {
			v.cursor = i
			break
		}
	}
	v.jumpTo = 0
}

func (v *ReaderView) currentVerse(st session.State) (models.Verse, bool) {
	if st.Status != session.StatusReady || v.cursor >= len(st.Verses) {
		return models.Verse{}, false
	}
	return st.Verses[v.cursor], true
}

func verseByID(verses []models.Verse, id int) (models.Verse, bool) {
	for _, verse := range verses {
		if verse.ID == id {
			return verse, true
		}
	}
	return models.Verse{}, false
}

func (v *ReaderView) openChapter() tea.Cmd {
	ctrl, id := v.ctrl, v.chapterID
	return func() tea.Msg {
		return chapterLoadedMsg{ctrl: ctrl, err: ctrl.Open(context.Background(), id)}
	}
}

func (v *ReaderView) requestPlay(verse models.Verse) tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return playResultMsg{ctrl: ctrl, err: ctrl.RequestPlay(context.Background(), verse)}
	}
}

func (v *ReaderView) bookmark(verse models.Verse) tea.Cmd {
	ctrl := v.ctrl
	return func() tea.Msg {
		return bookmarkResultMsg{ctrl: ctrl, verse: verse, err: ctrl.Bookmark(context.Background(), verse)}
	}
}
