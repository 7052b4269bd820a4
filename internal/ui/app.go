package ui

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/session"
	"github.com/justyntemme/warad-t/internal/ui/styles"
	"github.com/justyntemme/warad-t/internal/ui/views"
)

// App is the main application model
type App struct {
	config *config.Config
	logger *slog.Logger
	keys   KeyMap

	// Current view state
	currentView views.ViewType
	prevView    views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	chaptersView *views.ChaptersView
	readerView   *views.ReaderView

	// Error/status message
	err       error
	statusMsg string
	showHelp  bool
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, library *session.Library, loader session.VerseLoader, player session.Player, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	styles.SetCurrentTheme(cfg.Theme)

	return &App{
		config:       cfg,
		logger:       logger,
		keys:         DefaultKeyMap(),
		currentView:  views.ViewChapters,
		width:        80,
		height:       24,
		chaptersView: views.NewChaptersView(library),
		readerView:   views.NewReaderView(library, loader, player, logger),
	}
}

// StartReading makes the app open chapterID at verseNumber instead of the
// chapter list. Call before the program starts.
func (a *App) StartReading(chapterID, verseNumber int) {
	a.readerView.SetChapter(chapterID, verseNumber)
	a.currentView = views.ViewReader
}

// CurrentView returns the screen being shown
func (a *App) CurrentView() views.ViewType {
	return a.currentView
}

// Close ends any open reading session and stops its audio
func (a *App) Close() {
	a.readerView.Close()
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.getCurrentView().Init(),
		tea.SetWindowTitle("warad-t"),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Propagate to all views
		a.chaptersView.SetSize(msg.Width, msg.Height)
		a.readerView.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Force) {
			a.Close()
			return a, tea.Quit
		}
		a.statusMsg = ""

		// Global key handling
		switch {
		case key.Matches(msg, a.keys.Quit):
			// In the reader, go back to the chapter list instead of quitting
			if a.currentView == views.ViewReader {
				return a.switchView(views.ViewChapters)
			}
			a.Close()
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.showHelp = !a.showHelp
			return a, nil

		case key.Matches(msg, a.keys.Theme):
			name := styles.NextTheme()
			if err := a.config.SetTheme(name); err != nil {
				a.logger.Warn("Failed to save theme", "theme", name, "error", err)
			}
			a.statusMsg = "Theme: " + name
			return a, nil

		case key.Matches(msg, a.keys.Escape):
			// Handle back navigation
			if a.showHelp {
				a.showHelp = false
				return a, nil
			}
			if a.currentView == views.ViewReader {
				return a.switchView(views.ViewChapters)
			}
		}

	case views.OpenChapterMsg:
		a.readerView.SetChapter(msg.ChapterID, msg.VerseNumber)
		return a.switchView(views.ViewReader)

	case views.ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.ClearErrorMsg:
		a.err = nil
		return a, nil

	case views.SwitchViewMsg:
		return a.switchView(msg.View)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.currentView {
	case views.ViewChapters:
		_, cmd = a.chaptersView.Update(msg)
	case views.ViewReader:
		_, cmd = a.readerView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	// Add help overlay if shown
	if a.showHelp {
		return a.renderHelp()
	}

	content := a.getCurrentView().View()

	// Add error bar if there's an error
	if a.err != nil {
		errorBar := styles.ErrorStyle.Render("Error: " + a.err.Error())
		content = lipgloss.JoinVertical(lipgloss.Left, content, errorBar)
	}
	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.SuccessStyle.Render(a.statusMsg))
	}

	return content
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	// Leaving the reader stops its audio
	if a.currentView == views.ViewReader && view != views.ViewReader {
		a.readerView.Close()
	}

	a.prevView = a.currentView
	a.currentView = view
	a.err = nil

	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewReader:
		return a.readerView
	default:
		return a.chaptersView
	}
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	help := styles.Dialog.Width(60).Render(
		styles.DialogTitle.Render("Keyboard Shortcuts") + "\n\n" +
			styles.HelpKey.Render("Navigation") + "\n" +
			"  j/↓     Move down\n" +
			"  k/↑     Move up\n" +
			"  g       Go to top\n" +
			"  G       Go to bottom\n" +
			"  Ctrl+d  Page down\n" +
			"  Ctrl+u  Page up\n\n" +
			styles.HelpKey.Render("Surahs") + "\n" +
			"  Enter   Open surah\n" +
			"  c       Continue from last read\n" +
			"  r       Retry loading\n\n" +
			styles.HelpKey.Render("Reader") + "\n" +
			"  Enter   Play/stop ayah audio\n" +
			"  b       Bookmark ayah\n" +
			"  ]/n     Next surah\n" +
			"  [/p     Previous surah\n" +
			"  x       Dismiss audio error\n" +
			"  r       Retry loading\n\n" +
			styles.HelpKey.Render("General") + "\n" +
			"  T       Cycle theme\n" +
			"  q       Quit/Back\n" +
			"  Esc     Back\n" +
			"  ?       Toggle help\n",
	)

	// Center the help dialog
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		help,
	)
}
