package styles

import "github.com/charmbracelet/lipgloss"

// Theme represents a color scheme for the application
type Theme struct {
	Name        string
	Description string

	// Core colors
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	// UI element colors
	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	Accent        lipgloss.Color // Arabic text and the bismillah
	Makkah        lipgloss.Color
	Madinah       lipgloss.Color
	BadgeText     lipgloss.Color
}

// Built-in themes
var (
	// DarkTheme is the default dark theme
	DarkTheme = Theme{
		Name:          "dark",
		Description:   "Dark theme (default)",
		Primary:       lipgloss.Color("#0F766E"),
		Secondary:     lipgloss.Color("#2DD4BF"),
		Background:    lipgloss.Color("#111827"),
		Foreground:    lipgloss.Color("#F9FAFB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#134E4A"),
		SelectionText: lipgloss.Color("#F9FAFB"),
		Accent:        lipgloss.Color("#FCD34D"),
		Makkah:        lipgloss.Color("#F59E0B"),
		Madinah:       lipgloss.Color("#10B981"),
		BadgeText:     lipgloss.Color("#111827"),
	}

	// LightTheme is a light color scheme
	LightTheme = Theme{
		Name:          "light",
		Description:   "Light theme",
		Primary:       lipgloss.Color("#0F766E"),
		Secondary:     lipgloss.Color("#0E7490"),
		Background:    lipgloss.Color("#FFFFFF"),
		Foreground:    lipgloss.Color("#111827"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#D1D5DB"),
		Selection:     lipgloss.Color("#CCFBF1"),
		SelectionText: lipgloss.Color("#111827"),
		Accent:        lipgloss.Color("#92400E"),
		Makkah:        lipgloss.Color("#D97706"),
		Madinah:       lipgloss.Color("#059669"),
		BadgeText:     lipgloss.Color("#FFFFFF"),
	}

	// SepiaTheme is a warm, low-contrast scheme for long reading
	SepiaTheme = Theme{
		Name:          "sepia",
		Description:   "Warm paper tones",
		Primary:       lipgloss.Color("#8B5E34"),
		Secondary:     lipgloss.Color("#A47148"),
		Background:    lipgloss.Color("#F4ECD8"),
		Foreground:    lipgloss.Color("#3B2F2F"),
		Success:       lipgloss.Color("#6B8E23"),
		Warning:       lipgloss.Color("#B8860B"),
		Error:         lipgloss.Color("#A52A2A"),
		Muted:         lipgloss.Color("#8B7D6B"),
		Border:        lipgloss.Color("#D2B48C"),
		Selection:     lipgloss.Color("#E6D3B3"),
		SelectionText: lipgloss.Color("#3B2F2F"),
		Accent:        lipgloss.Color("#6F4E37"),
		Makkah:        lipgloss.Color("#B8860B"),
		Madinah:       lipgloss.Color("#6B8E23"),
		BadgeText:     lipgloss.Color("#F4ECD8"),
	}

	// BuiltinThemes lists all available themes
	BuiltinThemes = []Theme{
		DarkTheme,
		LightTheme,
		SepiaTheme,
	}

	// currentTheme holds the active theme
	currentTheme = DarkTheme
)

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return DarkTheme
}

// GetThemeNames returns a list of all available theme names
func GetThemeNames() []string {
	names := make([]string, len(BuiltinThemes))
	for i, t := range BuiltinThemes {
		names[i] = t.Name
	}
	return names
}

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme sets the active theme by name
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// NextTheme cycles to the next theme and returns its name
func NextTheme() string {
	for i, t := range BuiltinThemes {
		if t.Name == currentTheme.Name {
			next := BuiltinThemes[(i+1)%len(BuiltinThemes)]
			SetCurrentTheme(next.Name)
			return next.Name
		}
	}
	return currentTheme.Name
}

// ApplyTheme updates all global styles to use the given theme's colors
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	TitleBar = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	FooterBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		BorderStyle(lipgloss.NormalBorder()).
		BorderTop(true).
		BorderForeground(theme.Border)

	Help = lipgloss.NewStyle().Foreground(theme.Muted)
	HelpKey = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(theme.Muted)
	SecondaryText = lipgloss.NewStyle().Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Padding(0, 1)

	Notice = lipgloss.NewStyle().
		Foreground(theme.Error).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Error).
		Padding(0, 1)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ChapterNumber = lipgloss.NewStyle().Foreground(theme.Secondary).Width(4).Align(lipgloss.Right)
	ChapterArabic = lipgloss.NewStyle().Foreground(theme.Accent)

	BadgeMakkah = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Makkah).
		Padding(0, 1)

	BadgeMadinah = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Madinah).
		Padding(0, 1)

	ContinueCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	Bismillah = lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Align(lipgloss.Center)

	VerseKey = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	VerseText = lipgloss.NewStyle().Foreground(theme.Accent)
	VerseTranslation = lipgloss.NewStyle().Foreground(theme.Foreground)

	VerseSelected = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(theme.Primary).
		PaddingLeft(1)

	VerseIdle = lipgloss.NewStyle().PaddingLeft(2)

	PlayingBadge = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Success).
		Padding(0, 1).
		Bold(true)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)
}

// init applies the default theme on package load
func init() {
	ApplyTheme(DarkTheme)
}
