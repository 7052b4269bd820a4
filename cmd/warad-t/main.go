package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/do/v2"

	"github.com/justyntemme/warad-t/internal/api"
	"github.com/justyntemme/warad-t/internal/audio"
	"github.com/justyntemme/warad-t/internal/config"
	"github.com/justyntemme/warad-t/internal/di"
	"github.com/justyntemme/warad-t/internal/di/providers"
	"github.com/justyntemme/warad-t/internal/session"
	"github.com/justyntemme/warad-t/internal/ui"
	"github.com/justyntemme/warad-t/internal/ui/views"
	"github.com/justyntemme/warad-t/pkg/models"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage()
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if opts.help {
		printUsage()
		os.Exit(0)
	}

	injector := di.NewContainer()

	// Load configuration
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Override API URL if provided via flag
	if opts.apiURL != "" {
		if err := cfg.SetAPIBaseURL(opts.apiURL); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save api url: %v\n", err)
		}
	}

	// Debug mode
	if opts.debug {
		printConfig(cfg)
		os.Exit(0)
	}

	if err := run(injector, opts.last, opts.surah); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(injector *do.RootScope, last bool, surah int) error {
	// Audio and the bookmark store are released even if the program fails
	defer func() {
		if err := injector.Shutdown(); err != nil {
			fmt.Fprintf(os.Stderr, "Shutdown error: %v\n", err)
		}
	}()

	if err := di.Bootstrap(injector); err != nil {
		return fmt.Errorf("starting: %w", err)
	}

	cfg := do.MustInvoke[*config.Config](injector)
	log := do.MustInvoke[*providers.LoggerHandle](injector)
	client := do.MustInvoke[*api.Client](injector)
	slot := do.MustInvoke[*providers.SlotHandle](injector)
	library := do.MustInvoke[*session.Library](injector)

	app := ui.NewApp(cfg, library, client, slot.Slot, log.Logger.Logger)
	switch {
	case surah > 0:
		app.StartReading(surah, 0)
	case last:
		b, ok := library.LastRead()
		if !ok {
			b = models.Bookmark{ChapterID: 1, VerseNumber: 1}
		}
		app.StartReading(b.ChapterID, b.VerseNumber)
	}
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	slot.SetObserver(func(st audio.Status) {
		go p.Send(views.PlaybackMsg{Status: st})
	})

	if _, err := p.Run(); err != nil {
		log.WithError(err).Error("Program exited with error")
		return fmt.Errorf("running program: %w", err)
	}
	log.Info("Exiting warad-t")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Printf("Config path: %s\n", cfg.Path())
	fmt.Printf("Log file: %s\n", cfg.LogPath())
	fmt.Printf("Bookmark db: %s\n", cfg.DBPath())

	values := cfg.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %v\n", k, values[k])
	}
}

func printUsage() {
	fmt.Println("warad-t - Read and listen to the Holy Quran in the terminal")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  warad-t                     Start at the surah list")
	fmt.Println("  warad-t --last              Continue from the last read ayah")
	fmt.Println("  warad-t --surah 18          Open a surah by number")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -l, --last             Open the last read ayah")
	fmt.Println("      --surah <n>        Open surah n (1-114)")
	fmt.Println("      --api <url>        Set content API base URL (saved to config)")
	fmt.Println("      --debug            Print the effective configuration")
	fmt.Println("  -h, --help             Show this help message")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  WARAD_RECITER, WARAD_PLAYER_COMMAND, WARAD_LOG_LEVEL, ... override config keys")
	fmt.Println("  A .env file in the working directory is read first")
	fmt.Println()
	fmt.Println("Config: ~/.config/warad-t/config.json")
}
