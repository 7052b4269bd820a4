package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/justyntemme/warad-t/pkg/models"
)

// options are the parsed command line flags. surah is 0 when not given.
type options struct {
	last   bool
	surah  int
	apiURL string
	help   bool
	debug  bool
}

var errSurahRange = fmt.Errorf("surah must be between 1 and %d", models.ChapterCount)

// parseFlags parses args (without the program name).
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("warad-t", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.BoolVar(&opts.last, "last", false, "Open the last read ayah")
	fs.BoolVar(&opts.last, "l", false, "Open the last read ayah (shorthand)")
	fs.IntVar(&opts.surah, "surah", 0, "Open a surah by number (1-114)")
	fs.StringVar(&opts.apiURL, "api", "", "Content API base URL (saved to config)")
	fs.BoolVar(&opts.help, "help", false, "Show help message")
	fs.BoolVar(&opts.help, "h", false, "Show help (shorthand)")
	fs.BoolVar(&opts.debug, "debug", false, "Show debug information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	surahSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "surah" {
			surahSet = true
		}
	})
	if surahSet && (opts.surah < 1 || opts.surah > models.ChapterCount) {
		return opts, errSurahRange
	}
	return opts, nil
}
