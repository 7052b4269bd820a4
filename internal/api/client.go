package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/justyntemme/warad-t/pkg/models"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL       = "https://api.quran.com/api/v4"
	DefaultLanguage      = "en"
	DefaultTranslationID = 131
	DefaultAudioHost     = "audio.qurancdn.com"
	DefaultReciter       = "Alafasy"

	defaultTimeout = 30 * time.Second
	defaultRPS     = 2.0
	defaultBurst   = 4
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL           string
	Language          string
	TranslationID     int
	AudioHost         string
	Reciter           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client is the HTTP client for the quran.com content API
type Client struct {
	baseURL       string
	language      string
	translationID int
	audioHost     string
	reciter       string

	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a new API client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.TranslationID <= 0 {
		opts.TranslationID = DefaultTranslationID
	}
	if opts.AudioHost == "" {
		opts.AudioHost = DefaultAudioHost
	}
	if opts.Reciter == "" {
		opts.Reciter = DefaultReciter
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = defaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = defaultBurst
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:       strings.TrimRight(opts.BaseURL, "/"),
		language:      opts.Language,
		translationID: opts.TranslationID,
		audioHost:     opts.AudioHost,
		reciter:       opts.Reciter,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		logger:  logger,
	}
}

// request makes a paced GET request to the API
func (c *Client) request(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %w", ErrNetwork, err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "warad-t/1.0")

	c.logger.Debug("api request", "path", path, "query", query.Encode())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}

// parseResponse reads and unmarshals the response body
func parseResponse[T any](resp *http.Response) (T, error) {
	var result T
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		return result, fmt.Errorf("%w: HTTP %d: %s", ErrNetwork, resp.StatusCode, truncate(string(body), 200))
	}

	if err := json.Unmarshal(body, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return result, nil
}

// ListChapters returns all chapters in the order the API returns them (ascending id)
func (c *Client) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	resp, err := c.request(ctx, "/chapters", url.Values{"language": {c.language}})
	if err != nil {
		return nil, wrapError("listChapters", 0, err)
	}

	result, err := parseResponse[models.ChaptersResponse](resp)
	if err != nil {
		return nil, wrapError("listChapters", 0, err)
	}
	if result.Chapters == nil {
		return nil, wrapError("listChapters", 0, fmt.Errorf("%w: missing chapters", ErrDecode))
	}
	return result.Chapters, nil
}

// LoadChapterVerses returns the verses of a chapter with translations and audio URLs.
//
// Translations are paired with verses by position: the Nth translation belongs to
// the Nth verse. If the translation request fails the verses are still returned,
// with empty translations.
func (c *Client) LoadChapterVerses(ctx context.Context, chapterID int) ([]models.Verse, error) {
	if chapterID < 1 || chapterID > models.ChapterCount {
		return nil, wrapError("loadVerses", chapterID, ErrInvalidChapter)
	}
	chapterParam := url.Values{"chapter_number": {strconv.Itoa(chapterID)}}

	resp, err := c.request(ctx, "/quran/verses/uthmani", chapterParam)
	if err != nil {
		return nil, wrapError("loadVerses", chapterID, err)
	}
	raw, err := parseResponse[models.VersesResponse](resp)
	if err != nil {
		return nil, wrapError("loadVerses", chapterID, err)
	}
	if raw.Verses == nil {
		return nil, wrapError("loadVerses", chapterID, fmt.Errorf("%w: missing verses", ErrDecode))
	}

	verses := make([]models.Verse, 0, len(raw.Verses))
	for _, rv := range raw.Verses {
		keyChapter, number, err := parseVerseKey(rv.VerseKey)
		if err != nil || keyChapter != chapterID {
			return nil, wrapError("loadVerses", chapterID,
				fmt.Errorf("%w: bad verse key %q", ErrDecode, rv.VerseKey))
		}
		verses = append(verses, models.Verse{
			ID:        rv.ID,
			ChapterID: chapterID,
			Number:    number,
			Key:       rv.VerseKey,
			Text:      rv.TextUthmani,
			AudioURL:  AudioURL(c.audioHost, c.reciter, chapterID, number),
		})
	}

	translations, err := c.loadTranslations(ctx, chapterID)
	if err != nil {
		c.logger.Warn("translations unavailable, continuing without",
			"chapter", chapterID,
			"error", err,
		)
		return verses, nil
	}
	if len(translations) != len(verses) {
		c.logger.Warn("translation count does not match verse count",
			"chapter", chapterID,
			"verses", len(verses),
			"translations", len(translations),
		)
	}
	for i := range verses {
		if i < len(translations) {
			verses[i].Translation = translations[i].Text
		}
	}

	return verses, nil
}

// loadTranslations fetches the configured translation for a chapter
func (c *Client) loadTranslations(ctx context.Context, chapterID int) ([]models.Translation, error) {
	path := fmt.Sprintf("/quran/translations/%d", c.translationID)
	resp, err := c.request(ctx, path, url.Values{"chapter_number": {strconv.Itoa(chapterID)}})
	if err != nil {
		return nil, wrapError("loadTranslations", chapterID, err)
	}
	result, err := parseResponse[models.TranslationsResponse](resp)
	if err != nil {
		return nil, wrapError("loadTranslations", chapterID, err)
	}
	if result.Translations == nil {
		return nil, wrapError("loadTranslations", chapterID, fmt.Errorf("%w: missing translations", ErrDecode))
	}
	return result.Translations, nil
}

// AudioURL derives the recitation URL for a verse
func AudioURL(host, reciter string, chapterID, verseNumber int) string {
	return fmt.Sprintf("https://%s/%s/mp3/%03d%03d.mp3", host, reciter, chapterID, verseNumber)
}

// parseVerseKey splits a "chapter:verse" key
func parseVerseKey(key string) (chapter, verse int, err error) {
	left, right, ok := strings.Cut(key, ":")
	if !ok {
		return 0, 0, fmt.Errorf("missing separator")
	}
	if chapter, err = strconv.Atoi(left); err != nil {
		return 0, 0, err
	}
	if verse, err = strconv.Atoi(right); err != nil {
		return 0, 0, err
	}
	if chapter < 1 || verse < 1 {
		return 0, 0, fmt.Errorf("non-positive component")
	}
	return chapter, verse, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
