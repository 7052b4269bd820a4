package models

// ChapterCount is the fixed number of chapters (surahs)
const ChapterCount = 114

// Revelation place constants
const (
	RevelationMakkah  = "makkah"
	RevelationMadinah = "madinah"
)

// TranslatedName is a chapter name in the requested language
type TranslatedName struct {
	LanguageName string `json:"language_name"`
	Name         string `json:"name"`
}

// Chapter represents a surah
type Chapter struct {
	ID              int            `json:"id"`
	RevelationPlace string         `json:"revelation_place"`
	RevelationOrder int            `json:"revelation_order"`
	BismillahPre    bool           `json:"bismillah_pre"`
	NameSimple      string         `json:"name_simple"`
	NameComplex     string         `json:"name_complex"`
	NameArabic      string         `json:"name_arabic"`
	VersesCount     int            `json:"verses_count"`
	Pages           []int          `json:"pages,omitempty"`
	TranslatedName  TranslatedName `json:"translated_name"`
}

// ShowsBismillah returns true if the bismillah is displayed above the verses.
// In chapter 1 it is the first verse, so it is never shown separately.
func (c *Chapter) ShowsBismillah() bool {
	return c.BismillahPre && c.ID != 1
}

// ChapterShowsBismillah is ShowsBismillah for a chapter whose metadata is not
// loaded: chapter 9 has none and chapter 1 carries it as its first verse.
func ChapterShowsBismillah(chapterID int) bool {
	return chapterID != 9 && chapterID != 1
}

// Verse represents an ayah with its translation and derived audio URL
type Verse struct {
	ID          int    `json:"id"`
	ChapterID   int    `json:"chapter_id"`
	Number      int    `json:"number"`
	Key         string `json:"verse_key"`
	Text        string `json:"text"`
	Translation string `json:"translation"`
	AudioURL    string `json:"audio_url"`
}

// Bookmark is the last-read position
type Bookmark struct {
	ChapterID   int    `json:"surahId"`
	VerseNumber int    `json:"ayahNumber"`
	ChapterName string `json:"surahName"`
}

// IsValid returns true if the bookmark points at a plausible verse
func (b Bookmark) IsValid() bool {
	return b.ChapterID >= 1 && b.ChapterID <= ChapterCount && b.VerseNumber >= 1
}

// ChaptersResponse represents the API response for listing chapters
type ChaptersResponse struct {
	Chapters []Chapter `json:"chapters"`
}

// RawVerse is a verse as returned by the uthmani text endpoint
type RawVerse struct {
	ID          int    `json:"id"`
	VerseKey    string `json:"verse_key"`
	TextUthmani string `json:"text_uthmani"`
}

// VersesResponse represents the uthmani verses response
type VersesResponse struct {
	Verses []RawVerse `json:"verses"`
}

// Translation is a single translated verse
type Translation struct {
	ResourceID int    `json:"resource_id"`
	Text       string `json:"text"`
}

// TranslationsResponse represents the translations response
type TranslationsResponse struct {
	Translations []Translation `json:"translations"`
}
