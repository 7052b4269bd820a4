package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChapter_ShowsBismillah(t *testing.T) {
	tests := []struct {
		name    string
		chapter Chapter
		want    bool
	}{
		{"flagged", Chapter{ID: 2, BismillahPre: true}, true},
		{"not flagged", Chapter{ID: 9, BismillahPre: false}, false},
		{"first chapter carries it as a verse", Chapter{ID: 1, BismillahPre: true}, false},
		{"flag wins over id", Chapter{ID: 18, BismillahPre: false}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.chapter.ShowsBismillah())
		})
	}
}

func TestChapterShowsBismillah(t *testing.T) {
	assert.False(t, ChapterShowsBismillah(1))
	assert.False(t, ChapterShowsBismillah(9))
	assert.True(t, ChapterShowsBismillah(2))
	assert.True(t, ChapterShowsBismillah(114))
}

func TestBookmark_IsValid(t *testing.T) {
	assert.True(t, Bookmark{ChapterID: 1, VerseNumber: 1}.IsValid())
	assert.True(t, Bookmark{ChapterID: ChapterCount, VerseNumber: 6}.IsValid())
	assert.False(t, Bookmark{ChapterID: 0, VerseNumber: 1}.IsValid())
	assert.False(t, Bookmark{ChapterID: 115, VerseNumber: 1}.IsValid())
	assert.False(t, Bookmark{ChapterID: 2, VerseNumber: 0}.IsValid())
}
