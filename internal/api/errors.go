package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for content API operations.
var (
	ErrNetwork        = errors.New("api: network error")
	ErrDecode         = errors.New("api: unexpected response shape")
	ErrInvalidChapter = errors.New("api: invalid chapter id")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op        string // Operation: "listChapters", "loadVerses", "loadTranslations"
	ChapterID int    // If applicable
	Err       error
}

func (e *Error) Error() string {
	if e.ChapterID != 0 {
		return fmt.Sprintf("api %s [chapter %d]: %v", e.Op, e.ChapterID, e.Err)
	}
	return fmt.Sprintf("api %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op string, chapterID int, err error) error {
	return &Error{
		Op:        op,
		ChapterID: chapterID,
		Err:       err,
	}
}
