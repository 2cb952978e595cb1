package documents

import (
	"errors"
	"unicode/utf8"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

// maxErrorLength bounds how much of a store's error message is surfaced.
const maxErrorLength = 80

// StorageWriteError reports an insert the store rejected. Message is the
// store's error text truncated to maxErrorLength characters.
type StorageWriteError struct {
	Collection string
	Message    string
	Err        error
}

func (e *StorageWriteError) Error() string {
	return "storage write failed: " + e.Message
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}

// Truncate shortens s to at most maxErrorLength runes.
func Truncate(s string) string {
	if utf8.RuneCountInString(s) <= maxErrorLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxErrorLength])
}
