package booking

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const MaxNoteLength = 1000

var ErrNoteTooLong = errors.New("note is too long (max 1000 characters)")

type Note struct {
	value string
}

func NewNote(value string) (Note, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > MaxNoteLength {
		return Note{}, ErrNoteTooLong
	}
	return Note{value: value}, nil
}

func (n Note) String() string {
	return n.value
}

func (n Note) IsEmpty() bool {
	return n.value == ""
}

// Ptr returns nil for an empty note.
func (n Note) Ptr() *string {
	if n.IsEmpty() {
		return nil
	}
	v := n.value
	return &v
}
