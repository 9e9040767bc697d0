package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Name length bounds, measured on the trimmed value.
const (
	MinNameLength = 2
	MaxNameLength = 50
)

// NameProblem explains why a name was rejected.
type NameProblem int

const (
	NameOK NameProblem = iota
	NameEmpty
	NameTooShort
	NameTooLong
	NameInvalidChars
)

// ValidName reports whether name is an acceptable first or last name:
// 2 to 50 characters once trimmed, made only of Hebrew letters, Latin
// letters, whitespace and hyphens.
func ValidName(name string) bool {
	return ClassifyName(name) == NameOK
}

// ClassifyName returns the first problem found with name. Length problems
// are reported ahead of character problems.
func ClassifyName(name string) NameProblem {
	n := utf8.RuneCountInString(strings.TrimSpace(name))
	switch {
	case n == 0:
		return NameEmpty
	case n < MinNameLength:
		return NameTooShort
	case n > MaxNameLength:
		return NameTooLong
	}
	for _, r := range name {
		if !isNameRune(r) {
			return NameInvalidChars
		}
	}
	return NameOK
}

func isNameRune(r rune) bool {
	switch {
	case r >= 0x0590 && r <= 0x05FF:
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r == '-':
		return true
	}
	return unicode.IsSpace(r)
}
