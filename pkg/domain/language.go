package domain

import (
	"strings"

	"golang.org/x/text/language"

	dErrors "registration/pkg/domain-errors"
)

// Language is one of the two supported UI locales.
type Language string

const (
	Hebrew  Language = "he"
	English Language = "en"
)

// DefaultLanguage is used when nothing else selects a locale.
const DefaultLanguage = Hebrew

// Languages lists the supported locales, default first.
var Languages = []Language{Hebrew, English}

var matcher = language.NewMatcher([]language.Tag{language.Hebrew, language.English})

// ParseLanguage accepts a BCP 47 tag whose base language is he or en
// ("he", "he-IL", "EN_us"). The legacy "iw" code maps to Hebrew.
func ParseLanguage(s string) (Language, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "-")
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "language cannot be empty")
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid language tag")
	}
	base, _ := tag.Base()
	switch base.String() {
	case "he", "iw":
		return Hebrew, nil
	case "en":
		return English, nil
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, "unsupported language: "+s)
}

// MatchLanguage negotiates an Accept-Language header value against the
// supported locales, returning fallback when nothing matches.
func MatchLanguage(acceptLanguage string, fallback Language) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	return Languages[idx]
}

func (l Language) String() string { return string(l) }

// IsRTL reports whether the locale is written right to left.
func (l Language) IsRTL() bool { return l == Hebrew }
