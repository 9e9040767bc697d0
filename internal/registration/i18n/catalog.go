// Package i18n localizes validation messages and option labels for the
// supported languages.
package i18n

import (
	"fmt"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/he"
	ut "github.com/go-playground/universal-translator"

	"registration/internal/registration/models"
	"registration/pkg/domain"
)

var messages = map[domain.Language]map[models.MessageKey]string{
	domain.Hebrew: {
		models.MsgRequired:           "שדה חובה",
		models.MsgNameTooShort:       "השם חייב להכיל לפחות 2 תווים",
		models.MsgNameTooLong:        "השם יכול להכיל עד 50 תווים",
		models.MsgInvalidName:        "השם יכול להכיל אותיות בעברית או באנגלית, רווחים ומקפים בלבד",
		models.MsgIDLength:           "מספר תעודת זהות חייב להכיל 9 ספרות",
		models.MsgInvalidID:          "מספר תעודת זהות אינו תקין",
		models.MsgInvalidDate:        "תאריך לא תקין",
		models.MsgAgeTooYoung:        "הגיל המינימלי להרשמה הוא 10",
		models.MsgAgeTooOld:          "הגיל המקסימלי להרשמה הוא 120",
		models.MsgInvalidGender:      "יש לבחור מגדר",
		models.MsgInvalidPhone:       "מספר טלפון לא תקין",
		models.MsgInvalidCountryCode: "קידומת מדינה לא תקינה",
	},
	domain.English: {
		models.MsgRequired:           "This field is required",
		models.MsgNameTooShort:       "Name must be at least 2 characters",
		models.MsgNameTooLong:        "Name must be at most 50 characters",
		models.MsgInvalidName:        "Name may contain only Hebrew or English letters, spaces and hyphens",
		models.MsgIDLength:           "ID number must be 9 digits",
		models.MsgInvalidID:          "Invalid ID number",
		models.MsgInvalidDate:        "Invalid date",
		models.MsgAgeTooYoung:        "Minimum age to register is 10",
		models.MsgAgeTooOld:          "Maximum age to register is 120",
		models.MsgInvalidGender:      "Please select a gender",
		models.MsgInvalidPhone:       "Invalid phone number",
		models.MsgInvalidCountryCode: "Invalid country code",
	},
}

var genderLabels = map[domain.Language]map[domain.Gender]string{
	domain.Hebrew:  {domain.GenderMale: "זכר", domain.GenderFemale: "נקבה"},
	domain.English: {domain.GenderMale: "Male", domain.GenderFemale: "Female"},
}

// Catalog resolves message keys to localized text. English is the fallback
// for keys missing from a locale.
type Catalog struct {
	uni *ut.UniversalTranslator
}

// New loads the built-in messages for every supported language.
func New() (*Catalog, error) {
	fallback := en.New()
	uni := ut.New(fallback, fallback, he.New())

	for lang, entries := range messages {
		trans, ok := uni.GetTranslator(lang.String())
		if !ok {
			return nil, fmt.Errorf("no translator for %s", lang)
		}
		for key, text := range entries {
			if err := trans.Add(string(key), text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", lang, key, err)
			}
		}
		for g, text := range genderLabels[lang] {
			if err := trans.Add(genderKey(g), text, false); err != nil {
				return nil, fmt.Errorf("add %s/%s: %w", lang, g, err)
			}
		}
	}
	return &Catalog{uni: uni}, nil
}

// Message returns the text for key in lang, falling back to English and
// finally to the key itself.
func (c *Catalog) Message(lang domain.Language, key models.MessageKey) string {
	return c.lookup(lang, string(key))
}

// Localize renders a validation result as field name to message.
func (c *Catalog) Localize(lang domain.Language, result models.ValidationResult) map[string]string {
	out := make(map[string]string, len(result))
	for field, fe := range result {
		out[string(field)] = c.Message(lang, fe.Key)
	}
	return out
}

// GenderLabel returns the display label for g in lang.
func (c *Catalog) GenderLabel(lang domain.Language, g domain.Gender) string {
	return c.lookup(lang, genderKey(g))
}

func (c *Catalog) lookup(lang domain.Language, key string) string {
	for _, l := range []domain.Language{lang, domain.English} {
		trans, ok := c.uni.GetTranslator(l.String())
		if !ok {
			continue
		}
		if text, err := trans.T(key); err == nil {
			return text
		}
	}
	return key
}

func genderKey(g domain.Gender) string { return "gender." + string(g) }
