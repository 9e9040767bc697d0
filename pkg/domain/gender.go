package domain

import "strings"

// Gender is the internal gender code collected by the form.
type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Genders lists the selectable values in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// ParseGender maps a raw form value to a Gender. Anything other than
// male or female (case-insensitive) is unset.
func ParseGender(s string) Gender {
	switch Gender(strings.ToLower(strings.TrimSpace(s))) {
	case GenderMale:
		return GenderMale
	case GenderFemale:
		return GenderFemale
	}
	return GenderUnset
}

// IsSet reports whether g is one of the selectable values.
func (g Gender) IsSet() bool {
	return g == GenderMale || g == GenderFemale
}

func (g Gender) String() string { return string(g) }

var hebrewGender = map[Gender]string{
	GenderMale:   "זכר",
	GenderFemale: "נקבה",
}

// LocalizeGender returns the destination token for g: the Hebrew word in
// Hebrew, the raw code in any other language.
func LocalizeGender(g Gender, lang Language) string {
	if lang == Hebrew {
		if w, ok := hebrewGender[g]; ok {
			return w
		}
	}
	return string(g)
}
