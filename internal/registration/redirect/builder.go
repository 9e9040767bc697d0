// Package redirect derives the submit-time values of a valid registration
// and encodes them into the destination form URL.
package redirect

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"registration/internal/registration/models"
	"registration/pkg/domain"
	dErrors "registration/pkg/domain-errors"
)

// DefaultBaseURL is the destination used when none is configured.
const DefaultBaseURL = "https://form.jotform.com/YOUR_FORM_ID"

// Query parameter names understood by the destination form.
const (
	ParamFirstName    = "firstName"
	ParamLastName     = "lastName"
	ParamIDNumber     = "idNumber"
	ParamGender       = "gender"
	ParamPhone        = "phone"
	ParamAge          = "age"
	ParamIsMinor      = "isMinor"
	ParamSessionToken = "sessionToken"
	ParamLanguage     = "language"
	ParamBirthDay     = "birthDate[day]"
	ParamBirthMonth   = "birthDate[month]"
	ParamBirthYear    = "birthDate[year]"
)

// Builder encodes submissions against a fixed base URL.
type Builder struct {
	base *url.URL
}

// NewBuilder validates rawBase: it must be an absolute http or https URL.
func NewBuilder(rawBase string) (*Builder, error) {
	u, err := url.Parse(strings.TrimSpace(rawBase))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "invalid destination url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "destination url must use http or https")
	}
	if u.Host == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "destination url must have a host")
	}
	return &Builder{base: u}, nil
}

// Base returns the configured destination without any submission values.
func (b *Builder) Base() string {
	return b.base.String()
}

// Build returns the destination URL. Standard parameters come first in a
// fixed order, each query-escaped; the three birth date parts follow with
// literal brackets in their keys. Parameters already present on the base
// URL are kept in front.
func (b *Builder) Build(fields models.FormFields, d models.DerivedSubmission, lang domain.Language) string {
	q := queryWriter{}
	q.raw(b.base.RawQuery)
	q.add(ParamFirstName, fields.FirstName)
	q.add(ParamLastName, fields.LastName)
	q.add(ParamIDNumber, fields.NationalID)
	q.add(ParamGender, d.LocalizedGender)
	q.add(ParamPhone, d.NormalizedPhone)
	q.add(ParamAge, strconv.Itoa(d.Age))
	q.add(ParamIsMinor, strconv.FormatBool(d.IsMinor))
	q.add(ParamSessionToken, d.SessionToken)
	q.add(ParamLanguage, lang.String())
	q.addBracketed(ParamBirthDay, d.BirthDay)
	q.addBracketed(ParamBirthMonth, d.BirthMonth)
	q.addBracketed(ParamBirthYear, d.BirthYear)

	u := *b.base
	u.RawQuery = q.String()
	return u.String()
}

// Derive computes the values sent alongside the form fields. fields must
// already be valid; an unparseable birth date is reported as
// CodeInvalidInput. today is read in its own location.
func Derive(fields models.FormFields, today time.Time, token string, lang domain.Language) (models.DerivedSubmission, error) {
	birth, err := domain.ParseBirthDate(fields.BirthDate)
	if err != nil {
		return models.DerivedSubmission{}, err
	}
	age := domain.CalculateAge(birth, today)
	day, month, year := birth.Parts()
	return models.DerivedSubmission{
		Age:             age,
		IsMinor:         domain.IsMinor(age),
		SessionToken:    token,
		LocalizedGender: domain.LocalizeGender(fields.Gender, lang),
		NormalizedPhone: domain.NormalizePhone(fields.Phone, fields.CountryCode),
		BirthDay:        day,
		BirthMonth:      month,
		BirthYear:       year,
	}, nil
}

// queryWriter appends key=value pairs in call order. url.Values would sort
// the keys and escape the brackets.
type queryWriter struct {
	strings.Builder
}

func (q *queryWriter) raw(s string) {
	if s == "" {
		return
	}
	q.sep()
	q.WriteString(s)
}

func (q *queryWriter) add(key, value string) {
	q.sep()
	q.WriteString(url.QueryEscape(key))
	q.WriteByte('=')
	q.WriteString(url.QueryEscape(value))
}

func (q *queryWriter) addBracketed(key, value string) {
	q.sep()
	q.WriteString(key)
	q.WriteByte('=')
	q.WriteString(url.QueryEscape(value))
}

func (q *queryWriter) sep() {
	if q.Len() > 0 {
		q.WriteByte('&')
	}
}
