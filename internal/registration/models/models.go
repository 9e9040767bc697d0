// Package models holds the registration form's value objects: the submitted
// fields, the per-field validation result, and the values derived on submit.
package models

import (
	"sort"
	"strings"

	"registration/pkg/domain"
	dErrors "registration/pkg/domain-errors"
)

// Field names a form field. Values match the form and query parameter names.
type Field string

const (
	FieldFirstName   Field = "firstName"
	FieldLastName    Field = "lastName"
	FieldNationalID  Field = "idNumber"
	FieldBirthDate   Field = "birthDate"
	FieldGender      Field = "gender"
	FieldPhone       Field = "phone"
	FieldCountryCode Field = "countryCode"
)

// FormFields is the immutable snapshot of the form taken at submit time.
type FormFields struct {
	FirstName   string        `json:"firstName" validate:"notblank,personname"`
	LastName    string        `json:"lastName" validate:"notblank,personname"`
	NationalID  string        `json:"idNumber" validate:"notblank,nationalid"`
	BirthDate   string        `json:"birthDate" validate:"required,birthdate"`
	Gender      domain.Gender `json:"gender" validate:"required,oneof=male female"`
	Phone       string        `json:"phone" validate:"notblank,phone"`
	CountryCode string        `json:"countryCode" validate:"required,dialcode"`
}

// ErrorKind is the category of a field error.
type ErrorKind string

const (
	// KindRequired means the field is empty.
	KindRequired ErrorKind = "required"
	// KindFormat means the value is present but structurally invalid.
	KindFormat ErrorKind = "format"
	// KindRange means the value is well formed but outside domain bounds.
	KindRange ErrorKind = "range"
)

// MessageKey identifies a localizable error message.
type MessageKey string

const (
	MsgRequired           MessageKey = "required"
	MsgNameTooShort       MessageKey = "nameTooShort"
	MsgNameTooLong        MessageKey = "nameTooLong"
	MsgInvalidName        MessageKey = "invalidName"
	MsgIDLength           MessageKey = "idLength"
	MsgInvalidID          MessageKey = "invalidId"
	MsgInvalidDate        MessageKey = "invalidDate"
	MsgAgeTooYoung        MessageKey = "ageTooYoung"
	MsgAgeTooOld          MessageKey = "ageTooOld"
	MsgInvalidGender      MessageKey = "invalidGender"
	MsgInvalidPhone       MessageKey = "invalidPhone"
	MsgInvalidCountryCode MessageKey = "invalidCountryCode"
)

// FieldError describes why one field failed.
type FieldError struct {
	Field Field      `json:"field"`
	Kind  ErrorKind  `json:"kind"`
	Key   MessageKey `json:"key"`
}

// ValidationResult maps each failing field to its error. A field that
// passed never has an entry; an empty result means the form is valid.
type ValidationResult map[Field]FieldError

// Valid reports whether no field failed.
func (r ValidationResult) Valid() bool { return len(r) == 0 }

// Fields returns the failing field names in sorted order.
func (r ValidationResult) Fields() []Field {
	out := make([]Field, 0, len(r))
	for f := range r {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FieldErrors is returned by the service when a submission fails validation.
// It matches dErrors.CodeValidation.
type FieldErrors struct {
	Result ValidationResult
}

func (e *FieldErrors) Error() string {
	names := make([]string, 0, len(e.Result))
	for _, f := range e.Result.Fields() {
		names = append(names, string(f))
	}
	return "validation failed: " + strings.Join(names, ", ")
}

func (e *FieldErrors) Unwrap() error {
	return &dErrors.Error{Code: dErrors.CodeValidation}
}

// DerivedSubmission holds the values computed from valid fields at submit
// time. It lives only for the duration of one redirect.
type DerivedSubmission struct {
	Age             int
	IsMinor         bool
	SessionToken    string
	LocalizedGender string
	NormalizedPhone string
	BirthDay        string
	BirthMonth      string
	BirthYear       string
}

// Result is the outcome of a successful submission.
type Result struct {
	RedirectURL string
	Language    domain.Language
	Derived     DerivedSubmission
}
