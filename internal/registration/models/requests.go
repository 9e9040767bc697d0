package models

import (
	"registration/pkg/domain"
	s "registration/pkg/string"
)

// SubmissionRequest is the wire shape of a form post, accepted either as
// application/x-www-form-urlencoded or as JSON.
type SubmissionRequest struct {
	FirstName   string `form:"firstName" json:"firstName"`
	LastName    string `form:"lastName" json:"lastName"`
	IDNumber    string `form:"idNumber" json:"idNumber"`
	BirthDate   string `form:"birthDate" json:"birthDate"`
	Gender      string `form:"gender" json:"gender"`
	Phone       string `form:"phone" json:"phone"`
	CountryCode string `form:"countryCode" json:"countryCode"`
	Language    string `form:"language" json:"language"`
}

// Normalize fills the default dial code and trims fields whose surrounding
// whitespace carries no meaning. Names are kept as typed.
func (r *SubmissionRequest) Normalize() {
	s.TrimStrings(&r.IDNumber, &r.BirthDate, &r.CountryCode, &r.Language)
	if r.CountryCode == "" {
		r.CountryCode = domain.DefaultDialCode
	}
}

// Fields converts the request into the immutable form snapshot.
func (r SubmissionRequest) Fields() FormFields {
	return FormFields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		NationalID:  r.IDNumber,
		BirthDate:   r.BirthDate,
		Gender:      domain.ParseGender(r.Gender),
		Phone:       r.Phone,
		CountryCode: r.CountryCode,
	}
}
