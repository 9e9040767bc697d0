package models

import "registration/pkg/domain"

// SubmitResponse answers a JSON submission.
type SubmitResponse struct {
	RedirectURL string          `json:"redirect_url"`
	Language    domain.Language `json:"language"`
}

// FieldErrorDetail is one failing field as rendered to clients.
type FieldErrorDetail struct {
	Kind    ErrorKind  `json:"kind"`
	Key     MessageKey `json:"key"`
	Message string     `json:"message"`
}

// FieldErrorsResponse is the 422 body of a rejected submission. Fields maps
// each failing field to its localized message.
type FieldErrorsResponse struct {
	Error    string                      `json:"error"`
	Language domain.Language             `json:"language"`
	Fields   map[string]string           `json:"fields"`
	Details  map[string]FieldErrorDetail `json:"details"`
}

type ValidateResponse struct {
	Valid    bool                        `json:"valid"`
	Language domain.Language             `json:"language"`
	Fields   map[string]FieldErrorDetail `json:"fields"`
}

type LanguageOption struct {
	Code domain.Language `json:"code"`
	RTL  bool            `json:"rtl"`
}

type GenderOption struct {
	Value domain.Gender `json:"value"`
	Label string        `json:"label"`
}

type OptionsResponse struct {
	Language        domain.Language   `json:"language"`
	DefaultLanguage domain.Language   `json:"default_language"`
	Languages       []LanguageOption  `json:"languages"`
	Genders         []GenderOption    `json:"genders"`
	DialCodes       []domain.DialCode `json:"dial_codes"`
	DefaultDialCode string            `json:"default_dial_code"`
}
