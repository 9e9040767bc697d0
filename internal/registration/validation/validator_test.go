package validation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"registration/internal/registration/models"
	"registration/pkg/domain"
	"registration/pkg/platform/middleware/requesttime"
)

type ValidatorSuite struct {
	suite.Suite
	validator *Validator
	ctx       context.Context
}

func TestValidatorSuite(t *testing.T) {
	suite.Run(t, new(ValidatorSuite))
}

func (s *ValidatorSuite) SetupSuite() {
	s.validator = New()
	s.ctx = requesttime.WithTime(context.Background(), time.Date(2024, 7, 13, 12, 0, 0, 0, time.UTC))
}

func validFields() models.FormFields {
	return models.FormFields{
		FirstName:   "דני",
		LastName:    "כהן",
		NationalID:  "123456782",
		BirthDate:   "2010-07-14",
		Gender:      domain.GenderMale,
		Phone:       "0541234567",
		CountryCode: "+972",
	}
}

func (s *ValidatorSuite) TestValidForm() {
	result := s.validator.Validate(s.ctx, validFields())
	s.True(result.Valid())
	s.Empty(result)
}

func (s *ValidatorSuite) TestEmptyFormReportsEveryField() {
	result := s.validator.Validate(s.ctx, models.FormFields{})

	s.Len(result, 7)
	for _, f := range []models.Field{
		models.FieldFirstName, models.FieldLastName, models.FieldNationalID,
		models.FieldBirthDate, models.FieldPhone, models.FieldCountryCode,
	} {
		s.Equal(models.FieldError{Field: f, Kind: models.KindRequired, Key: models.MsgRequired}, result[f], f)
	}
	s.Equal(models.FieldError{Field: models.FieldGender, Kind: models.KindRequired, Key: models.MsgInvalidGender}, result[models.FieldGender])
}

func (s *ValidatorSuite) TestFieldClassification() {
	tests := []struct {
		name   string
		mutate func(*models.FormFields)
		field  models.Field
		kind   models.ErrorKind
		key    models.MessageKey
	}{
		{"whitespace-only name", func(f *models.FormFields) { f.FirstName = "   " }, models.FieldFirstName, models.KindRequired, models.MsgRequired},
		{"one letter name", func(f *models.FormFields) { f.LastName = "א" }, models.FieldLastName, models.KindRange, models.MsgNameTooShort},
		{"long name", func(f *models.FormFields) { f.FirstName = strings.Repeat("a", 51) }, models.FieldFirstName, models.KindRange, models.MsgNameTooLong},
		{"name with digits", func(f *models.FormFields) { f.FirstName = "Dan1" }, models.FieldFirstName, models.KindFormat, models.MsgInvalidName},
		{"short id", func(f *models.FormFields) { f.NationalID = "12345678" }, models.FieldNationalID, models.KindFormat, models.MsgIDLength},
		{"id with letters", func(f *models.FormFields) { f.NationalID = "12345678a" }, models.FieldNationalID, models.KindFormat, models.MsgIDLength},
		{"bad id checksum", func(f *models.FormFields) { f.NationalID = "123456783" }, models.FieldNationalID, models.KindRange, models.MsgInvalidID},
		{"non-calendar date", func(f *models.FormFields) { f.BirthDate = "2023-02-30" }, models.FieldBirthDate, models.KindFormat, models.MsgInvalidDate},
		{"garbage date", func(f *models.FormFields) { f.BirthDate = "14/07/2010" }, models.FieldBirthDate, models.KindFormat, models.MsgInvalidDate},
		{"too young", func(f *models.FormFields) { f.BirthDate = "2014-07-14" }, models.FieldBirthDate, models.KindRange, models.MsgAgeTooYoung},
		{"future date", func(f *models.FormFields) { f.BirthDate = "2030-01-01" }, models.FieldBirthDate, models.KindRange, models.MsgAgeTooYoung},
		{"too old", func(f *models.FormFields) { f.BirthDate = "1900-01-01" }, models.FieldBirthDate, models.KindRange, models.MsgAgeTooOld},
		{"unset gender", func(f *models.FormFields) { f.Gender = domain.GenderUnset }, models.FieldGender, models.KindRequired, models.MsgInvalidGender},
		{"unknown gender", func(f *models.FormFields) { f.Gender = domain.Gender("other") }, models.FieldGender, models.KindFormat, models.MsgInvalidGender},
		{"short phone", func(f *models.FormFields) { f.Phone = "054-12" }, models.FieldPhone, models.KindFormat, models.MsgInvalidPhone},
		{"long phone", func(f *models.FormFields) { f.Phone = "1234567890123456" }, models.FieldPhone, models.KindFormat, models.MsgInvalidPhone},
		{"bad dial code", func(f *models.FormFields) { f.CountryCode = "972x" }, models.FieldCountryCode, models.KindFormat, models.MsgInvalidCountryCode},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			fields := validFields()
			tt.mutate(&fields)

			result := s.validator.Validate(s.ctx, fields)

			s.Require().Len(result, 1, "only %s should fail", tt.field)
			s.Equal(models.FieldError{Field: tt.field, Kind: tt.kind, Key: tt.key}, result[tt.field])
		})
	}
}

func (s *ValidatorSuite) TestAgeBoundariesFollowRequestTime() {
	fields := validFields()
	fields.BirthDate = "2014-07-13"

	tenthBirthday := requesttime.WithTime(context.Background(), time.Date(2024, 7, 13, 0, 0, 0, 0, time.UTC))
	s.True(s.validator.Validate(tenthBirthday, fields).Valid())

	dayBefore := requesttime.WithTime(context.Background(), time.Date(2024, 7, 12, 23, 59, 0, 0, time.UTC))
	result := s.validator.Validate(dayBefore, fields)
	s.Equal(models.MsgAgeTooYoung, result[models.FieldBirthDate].Key)
}

func (s *ValidatorSuite) TestResultIsRecomputed() {
	fields := validFields()
	fields.Phone = ""
	s.False(s.validator.Validate(s.ctx, fields).Valid())

	fields.Phone = "0541234567"
	s.True(s.validator.Validate(s.ctx, fields).Valid())
}
