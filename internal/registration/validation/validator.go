// Package validation checks a registration form snapshot and classifies
// every failing field into the required/format/range taxonomy.
package validation

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"

	"registration/internal/registration/models"
	"registration/pkg/domain"
	dErrors "registration/pkg/domain-errors"
	"registration/pkg/platform/middleware/requesttime"
	pkgvalidation "registration/pkg/validation"
)

var dialCodePattern = regexp.MustCompile(`^\+?\d{1,4}$`)

// Validator runs the form rules. It is stateless and safe for concurrent use;
// every call recomputes the result from the given fields.
type Validator struct {
	validate *validator.Validate
}

// New registers the form rules on top of the shared validator.
func New() *Validator {
	v := pkgvalidation.NewValidator()
	v.RegisterTagNameFunc(pkgvalidation.TagName("json"))

	_ = v.RegisterValidation("personname", func(fl validator.FieldLevel) bool {
		return domain.ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("nationalid", func(fl validator.FieldLevel) bool {
		return domain.ValidNationalID(fl.Field().String())
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return domain.ValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("dialcode", func(fl validator.FieldLevel) bool {
		return dialCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidationCtx("birthdate", func(ctx context.Context, fl validator.FieldLevel) bool {
		return domain.ValidBirthDate(fl.Field().String(), requesttime.Now(ctx))
	})

	return &Validator{validate: v}
}

// Validate checks fields against "today" taken from requesttime.Now(ctx).
// Fields that pass have no entry in the result.
func (v *Validator) Validate(ctx context.Context, fields models.FormFields) models.ValidationResult {
	result := models.ValidationResult{}
	err := v.validate.StructCtx(ctx, fields)
	if err == nil {
		return result
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return result
	}
	today := requesttime.Now(ctx)
	for _, fe := range errs {
		field := models.Field(fe.Field())
		result[field] = classify(field, fe.Tag(), fe.Value(), today)
	}
	return result
}

// classify maps a failed rule to its error kind and message key.
func classify(field models.Field, tag string, value any, today time.Time) models.FieldError {
	fe := models.FieldError{Field: field}
	raw, _ := value.(string)
	if g, ok := value.(domain.Gender); ok {
		raw = string(g)
	}

	if tag == "required" || tag == "notblank" {
		fe.Kind, fe.Key = models.KindRequired, models.MsgRequired
		if field == models.FieldGender {
			fe.Key = models.MsgInvalidGender
		}
		return fe
	}

	switch field {
	case models.FieldFirstName, models.FieldLastName:
		switch domain.ClassifyName(raw) {
		case domain.NameTooShort:
			fe.Kind, fe.Key = models.KindRange, models.MsgNameTooShort
		case domain.NameTooLong:
			fe.Kind, fe.Key = models.KindRange, models.MsgNameTooLong
		default:
			fe.Kind, fe.Key = models.KindFormat, models.MsgInvalidName
		}
	case models.FieldNationalID:
		if _, err := domain.ParseNationalID(raw); dErrors.HasCode(err, dErrors.CodeValidation) {
			fe.Kind, fe.Key = models.KindRange, models.MsgInvalidID
		} else {
			fe.Kind, fe.Key = models.KindFormat, models.MsgIDLength
		}
	case models.FieldBirthDate:
		switch domain.ClassifyBirthDate(raw, today) {
		case domain.BirthDateTooYoung:
			fe.Kind, fe.Key = models.KindRange, models.MsgAgeTooYoung
		case domain.BirthDateTooOld:
			fe.Kind, fe.Key = models.KindRange, models.MsgAgeTooOld
		default:
			fe.Kind, fe.Key = models.KindFormat, models.MsgInvalidDate
		}
	case models.FieldGender:
		fe.Kind, fe.Key = models.KindFormat, models.MsgInvalidGender
	case models.FieldPhone:
		fe.Kind, fe.Key = models.KindFormat, models.MsgInvalidPhone
	case models.FieldCountryCode:
		fe.Kind, fe.Key = models.KindFormat, models.MsgInvalidCountryCode
	}
	return fe
}
