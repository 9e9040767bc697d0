package service

import (
	"context"
	"log/slog"
	"time"

	"registration/internal/platform/tracer"
	"registration/internal/registration/metrics"
	"registration/internal/registration/models"
	"registration/internal/registration/redirect"
	"registration/pkg/domain"
	dErrors "registration/pkg/domain-errors"
	"registration/pkg/platform/middleware/requesttime"
	"registration/pkg/platform/privacy"
	"registration/pkg/requestcontext"
)

// Validator checks a form snapshot against today's date in ctx.
type Validator interface {
	Validate(ctx context.Context, fields models.FormFields) models.ValidationResult
}

// TokenGenerator issues a fresh session token per call.
type TokenGenerator interface {
	Generate() string
}

// URLBuilder encodes a valid submission into the destination URL.
type URLBuilder interface {
	Build(fields models.FormFields, derived models.DerivedSubmission, lang domain.Language) string
}

type Option func(*Service)

// Service turns a submitted form into a destination redirect. It holds no
// per-submission state.
type Service struct {
	validator       Validator
	tokens          TokenGenerator
	urls            URLBuilder
	logger          *slog.Logger
	metrics         *metrics.Metrics
	tracer          tracer.Tracer
	location        *time.Location
	defaultLanguage domain.Language
}

func New(validator Validator, tokens TokenGenerator, urls URLBuilder, logger *slog.Logger, opts ...Option) *Service {
	svc := &Service{
		validator:       validator,
		tokens:          tokens,
		urls:            urls,
		logger:          logger,
		tracer:          tracer.NewNoop(),
		location:        time.UTC,
		defaultLanguage: domain.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// WithLocation sets the time zone whose calendar date counts as "today"
// for age checks.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithDefaultLanguage is used when Submit is called without a language.
func WithDefaultLanguage(lang domain.Language) Option {
	return func(s *Service) {
		if lang != "" {
			s.defaultLanguage = lang
		}
	}
}

// DefaultLanguage returns the language used when none is requested.
func (s *Service) DefaultLanguage() domain.Language {
	return s.defaultLanguage
}

// Validate recomputes the full validation result for fields.
func (s *Service) Validate(ctx context.Context, fields models.FormFields) models.ValidationResult {
	ctx, span := s.tracer.Start(ctx, tracer.SpanValidate)
	result := s.validator.Validate(s.withLocalToday(ctx), fields)
	span.SetAttributes(
		tracer.Bool(tracer.AttrValid, result.Valid()),
		tracer.Int(tracer.AttrFailedCount, len(result)),
	)
	span.End(nil)
	return result
}

// Submit validates fields and, when they pass, derives the submission
// values with a fresh session token and returns the destination URL.
// Failing fields are returned as *models.FieldErrors.
func (s *Service) Submit(ctx context.Context, fields models.FormFields, lang domain.Language) (_ *models.Result, err error) {
	start := time.Now()
	if lang == "" {
		lang = s.defaultLanguage
	}
	ctx = s.withLocalToday(ctx)
	ctx, span := s.tracer.Start(ctx, tracer.SpanSubmit,
		tracer.String(tracer.AttrLanguage, lang.String()),
		tracer.String(tracer.AttrNationalID, tracer.HashNationalID(fields.NationalID)),
	)
	defer func() {
		span.End(err)
		if s.metrics != nil {
			s.metrics.ObserveSubmitLatency(time.Since(start).Seconds())
		}
	}()

	device := requestcontext.DeviceClass(ctx)
	result := s.validator.Validate(ctx, fields)
	span.SetAttributes(tracer.Bool(tracer.AttrValid, result.Valid()))
	if !result.Valid() {
		s.recordRejection(ctx, result, device)
		return nil, &models.FieldErrors{Result: result}
	}

	today := requesttime.Now(ctx)
	token := s.tokens.Generate()
	span.AddEvent(tracer.EventTokenIssued)

	derived, err := redirect.Derive(fields, today, token, lang)
	if err != nil {
		s.incrementSubmission(metrics.OutcomeError, device)
		// Validated fields that cannot be derived are a server fault, not
		// the caller's input error.
		return nil, &dErrors.Error{Code: dErrors.CodeInternal, Message: "failed to derive submission values", Err: err}
	}
	span.SetAttributes(
		tracer.Int(tracer.AttrAge, derived.Age),
		tracer.Bool(tracer.AttrIsMinor, derived.IsMinor),
	)

	_, buildSpan := s.tracer.Start(ctx, tracer.SpanBuildURL)
	destination := s.urls.Build(fields, derived, lang)
	buildSpan.End(nil)

	s.incrementSubmission(metrics.OutcomeRedirected, device)
	if derived.IsMinor && s.metrics != nil {
		s.metrics.IncrementMinor()
	}
	s.logger.InfoContext(ctx, "registration redirected",
		"request_id", requestcontext.RequestID(ctx),
		privacy.KeyNationalID, fields.NationalID,
		privacy.KeyPhone, derived.NormalizedPhone,
		"age", derived.Age,
		"is_minor", derived.IsMinor,
		"language", lang.String(),
		"device", device,
	)

	return &models.Result{
		RedirectURL: destination,
		Language:    lang,
		Derived:     derived,
	}, nil
}

func (s *Service) recordRejection(ctx context.Context, result models.ValidationResult, device string) {
	fields := make([]string, 0, len(result))
	for _, f := range result.Fields() {
		fields = append(fields, string(f))
		if s.metrics != nil {
			s.metrics.IncrementValidationFailure(string(f), string(result[f].Key))
		}
	}
	s.incrementSubmission(metrics.OutcomeInvalid, device)
	s.logger.InfoContext(ctx, "registration rejected",
		"request_id", requestcontext.RequestID(ctx),
		"failed_fields", fields,
		"device", device,
	)
}

func (s *Service) incrementSubmission(outcome, device string) {
	if s.metrics != nil {
		s.metrics.IncrementSubmission(outcome, device)
	}
}

// withLocalToday pins the request time in ctx to the service's time zone so
// calendar comparisons use the local date.
func (s *Service) withLocalToday(ctx context.Context) context.Context {
	return requesttime.WithTime(ctx, requesttime.Now(ctx).In(s.location))
}
