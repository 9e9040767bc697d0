package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"registration/internal/registration/i18n"
	"registration/internal/registration/models"
	"registration/pkg/domain"
	"registration/pkg/platform/httputil"
	"registration/pkg/requestcontext"
)

// Service is the registration use case the handler drives.
type Service interface {
	Submit(ctx context.Context, fields models.FormFields, lang domain.Language) (*models.Result, error)
	Validate(ctx context.Context, fields models.FormFields) models.ValidationResult
	DefaultLanguage() domain.Language
}

type Handler struct {
	service Service
	catalog *i18n.Catalog
	logger  *slog.Logger
}

func New(service Service, catalog *i18n.Catalog, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		catalog: catalog,
		logger:  logger,
	}
}

// Register mounts the registration routes.
func (h *Handler) Register(r chi.Router) {
	r.Post("/registrations", h.HandleSubmit)
	r.Post("/registrations/validate", h.HandleValidate)
	r.Get("/registrations/options", h.HandleOptions)
}

// HandleSubmit implements POST /registrations.
// A urlencoded form post is answered with 303 See Other to the destination;
// a JSON post gets {"redirect_url": ...}. Invalid fields yield 422 with
// localized messages per field.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.SubmissionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	lang := h.resolveLanguage(r, req.Language)

	result, err := h.service.Submit(ctx, req.Fields(), lang)
	if err != nil {
		var fieldErrs *models.FieldErrors
		if errors.As(err, &fieldErrs) {
			h.writeFieldErrors(w, lang, fieldErrs.Result)
			return
		}
		h.logger.ErrorContext(ctx, "registration submit failed",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, err)
		return
	}

	if httputil.IsForm(r) {
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, models.SubmitResponse{
		RedirectURL: result.RedirectURL,
		Language:    result.Language,
	})
}

// HandleValidate implements POST /registrations/validate. It always answers
// 200 with the full recomputed result so a client can render inline errors.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.SubmissionRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	lang := h.resolveLanguage(r, req.Language)
	result := h.service.Validate(ctx, req.Fields())

	httputil.WriteJSON(w, http.StatusOK, models.ValidateResponse{
		Valid:    result.Valid(),
		Language: lang,
		Fields:   h.describe(lang, result),
	})
}

// HandleOptions implements GET /registrations/options: the selectable
// languages, genders and dial codes, labelled in the requested language.
func (h *Handler) HandleOptions(w http.ResponseWriter, r *http.Request) {
	lang := h.resolveLanguage(r, r.URL.Query().Get("language"))

	languages := make([]models.LanguageOption, 0, len(domain.Languages))
	for _, l := range domain.Languages {
		languages = append(languages, models.LanguageOption{Code: l, RTL: l.IsRTL()})
	}
	genders := make([]models.GenderOption, 0, len(domain.Genders))
	for _, g := range domain.Genders {
		genders = append(genders, models.GenderOption{Value: g, Label: h.catalog.GenderLabel(lang, g)})
	}

	httputil.WriteJSON(w, http.StatusOK, models.OptionsResponse{
		Language:        lang,
		DefaultLanguage: h.service.DefaultLanguage(),
		Languages:       languages,
		Genders:         genders,
		DialCodes:       domain.DialCodes,
		DefaultDialCode: domain.DefaultDialCode,
	})
}

// resolveLanguage prefers an explicit supported value, then the
// Accept-Language header, then the service default.
func (h *Handler) resolveLanguage(r *http.Request, explicit string) domain.Language {
	if explicit != "" {
		if lang, err := domain.ParseLanguage(explicit); err == nil {
			return lang
		}
	}
	return domain.MatchLanguage(r.Header.Get("Accept-Language"), h.service.DefaultLanguage())
}

func (h *Handler) writeFieldErrors(w http.ResponseWriter, lang domain.Language, result models.ValidationResult) {
	httputil.WriteJSON(w, http.StatusUnprocessableEntity, models.FieldErrorsResponse{
		Error:    "validation_error",
		Language: lang,
		Fields:   h.catalog.Localize(lang, result),
		Details:  h.describe(lang, result),
	})
}

func (h *Handler) describe(lang domain.Language, result models.ValidationResult) map[string]models.FieldErrorDetail {
	out := make(map[string]models.FieldErrorDetail, len(result))
	for field, fe := range result {
		out[string(field)] = models.FieldErrorDetail{
			Kind:    fe.Kind,
			Key:     fe.Key,
			Message: h.catalog.Message(lang, fe.Key),
		}
	}
	return out
}
