package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"

	"github.com/go-playground/form/v4"

	dErrors "registration/pkg/domain-errors"
)

// Media types accepted by Decode.
const (
	MediaTypeJSON = "application/json"
	MediaTypeForm = "application/x-www-form-urlencoded"
)

// formDecoder is safe for concurrent use and caches struct metadata.
var formDecoder = form.NewDecoder()

// DecodeJSON decodes a JSON request body into the target type.
// On failure it writes a 400 and returns nil, false.
//
// Usage:
//
//	req, ok := httputil.DecodeJSON[models.SubmissionRequest](w, r, h.logger, ctx, requestID)
//	if !ok {
//	    return
//	}
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(ctx, "failed to decode request body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &req, true
}

// DecodeForm decodes an application/x-www-form-urlencoded body into the
// target type using its `form` struct tags. On failure it writes a 400 and
// returns nil, false.
func DecodeForm[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	var req T
	err := r.ParseForm()
	if err == nil {
		err = formDecoder.Decode(&req, r.PostForm)
	}
	if err != nil {
		logger.WarnContext(ctx, "failed to decode form body",
			"error", err,
			"request_id", requestID,
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid form body"))
		return nil, false
	}
	return &req, true
}

// MediaType returns the request's media type without parameters, or "" when
// the header is missing or malformed.
func MediaType(r *http.Request) string {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mediaType
}

// IsForm reports whether the request body is urlencoded form data.
func IsForm(r *http.Request) bool {
	return MediaType(r) == MediaTypeForm
}

// Decode picks DecodeForm or DecodeJSON by Content-Type. Other media types
// get a 415.
func Decode[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	switch MediaType(r) {
	case MediaTypeForm:
		return DecodeForm[T](w, r, logger, ctx, requestID)
	case MediaTypeJSON:
		return DecodeJSON[T](w, r, logger, ctx, requestID)
	}
	WriteError(w, dErrors.New(dErrors.CodeUnsupported, "Content-Type must be application/json or application/x-www-form-urlencoded"))
	return nil, false
}

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization.
type Normalizable interface {
	Normalize()
}

// Sanitizable is implemented by request types that support sanitization.
type Sanitizable interface {
	Sanitize()
}

// PrepareRequest sanitizes, normalizes, and validates a request, in that
// order, for whichever of the interfaces req implements.
func PrepareRequest(req any) error {
	if s, ok := req.(Sanitizable); ok {
		s.Sanitize()
	}
	if n, ok := req.(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := req.(Validatable); ok {
		return v.Validate()
	}
	return nil
}

// DecodeAndPrepare combines Decode with PrepareRequest.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger, ctx context.Context, requestID string) (*T, bool) {
	req, ok := Decode[T](w, r, logger, ctx, requestID)
	if !ok {
		return nil, false
	}

	if err := PrepareRequest(req); err != nil {
		logger.WarnContext(ctx, "invalid request",
			"error", err,
			"request_id", requestID,
		)
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			WriteError(w, err)
		} else {
			WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
		}
		return nil, false
	}

	return req, true
}
