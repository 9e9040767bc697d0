package httputil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "registration/pkg/domain-errors"
)

type testRequest struct {
	Name  string `json:"name" form:"name"`
	Value int    `json:"value" form:"value"`
}

type validatingRequest struct {
	Name string `json:"name" form:"name"`
}

func (r *validatingRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

type fullRequest struct {
	Name       string `json:"name"`
	sanitized  bool
	normalized bool
	validated  bool
}

func (r *fullRequest) Sanitize()  { r.sanitized = true }
func (r *fullRequest) Normalize() { r.normalized = true }
func (r *fullRequest) Validate() error {
	r.validated = true
	return nil
}

type domainErrorRequest struct {
	ID string `json:"id"`
}

func (r *domainErrorRequest) Validate() error {
	if r.ID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	return nil
}

var (
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	testCtx    = context.Background()
)

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded; charset=utf-8")
	return req
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestDecodeJSON(t *testing.T) {
	t.Run("successful decode", func(t *testing.T) {
		w := httptest.NewRecorder()
		result, ok := DecodeJSON[testRequest](w, jsonRequest(`{"name":"test","value":42}`), testLogger, testCtx, "rid")

		assert.True(t, ok)
		require.NotNil(t, result)
		assert.Equal(t, testRequest{Name: "test", Value: 42}, *result)
	})

	t.Run("invalid JSON returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		result, ok := DecodeJSON[testRequest](w, jsonRequest(`{invalid`), testLogger, testCtx, "rid")

		assert.False(t, ok)
		assert.Nil(t, result)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", errorBody(t, w).Error)
	})
}

func TestDecodeForm(t *testing.T) {
	t.Run("decodes by form tag", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := formRequest(url.Values{"name": {"דני"}, "value": {"7"}})

		result, ok := DecodeForm[testRequest](w, req, testLogger, testCtx, "rid")

		assert.True(t, ok)
		require.NotNil(t, result)
		assert.Equal(t, testRequest{Name: "דני", Value: 7}, *result)
	})

	t.Run("type mismatch returns 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := formRequest(url.Values{"value": {"seven"}})

		_, ok := DecodeForm[testRequest](w, req, testLogger, testCtx, "rid")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDecode(t *testing.T) {
	t.Run("json by content type", func(t *testing.T) {
		result, ok := Decode[testRequest](httptest.NewRecorder(), jsonRequest(`{"name":"a"}`), testLogger, testCtx, "rid")
		require.True(t, ok)
		assert.Equal(t, "a", result.Name)
	})

	t.Run("form by content type", func(t *testing.T) {
		result, ok := Decode[testRequest](httptest.NewRecorder(), formRequest(url.Values{"name": {"b"}}), testLogger, testCtx, "rid")
		require.True(t, ok)
		assert.Equal(t, "b", result.Name)
	})

	t.Run("other media types get 415", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("<x/>"))
		req.Header.Set("Content-Type", "application/xml")
		w := httptest.NewRecorder()

		_, ok := Decode[testRequest](w, req, testLogger, testCtx, "rid")

		assert.False(t, ok)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Equal(t, "unsupported_media_type", errorBody(t, w).Error)
	})
}

func TestDecodeAndPrepare(t *testing.T) {
	t.Run("calls all preparation methods", func(t *testing.T) {
		result, ok := DecodeAndPrepare[fullRequest](httptest.NewRecorder(), jsonRequest(`{"name":"x"}`), testLogger, testCtx, "rid")

		require.True(t, ok)
		assert.True(t, result.sanitized)
		assert.True(t, result.normalized)
		assert.True(t, result.validated)
	})

	t.Run("plain error becomes 422 validation_error", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[validatingRequest](w, formRequest(url.Values{}), testLogger, testCtx, "rid")

		assert.False(t, ok)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := errorBody(t, w)
		assert.Equal(t, "validation_error", resp.Error)
		assert.Equal(t, "name is required", resp.Description)
	})

	t.Run("preserves domain error code", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, ok := DecodeAndPrepare[domainErrorRequest](w, jsonRequest(`{"id":""}`), testLogger, testCtx, "rid")

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad_request", errorBody(t, w).Error)
	})
}

func TestPrepareRequest(t *testing.T) {
	assert.NoError(t, PrepareRequest(&validatingRequest{Name: "test"}))
	assert.EqualError(t, PrepareRequest(&validatingRequest{}), "name is required")
	assert.NoError(t, PrepareRequest(&testRequest{}))
}
