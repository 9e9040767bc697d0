package device

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"registration/pkg/requestcontext"
)

const (
	iphoneUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	chromeUA  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	googlebot = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func TestClassify(t *testing.T) {
	assert.Equal(t, ClassMobile, Classify(iphoneUA))
	assert.Equal(t, ClassDesktop, Classify(chromeUA))
	assert.Equal(t, ClassBot, Classify(googlebot))
	assert.Equal(t, requestcontext.DeviceUnknown, Classify(""))
}

func TestDeviceMiddleware(t *testing.T) {
	t.Run("reads user agent from context", func(t *testing.T) {
		var class string
		handler := Device(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class = requestcontext.DeviceClass(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(requestcontext.WithClientMetadata(req.Context(), "10.0.0.1", iphoneUA))
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, ClassMobile, class)
	})

	t.Run("falls back to header", func(t *testing.T) {
		var class string
		handler := Device(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class = requestcontext.DeviceClass(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", chromeUA)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, ClassDesktop, class)
	})

	t.Run("missing user agent is unknown", func(t *testing.T) {
		var class string
		handler := Device(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class = requestcontext.DeviceClass(r.Context())
		}))

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, requestcontext.DeviceUnknown, class)
	})
}
