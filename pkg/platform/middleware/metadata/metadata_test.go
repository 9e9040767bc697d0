package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"registration/pkg/requestcontext"
)

func TestMiddlewareHandler(t *testing.T) {
	tests := []struct {
		name           string
		headers        map[string]string
		remoteAddr     string
		trustedProxies []string
		expectedIP     string
		expectedUA     string
	}{
		{
			name:       "ignores XFF without trusted proxies",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.1", "User-Agent": "Mozilla/5.0"},
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
			expectedUA: "Mozilla/5.0",
		},
		{
			name:           "trusts XFF from trusted proxy",
			headers:        map[string]string{"X-Forwarded-For": "203.0.113.1, 10.0.0.2", "User-Agent": "curl/7.64.1"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "203.0.113.1",
			expectedUA:     "curl/7.64.1",
		},
		{
			name:           "trusts X-Real-IP from trusted proxy",
			headers:        map[string]string{"X-Real-IP": "198.51.100.4"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.1"},
			expectedIP:     "198.51.100.4",
		},
		{
			name:           "rejects malformed XFF",
			headers:        map[string]string{"X-Forwarded-For": "not-an-ip"},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.1",
		},
		{
			name:           "rejects oversized XFF",
			headers:        map[string]string{"X-Forwarded-For": strings.Repeat("1", MaxForwardedHeaderLength+1)},
			remoteAddr:     "10.0.0.1:12345",
			trustedProxies: []string{"10.0.0.0/8"},
			expectedIP:     "10.0.0.1",
		},
		{
			name:       "handles ipv6 remote address",
			remoteAddr: "[::1]:8080",
			expectedIP: "::1",
		},
		{
			name:       "unknown without remote address",
			remoteAddr: "",
			expectedIP: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured context.Context
			prefixes, err := ParseTrustedProxies(tt.trustedProxies)
			require.NoError(t, err)
			handler := NewMiddleware(prefixes).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured = r.Context()
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.expectedIP, requestcontext.ClientIP(captured))
			assert.Equal(t, tt.expectedUA, requestcontext.UserAgent(captured))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	prefixes, err := ParseTrustedProxies([]string{"10.1.2.3/8", " 192.168.0.1 ", ""})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.0.1/32"),
	}, prefixes)

	_, err = ParseTrustedProxies([]string{"nope"})
	assert.Error(t, err)
	_, err = ParseTrustedProxies([]string{"10.0.0.0/99"})
	assert.Error(t, err)
}
