package device

import (
	"net/http"

	"github.com/mssola/useragent"

	"registration/pkg/requestcontext"
)

// Device classes reported in metrics labels.
const (
	ClassBot     = "bot"
	ClassMobile  = "mobile"
	ClassDesktop = "desktop"
)

// Classify reduces a User-Agent string to a coarse device class.
func Classify(userAgent string) string {
	if userAgent == "" {
		return requestcontext.DeviceUnknown
	}
	ua := useragent.New(userAgent)
	switch {
	case ua.Bot():
		return ClassBot
	case ua.Mobile():
		return ClassMobile
	default:
		return ClassDesktop
	}
}

// Device stores the client's device class in the request context. It should
// be registered after the metadata middleware, whose User-Agent it reads.
func Device(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		userAgent := requestcontext.UserAgent(ctx)
		if userAgent == "" {
			userAgent = r.Header.Get("User-Agent")
		}
		ctx = requestcontext.WithDeviceClass(ctx, Classify(userAgent))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
