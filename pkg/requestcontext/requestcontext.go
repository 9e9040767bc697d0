// Package requestcontext carries request-scoped metadata set by the HTTP
// middleware chain: request ID, client IP, user agent and device class.
package requestcontext

import "context"

type (
	contextKeyRequestID   struct{}
	contextKeyClientIP    struct{}
	contextKeyUserAgent   struct{}
	contextKeyDeviceClass struct{}
)

// DeviceUnknown is reported when no device class was resolved.
const DeviceUnknown = "unknown"

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID{}, id)
}

func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(contextKeyRequestID{}).(string)
	return id
}

// WithClientMetadata stores the resolved client IP and raw User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, contextKeyClientIP{}, clientIP)
	return context.WithValue(ctx, contextKeyUserAgent{}, userAgent)
}

func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(contextKeyClientIP{}).(string)
	return ip
}

func UserAgent(ctx context.Context) string {
	ua, _ := ctx.Value(contextKeyUserAgent{}).(string)
	return ua
}

func WithDeviceClass(ctx context.Context, class string) context.Context {
	return context.WithValue(ctx, contextKeyDeviceClass{}, class)
}

// DeviceClass returns the class set by the device middleware, or
// DeviceUnknown.
func DeviceClass(ctx context.Context) string {
	if class, ok := ctx.Value(contextKeyDeviceClass{}).(string); ok && class != "" {
		return class
	}
	return DeviceUnknown
}
