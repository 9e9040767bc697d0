// Package tracer is a small tracing abstraction over OpenTelemetry.
//
// Services depend on the Tracer interface; cmd/server picks the OTel adapter
// or the no-op implementation from configuration.
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks it failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	//
	// Example:
	//   ctx, span := tracer.Start(ctx, tracer.SpanSubmit,
	//       tracer.String(tracer.AttrNationalID, tracer.HashNationalID(id)),
	//   )
	//   defer span.End(err)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashNationalID returns a truncated SHA-256 of the national ID so traces
// can be correlated without carrying the ID itself.
func HashNationalID(nationalID string) string {
	if nationalID == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(nationalID))
	return hex.EncodeToString(hash[:8])
}

// Span names.
const (
	SpanSubmit   = "registration.submit"
	SpanValidate = "registration.validate"
	SpanBuildURL = "registration.build_url"
)

// Attribute keys.
const (
	AttrNationalID  = "national_id"
	AttrLanguage    = "language"
	AttrValid       = "valid"
	AttrFailedCount = "failed_fields"
	AttrIsMinor     = "is_minor"
	AttrAge         = "age"
)

// Event names.
const (
	EventTokenIssued = "session_token.issued"
)
