package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestContext(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))
	assert.Equal(t, DeviceUnknown, DeviceClass(ctx))

	ctx = WithRequestID(ctx, "req-1")
	ctx = WithClientMetadata(ctx, "192.168.1.7", "curl/8.0")
	ctx = WithDeviceClass(ctx, "mobile")

	assert.Equal(t, "req-1", RequestID(ctx))
	assert.Equal(t, "192.168.1.7", ClientIP(ctx))
	assert.Equal(t, "curl/8.0", UserAgent(ctx))
	assert.Equal(t, "mobile", DeviceClass(ctx))
}
