package httputil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTransport(t *testing.T) {
	tr := NewTransport(GitHubClientConfig())

	assert.Equal(t, 10, tr.MaxIdleConnsPerHost)
	assert.Equal(t, 10*time.Second, tr.ResponseHeaderTimeout)
	assert.True(t, tr.ForceAttemptHTTP2)
}

func TestNewTransport_NilConfigUsesDefaults(t *testing.T) {
	tr := NewTransport(nil)

	assert.Equal(t, DefaultClientConfig().MaxIdleConns, tr.MaxIdleConns)
	assert.NotNil(t, tr.DialContext)
}
