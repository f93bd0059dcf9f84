package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Is(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"same code different message", NewConfigurationError("size must be positive, got %d", 0), ErrConfiguration, true},
		{"wrapped error", fmt.Errorf("generate: %w", NewRenderingError("empty layout")), ErrRendering, true},
		{"different code", NewConfigurationError("bad"), ErrRendering, false},
		{"plain error", errors.New("boom"), ErrConfiguration, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}

func TestDomainError_Error(t *testing.T) {
	err := NewInvalidRecordError("invoice %s is pending but past due", "INV-0001")
	assert.Equal(t, "invoice INV-0001 is pending but past due", err.Error())
	assert.Equal(t, CodeInvalidRecord, err.Code)

	var domainErr *DomainError
	assert.True(t, errors.As(fmt.Errorf("wrap: %w", err), &domainErr))
	assert.Equal(t, CodeInvalidRecord, domainErr.Code)
}

func TestDefaultArtifactCacheConfig(t *testing.T) {
	cfg := DefaultArtifactCacheConfig()
	assert.True(t, cfg.Enabled)
	assert.Greater(t, int64(cfg.TTL), int64(0))
}
