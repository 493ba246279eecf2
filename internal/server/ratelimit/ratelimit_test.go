package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(configs []EndpointConfig) *Limiter {
	return NewLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: configs,
	})
}

func TestLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := newTestLimiter([]EndpointConfig{
		{Path: "/partners/find", Method: "POST", Limit: 20, Window: time.Hour, Burst: 3},
	})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4", "/partners/find", "POST")
		assert.True(t, allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 20, info.Limit)
	}

	allowed, info := limiter.Allow("1.2.3.4", "/partners/find", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := newTestLimiter([]EndpointConfig{
		{Path: "/partners/find", Method: "POST", Limit: 20, Window: time.Hour, Burst: 1},
	})
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/partners/find", "POST")
	require.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/partners/find", "POST")
	require.False(t, allowed)

	allowed, _ = limiter.Allow("5.6.7.8", "/partners/find", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 1000; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/partners/find", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter := NewLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/users", "GET")
		assert.True(t, allowed)
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/users", "GET")
	assert.False(t, allowed)
}

func TestLimiter_HealthUnlimited(t *testing.T) {
	limiter := newTestLimiter(nil)
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/health", "GET")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/partners/find", Method: "POST", Limit: 20},
		{Path: "/users/", Method: "PUT", Limit: 100},
	}

	tests := []struct {
		path      string
		method    string
		wantLimit int
		wantNil   bool
	}{
		{"/partners/find", "POST", 20, false},
		{"/users/abc-123", "PUT", 100, false},
		{"/users/abc-123", "GET", 0, true},
		{"/health", "GET", 0, false},
		{"/unknown", "GET", 0, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s %s", tt.method, tt.path), func(t *testing.T) {
			got := MatchEndpoint(tt.path, tt.method, configs)
			if tt.wantNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.wantLimit, got.Limit)
			}
		})
	}
}
