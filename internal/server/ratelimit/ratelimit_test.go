package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/roles/", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		},
	}
}

func TestLimiter_BurstThenThrottle(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	// Burst capacity is 2: two requests pass, the third is throttled.
	allowed, _ := limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
	assert.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsAreIndependent(t *testing.T) {
	limiter := NewLimiter(testConfig())
	defer limiter.Stop()

	for i := 0; i < 2; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
		require.True(t, allowed)
	}
	allowed, _ := limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
	require.False(t, allowed)

	// A different client still has a full bucket.
	allowed, _ = limiter.Allow("5.6.7.8", "/roles/7/match", "POST")
	assert.True(t, allowed)
}

func TestLimiter_Disabled(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 50; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/roles/7/match", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Whitelist(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist = map[string]bool{"10.0.0.1": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/roles/7/match", "POST")
		require.True(t, allowed)
	}
}

func TestLimiter_Blacklist(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist = map[string]bool{"10.0.0.2": true}
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("10.0.0.2", "/health", "GET")
	assert.False(t, allowed)
}

func TestLimiter_NilConfigUsesDefaults(t *testing.T) {
	limiter := NewLimiter(nil)
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/anything", "GET")
	assert.True(t, allowed)
}

func TestMatchEndpoint_HealthIsUnlimited(t *testing.T) {
	cfg := MatchEndpoint("/health", "GET", DefaultEndpointConfigs())
	require.NotNil(t, cfg)
	assert.Equal(t, 0, cfg.Limit)
}

func TestMatchEndpoint_PrefixMatch(t *testing.T) {
	configs := DefaultEndpointConfigs()

	cfg := MatchEndpoint("/roles/7/match", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 10, cfg.Limit)

	cfg = MatchEndpoint("/roles/7/match/stream", "POST", configs)
	require.NotNil(t, cfg)
	assert.Equal(t, 10, cfg.Limit)

	// Reads are not covered by the match tier.
	assert.Nil(t, MatchEndpoint("/roles/7", "GET", configs))
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 1000, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.NotEmpty(t, cfg.EndpointConfigs)
}

func TestLoadConfig_DisabledViaEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadConfig()
	assert.False(t, cfg.Enabled)
}

func TestLoadConfig_ListsParsed(t *testing.T) {
	t.Setenv("RATE_LIMIT_WHITELIST", "1.1.1.1, 2.2.2.2")
	cfg := LoadConfig()
	assert.True(t, cfg.Whitelist["1.1.1.1"])
	assert.True(t, cfg.Whitelist["2.2.2.2"])
}
