package ratelimit

import "strings"

// MatchEndpoint matches a request path and method to an endpoint
// configuration. Returns nil when no configuration applies, in which case the
// caller falls back to the global default. Paths ending in "/" match as
// prefixes, so "/roles/" covers "/roles/{id}/match".
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Health checks are never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}

	return nil
}
