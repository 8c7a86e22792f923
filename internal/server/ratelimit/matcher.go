package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves the endpoint configuration for a request path and
// method. Exact path matches win over prefix matches; a config whose path
// ends in "/" matches any request under that prefix (e.g. "/runs/" covers
// "/runs/{id}/result"). Returns nil when no config applies, in which case
// the caller falls back to the default limit.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check is always unlimited
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
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
