package ratelimit

import (
	"net/http"
	"strings"
)

// MatchEndpoint resolves the budget for a path and method. Exact path
// matches win over prefix matches; health and metrics probes resolve to an
// unlimited budget. Returns nil when no configured endpoint matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && (path == "/healthz" || path == "/metrics") {
		return &EndpointConfig{}
	}

	var prefixMatch *EndpointConfig
	for i := range configs {
		ec := &configs[i]
		if ec.Method != method {
			continue
		}
		if ec.Path == path {
			return ec
		}
		if prefixMatch == nil && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			prefixMatch = ec
		}
	}
	return prefixMatch
}
