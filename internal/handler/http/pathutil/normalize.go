// Package pathutil maps request paths onto a fixed set of metric labels.
package pathutil

import "strings"

// UnmatchedPath is the label for every path that is not a served route.
const UnmatchedPath = "/other"

// routes lists the paths served by the API.
var routes = map[string]struct{}{
	"/":          {},
	"/summarize": {},
	"/health":    {},
	"/live":      {},
	"/metrics":   {},
}

// NormalizePath returns path when it is a served route and UnmatchedPath
// otherwise, so scanners probing random URLs cannot grow label cardinality.
// Query strings and a trailing slash are ignored.
//
// Examples:
//
//	NormalizePath("/summarize")       // "/summarize"
//	NormalizePath("/health/")         // "/health"
//	NormalizePath("/metrics?x=1")     // "/metrics"
//	NormalizePath("/wp-admin/login")  // "/other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	if _, ok := routes[path]; ok {
		return path
	}
	return UnmatchedPath
}

// Routes returns the served paths, i.e. the possible labels besides UnmatchedPath.
func Routes() []string {
	out := make([]string, 0, len(routes))
	for r := range routes {
		out = append(out, r)
	}
	return out
}
