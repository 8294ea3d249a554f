package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "/"},
		{path: "/summarize", want: "/summarize"},
		{path: "/summarize/", want: "/summarize"},
		{path: "/health", want: "/health"},
		{path: "/live", want: "/live"},
		{path: "/metrics?name[]=x", want: "/metrics"},
		{path: "", want: UnmatchedPath},
		{path: "/summarize/123", want: UnmatchedPath},
		{path: "/wp-admin/login.php", want: UnmatchedPath},
		{path: "/HEALTH", want: UnmatchedPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePath(tt.path))
		})
	}
}

func TestRoutes(t *testing.T) {
	got := Routes()
	assert.ElementsMatch(t, []string{"/", "/summarize", "/health", "/live", "/metrics"}, got)

	// every route normalizes to itself
	for _, r := range got {
		assert.Equal(t, r, NormalizePath(r))
	}
}
