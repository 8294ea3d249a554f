package respond

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("summarization failed"), want: "summarization failed"},
		{name: "control characters", err: errors.New("line1\nline2\ttab"), want: "line1 line2 tab"},
		{name: "unicode kept", err: errors.New("要約に失敗"), want: "要約に失敗"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeError(tt.err))
		})
	}
}

func TestSanitizeError_Truncates(t *testing.T) {
	long := errors.New(strings.Repeat("語", maxLoggedErrorRunes+10))

	got := SanitizeError(long)

	assert.True(t, strings.HasSuffix(got, "…"))
	assert.Equal(t, maxLoggedErrorRunes+1, len([]rune(got)))
}
