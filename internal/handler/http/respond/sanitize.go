package respond

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLoggedErrorRunes bounds error text written to the logs. Errors raised
// while summarizing may quote request text.
const maxLoggedErrorRunes = 256

// SanitizeError returns err's message with control characters replaced by
// spaces and truncated to a bounded length, suitable for a single log field.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, err.Error())

	if utf8.RuneCountInString(msg) <= maxLoggedErrorRunes {
		return msg
	}
	runes := []rune(msg)
	return string(runes[:maxLoggedErrorRunes]) + "…"
}
