package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const elephants = "Elephants are large. Elephants are herbivores. Cats are small."

func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	app := newApp(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(append([]string{"textdigest-summarize"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestApp_Stdin(t *testing.T) {
	out, err := runApp(t, elephants, "--max-length", "50")

	require.NoError(t, err)
	assert.Equal(t, "Elephants are large. Elephants are herbivores.\n", out)
}

func TestApp_DefaultMaxLength(t *testing.T) {
	out, err := runApp(t, elephants)

	require.NoError(t, err)
	assert.Equal(t, elephants+"\n", out)
}

func TestApp_FilesInArgumentOrder(t *testing.T) {
	first := writeFile(t, "first.txt", elephants)
	second := writeFile(t, "second.txt", "Short one.")

	out, err := runApp(t, "", "--max-length", "50", "--concurrency", "2", first, second)

	require.NoError(t, err)
	want := "==> " + first + " <==\n" +
		"Elephants are large. Elephants are herbivores.\n" +
		"\n" +
		"==> " + second + " <==\n" +
		"Short one.\n"
	assert.Equal(t, want, out)
}

func TestApp_JSON(t *testing.T) {
	path := writeFile(t, "in.txt", elephants)

	out, err := runApp(t, "", "--format", "json", "-n", "50", path)
	require.NoError(t, err)

	var got []fileSummary
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, path, got[0].Source)
	assert.Equal(t, "Elephants are large. Elephants are herbivores.", got[0].Summary)
	assert.Equal(t, 62, got[0].OriginalLength)
	assert.Equal(t, 46, got[0].SummaryLength)
	assert.Equal(t, 9, got[0].OriginalWords)
	assert.Equal(t, 6, got[0].SummaryWords)
	assert.InDelta(t, 66.7, got[0].ReductionPercent, 0.01)
}

func TestApp_HTML(t *testing.T) {
	html := "<html><head><script>var x = 1;</script></head><body><p>Elephants are large.</p><p>Elephants are herbivores.</p><p>Cats are small.</p></body></html>"

	out, err := runApp(t, html, "--html", "--max-length", "50")

	require.NoError(t, err)
	assert.Equal(t, "Elephants are large. Elephants are herbivores.\n", out)
}

func TestApp_Errors(t *testing.T) {
	tests := []struct {
		name    string
		stdin   string
		args    []string
		wantErr string
	}{
		{name: "empty stdin", stdin: "   ", wantErr: "no text provided"},
		{name: "bad format", stdin: elephants, args: []string{"--format", "yaml"}, wantErr: "unsupported format"},
		{name: "non-positive max length", stdin: elephants, args: []string{"--max-length", "0"}, wantErr: "max-length must be positive"},
		{name: "missing file", args: []string{filepath.Join(os.TempDir(), "does-not-exist.txt")}, wantErr: "read "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runApp(t, tt.stdin, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
