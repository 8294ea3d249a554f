package summary_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textdigest/internal/handler/http/summary"
	"textdigest/internal/summarizer"
	summaryUC "textdigest/internal/usecase/summary"
	"textdigest/pkg/security/csp"
)

const elephants = "Elephants are large. Elephants are herbivores. Cats are small."

/* ───────── helpers ───────── */

func newService() *summaryUC.Service {
	return summaryUC.NewService(summarizer.NewFrequency(nil, nil), summaryUC.DefaultConfig())
}

func newHandler() http.Handler {
	return summary.SummarizeHandler{Svc: newService()}
}

// stubSummarizer returns a fixed error.
type stubSummarizer struct{ err error }

func (s stubSummarizer) Summarize(context.Context, summaryUC.Input) (*summaryUC.Result, error) {
	return nil, s.err
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), rr.Body.String())
	return body
}

/* ───────── POST /summarize ───────── */

func TestSummarizeHandler_JSON(t *testing.T) {
	body := `{"text": "` + elephants + `", "max_length": 50}`
	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	newHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp summary.SummarizeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, summary.SummarizeResponse{
		Summary:          "Elephants are large. Elephants are herbivores.",
		OriginalLength:   62,
		SummaryLength:    46,
		OriginalWords:    9,
		SummaryWords:     6,
		ReductionPercent: 66.7,
	}, resp)
}

func TestSummarizeHandler_JSONDefaultMaxLength(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/summarize",
		strings.NewReader(`{"text": "`+elephants+`"}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	rr := httptest.NewRecorder()
	newHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, elephants, decodeBody(t, rr)["summary"])
}

func TestSummarizeHandler_Form(t *testing.T) {
	form := url.Values{"text": {elephants}, "max_length": {"50"}}
	req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rr := httptest.NewRecorder()
	newHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Elephants are large. Elephants are herbivores.", decodeBody(t, rr)["summary"])
}

func TestSummarizeHandler_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", elephants))
	require.NoError(t, mw.WriteField("max_length", "25"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/summarize", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	rr := httptest.NewRecorder()
	newHandler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Elephants are large.", decodeBody(t, rr)["summary"])
}

func TestSummarizeHandler_Errors(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
		wantStatus  int
		wantError   string
	}{
		{
			name:        "missing text in JSON",
			contentType: "application/json",
			body:        `{"max_length": 100}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "No text provided",
		},
		{
			name:        "whitespace text",
			contentType: "application/json",
			body:        `{"text": "   \n  "}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "No text provided",
		},
		{
			name:        "no content type and no body",
			contentType: "",
			body:        "",
			wantStatus:  http.StatusBadRequest,
			wantError:   "No text provided",
		},
		{
			name:        "malformed JSON",
			contentType: "application/json",
			body:        `{"text": `,
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid JSON body",
		},
		{
			name:        "max_length wrong type",
			contentType: "application/json",
			body:        `{"text": "Hello there.", "max_length": "long"}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid JSON body",
		},
		{
			name:        "negative max_length",
			contentType: "application/json",
			body:        `{"text": "Hello there.", "max_length": -5}`,
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid max length",
		},
		{
			name:        "non-numeric form max_length",
			contentType: "application/x-www-form-urlencoded",
			body:        "text=Hello+there.&max_length=ten",
			wantStatus:  http.StatusBadRequest,
			wantError:   "invalid max length: must be an integer",
		},
		{
			name:        "unsupported content type",
			contentType: "text/plain",
			body:        "Hello there.",
			wantStatus:  http.StatusUnsupportedMediaType,
			wantError:   "unsupported content type",
		},
		{
			name:        "text over input limit",
			contentType: "application/json",
			body:        `{"text": "` + strings.Repeat("a", 100001) + `"}`,
			wantStatus:  http.StatusRequestEntityTooLarge,
			wantError:   "text too long",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			rr := httptest.NewRecorder()
			newHandler().ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, decodeBody(t, rr)["error"], tt.wantError)
		})
	}
}

func TestSummarizeHandler_BodyTooLarge(t *testing.T) {
	h := newHandler()
	limited := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 16)
		h.ServeHTTP(w, r)
	})

	req := httptest.NewRequest(http.MethodPost, "/summarize",
		strings.NewReader(`{"text": "`+elephants+`"}`))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	limited.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "request body too large")
}

func TestSummarizeHandler_UnexpectedFailure(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantError string
	}{
		{
			name:      "summarizer fault",
			err:       summaryUC.ErrSummarizationFailed,
			wantError: "summarization failed",
		},
		{
			name:      "unknown error is hidden",
			err:       assert.AnError,
			wantError: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := summary.SummarizeHandler{Svc: stubSummarizer{err: tt.err}}

			req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(`{"text":"Hi."}`))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusInternalServerError, rr.Code)
			assert.Equal(t, tt.wantError, decodeBody(t, rr)["error"])
		})
	}
}

/* ───────── routing ───────── */

func TestRegister(t *testing.T) {
	mux := http.NewServeMux()
	summary.Register(mux, newService(), nil)

	t.Run("index form", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, rr.Body.String(), `action="/summarize"`)
		assert.Contains(t, rr.Body.String(), `name="max_length"`)
		assert.Contains(t, rr.Header().Get(csp.HeaderName), "form-action 'self'")
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("GET /summarize is not allowed", func(t *testing.T) {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/summarize", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})

	t.Run("POST /summarize", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/summarize", strings.NewReader(`{"text":"Hello there."}`))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Hello there.", decodeBody(t, rr)["summary"])
		assert.Equal(t, csp.StrictPolicy().Build(), rr.Header().Get(csp.HeaderName))
	})
}
