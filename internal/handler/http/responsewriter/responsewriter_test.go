package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	rw := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.Zero(t, rw.BytesWritten())
	assert.False(t, rw.Written())
}

func TestWrap_ReusesExisting(t *testing.T) {
	inner := Wrap(httptest.NewRecorder())
	assert.Same(t, inner, Wrap(inner))
}

func TestResponseWriter_RecordsStatusAndBytes(t *testing.T) {
	tests := []struct {
		name       string
		handler    func(w http.ResponseWriter)
		wantStatus int
		wantBytes  int
	}{
		{
			name:       "implicit 200 on write",
			handler:    func(w http.ResponseWriter) { _, _ = w.Write([]byte(`{"summary":"x"}`)) },
			wantStatus: http.StatusOK,
			wantBytes:  15,
		},
		{
			name: "explicit status",
			handler: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte("bad"))
			},
			wantStatus: http.StatusBadRequest,
			wantBytes:  3,
		},
		{
			name: "second WriteHeader ignored",
			handler: func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				w.WriteHeader(http.StatusOK)
			},
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBytes:  0,
		},
		{
			name: "multiple writes accumulate",
			handler: func(w http.ResponseWriter) {
				_, _ = w.Write([]byte("ab"))
				_, _ = w.Write([]byte("cde"))
			},
			wantStatus: http.StatusOK,
			wantBytes:  5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rw := Wrap(rec)

			tt.handler(rw)

			assert.Equal(t, tt.wantStatus, rw.StatusCode())
			assert.Equal(t, tt.wantBytes, rw.BytesWritten())
			assert.Equal(t, tt.wantStatus, rec.Code, "status should reach the underlying writer")
			assert.Equal(t, tt.wantBytes, rec.Body.Len())
		})
	}
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	require.Equal(t, http.ResponseWriter(rec), rw.Unwrap())
}
