package http

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"

	"textdigest/internal/handler/http/respond"
)

// TimeoutMessage is the error body written when a request runs out of time.
const TimeoutMessage = "request timeout"

// Timeout returns middleware that bounds request handling to d.
// The handler runs with a context canceled after d. If it has not written a
// response by then, 504 Gateway Timeout is sent and later writes fail with
// http.ErrHandlerTimeout. A non-positive d disables the middleware.
func Timeout(d time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			r = r.WithContext(ctx)

			tw := &timeoutWriter{ResponseWriter: w, h: w.Header().Clone()}
			if tw.h == nil {
				tw.h = make(http.Header)
			}
			done := make(chan struct{})
			panicked := make(chan any, 1)

			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicked <- p
					}
				}()
				next.ServeHTTP(tw, r)
				close(done)
			}()

			select {
			case <-done:
				// 期限切れ後に何も書かずに終了したハンドラも 504 とする
				if ctx.Err() == context.DeadlineExceeded {
					tw.expire(w)
				}
			case p := <-panicked:
				// Recover より内側で発生した panic を呼び出し元へ戻す
				panic(p)
			case <-ctx.Done():
				tw.expire(w)
			}
		})
	}
}

// timeoutWriter serializes writes between the handler goroutine and the
// timeout path. The handler gets its own header map, copied to the real
// writer when the response starts, so the two never share a map.
type timeoutWriter struct {
	http.ResponseWriter

	h           http.Header
	mu          sync.Mutex
	timedOut    bool
	wroteHeader bool
}

// Header is only touched by the handler goroutine.
func (w *timeoutWriter) Header() http.Header { return w.h }

func (w *timeoutWriter) WriteHeader(code int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut || w.wroteHeader {
		return
	}
	w.writeHeaderLocked(code)
}

func (w *timeoutWriter) Write(b []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !w.wroteHeader {
		w.writeHeaderLocked(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// expire marks the writer timed out and sends 504 to dst unless the handler
// already started its response.
func (w *timeoutWriter) expire(dst http.ResponseWriter) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.timedOut = true
	if !w.wroteHeader {
		respond.Error(dst, http.StatusGatewayTimeout, TimeoutMessage)
	}
}

func (w *timeoutWriter) writeHeaderLocked(code int) {
	w.wroteHeader = true
	maps.Copy(w.ResponseWriter.Header(), w.h)
	w.ResponseWriter.WriteHeader(code)
}
