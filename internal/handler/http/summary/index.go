package summary

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// IndexHandler serves the HTML form at GET /.
type IndexHandler struct{}

// ServeHTTP 入力フォーム
// @Summary      入力フォーム
// @Tags         summary
// @Produce      html
// @Success      200 {string} string "HTML form"
// @Router       / [get]
func (IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(indexHTML)
}
