package summary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"textdigest/internal/handler/http/respond"
	summaryUC "textdigest/internal/usecase/summary"
)

// NoTextMessage is returned with 400 when the request carries no text.
const NoTextMessage = "No text provided"

// maxMemory is the in-memory budget for multipart form parsing.
const maxMemory = 1 << 20

var errUnsupportedMediaType = errors.New("unsupported content type")

// Summarizer is the use case consumed by SummarizeHandler.
type Summarizer interface {
	Summarize(ctx context.Context, in summaryUC.Input) (*summaryUC.Result, error)
}

// SummarizeHandler serves POST /summarize.
type SummarizeHandler struct {
	Svc    Summarizer
	Logger *slog.Logger
}

// ServeHTTP テキスト要約
// @Summary      テキスト要約
// @Description  頻出語に基づく抽出型要約を返します
// @Tags         summary
// @Accept       json,x-www-form-urlencoded,mpfd
// @Produce      json
// @Param        request body SummarizeRequest true "要約対象テキスト"
// @Success      200 {object} SummarizeResponse
// @Failure      400 {object} respond.ErrorResponse "No text provided / invalid max_length"
// @Failure      413 {object} respond.ErrorResponse "Request body or text too large"
// @Failure      415 {object} respond.ErrorResponse "Unsupported content type"
// @Failure      429 {object} respond.ErrorResponse "Too many requests"
// @Failure      500 {object} respond.ErrorResponse "Internal server error"
// @Router       /summarize [post]
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		recordResult(resultRejected)
		respond.SafeError(r.Context(), w, requestError(err))
		return
	}

	res, err := h.Svc.Summarize(r.Context(), summaryUC.Input{
		Text:      req.Text,
		MaxLength: req.MaxLength,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	recordResult(resultOK)
	respond.JSON(w, http.StatusOK, toResponse(res))
}

func (h SummarizeHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, summaryUC.ErrEmptyText):
		recordResult(resultRejected)
		respond.Error(w, http.StatusBadRequest, NoTextMessage)
	case errors.Is(err, summaryUC.ErrInvalidMaxLength):
		recordResult(resultRejected)
		respond.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, summaryUC.ErrTextTooLong):
		recordResult(resultRejected)
		respond.Error(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, summaryUC.ErrSummarizationFailed):
		recordResult(resultFailed)
		respond.SafeError(r.Context(), w,
			respond.NewAppError(http.StatusInternalServerError, "summarization failed", err))
	default:
		recordResult(resultFailed)
		if h.Logger != nil {
			h.Logger.WarnContext(r.Context(), "summarize request aborted", slog.Any("error", err))
		}
		respond.SafeError(r.Context(), w, err)
	}
}

// decodeRequest reads a JSON body, or form fields for urlencoded and
// multipart submissions. A request without Content-Type is read as a form.
func decodeRequest(r *http.Request) (SummarizeRequest, error) {
	var req SummarizeRequest

	mediaType := ""
	if ct := r.Header.Get("Content-Type"); ct != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(ct)
		if err != nil {
			return req, errUnsupportedMediaType
		}
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
		return req, nil

	case mediaType == "multipart/form-data":
		if err := r.ParseMultipartForm(maxMemory); err != nil {
			return req, fmt.Errorf("invalid form body: %w", err)
		}

	case mediaType == "application/x-www-form-urlencoded" || mediaType == "":
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form body: %w", err)
		}

	default:
		return req, errUnsupportedMediaType
	}

	req.Text = r.PostFormValue("text")
	if v := strings.TrimSpace(r.PostFormValue("max_length")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("invalid max length: must be an integer, got %q", v)
		}
		req.MaxLength = n
	}
	return req, nil
}

// requestError maps a decoding failure to the response the client sees.
func requestError(err error) error {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return respond.NewAppError(http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body too large: limit is %d bytes", maxBytesErr.Limit), err)
	case errors.Is(err, errUnsupportedMediaType):
		return respond.NewAppError(http.StatusUnsupportedMediaType,
			"unsupported content type: use application/json or form data", err)
	default:
		return respond.NewAppError(http.StatusBadRequest, err.Error(), err)
	}
}
