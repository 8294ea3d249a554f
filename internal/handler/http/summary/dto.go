// Package summary provides the HTTP handlers for the summarization endpoints.
package summary

import summaryUC "textdigest/internal/usecase/summary"

// SummarizeRequest is the JSON body accepted by POST /summarize.
// Form submissions use the same field names.
type SummarizeRequest struct {
	Text      string `json:"text" example:"Elephants are large. Elephants are herbivores. Cats are small."`
	MaxLength int    `json:"max_length" example:"150"`
}

// SummarizeResponse is the JSON body returned by POST /summarize.
type SummarizeResponse struct {
	Summary          string  `json:"summary" example:"Elephants are large. Elephants are herbivores."`
	OriginalLength   int     `json:"original_length" example:"62"`
	SummaryLength    int     `json:"summary_length" example:"46"`
	OriginalWords    int     `json:"original_words" example:"9"`
	SummaryWords     int     `json:"summary_words" example:"6"`
	ReductionPercent float64 `json:"reduction_percent" example:"66.7"`
}

func toResponse(res *summaryUC.Result) SummarizeResponse {
	return SummarizeResponse{
		Summary:          res.Summary,
		OriginalLength:   res.OriginalLength,
		SummaryLength:    res.SummaryLength,
		OriginalWords:    res.OriginalWords,
		SummaryWords:     res.SummaryWords,
		ReductionPercent: res.ReductionPercent,
	}
}
