package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/kiranshivaraju/tabstats/internal/api/response"
	"github.com/kiranshivaraju/tabstats/internal/dataset"
	"github.com/kiranshivaraju/tabstats/internal/logging"
	"github.com/kiranshivaraju/tabstats/pkg/models"
)

var errTrailingData = errors.New("unexpected data after JSON body")

// Analyzer defines the interface the analyze handler depends on.
type Analyzer interface {
	Run(ctx context.Context, ds *dataset.Dataset, requests []models.AnalysisRequest) []models.AnalysisResult
}

// AnalyzeLimits bounds a single analyze request. Zero values disable a limit.
type AnalyzeLimits struct {
	MaxBodyBytes int64
	MaxAnalyses  int
}

// NewAnalyzeHandler returns an http.HandlerFunc for POST /api/v1/analyze.
func NewAnalyzeHandler(svc Analyzer, limits AnalyzeLimits) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := logging.FromContext(r.Context())

		if limits.MaxBodyBytes > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, limits.MaxBodyBytes)
		}

		var req struct {
			Dataset          json.RawMessage `json:"dataset"`
			SelectedAnalyses json.RawMessage `json:"selected_analyses"`
		}
		if err := decodeSingle(r.Body, &req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				response.Error(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE",
					fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), nil)
				return
			}
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST", "Invalid JSON body", nil)
			return
		}

		if !present(req.Dataset) || !present(req.SelectedAnalyses) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Missing dataset or selected_analyses in request", nil)
			return
		}

		var records []map[string]any
		if err := json.Unmarshal(req.Dataset, &records); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"dataset must be an array of records", nil)
			return
		}

		var selected []models.AnalysisRequest
		if err := json.Unmarshal(req.SelectedAnalyses, &selected); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"selected_analyses must be an array of analysis requests", nil)
			return
		}
		if limits.MaxAnalyses > 0 && len(selected) > limits.MaxAnalyses {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				fmt.Sprintf("At most %d analyses may be requested at once", limits.MaxAnalyses),
				map[string]int{"requested": len(selected), "max": limits.MaxAnalyses})
			return
		}

		ds, err := dataset.FromRecords(records)
		if err != nil {
			logger.Warn("dataset rejected", "error", err)
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Invalid dataset: "+err.Error(), nil)
			return
		}

		results := svc.Run(r.Context(), ds, selected)
		response.Raw(w, http.StatusOK, models.Envelope{Results: results})
	}
}

// decodeSingle decodes exactly one JSON value from body. Anything but
// whitespace after it is an error.
func decodeSingle(body io.Reader, v any) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errTrailingData
		}
		return err
	}
	return nil
}

// present reports whether a key was supplied with a non-null value.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
