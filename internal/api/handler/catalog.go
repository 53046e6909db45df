package handler

import (
	"net/http"

	"github.com/kiranshivaraju/tabstats/internal/analysis"
	"github.com/kiranshivaraju/tabstats/internal/api/response"
)

// NewCatalogHandler returns an http.HandlerFunc for GET /api/v1/analyses.
func NewCatalogHandler() http.HandlerFunc {
	catalog := analysis.Catalog()
	return func(w http.ResponseWriter, _ *http.Request) {
		response.JSON(w, catalog)
	}
}
