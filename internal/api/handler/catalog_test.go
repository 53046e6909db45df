package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiranshivaraju/tabstats/internal/api/handler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_ListsAllAnalyses(t *testing.T) {
	w := httptest.NewRecorder()
	handler.NewCatalogHandler().ServeHTTP(w, httptest.NewRequest("GET", "/api/v1/analyses", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []struct {
			Name   string `json:"analysis_name"`
			Fields []struct {
				Group string `json:"group"`
				Min   int    `json:"min"`
			} `json:"required_fields"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Data, 5)

	byName := map[string]int{}
	for i, e := range body.Data {
		byName[e.Name] = i
	}
	for _, name := range []string{
		"Correlation Analysis", "Linear Regression", "Chi-Square Test",
		"Time Series Analysis", "Descriptive Statistics",
	} {
		assert.Contains(t, byName, name)
	}

	ts := body.Data[byName["Time Series Analysis"]]
	require.Len(t, ts.Fields, 2)
	assert.Equal(t, "date_columns", ts.Fields[0].Group)
	assert.Empty(t, body.Data[byName["Descriptive Statistics"]].Fields)
}
