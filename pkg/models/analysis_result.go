package models

// AnalysisResult is one entry of the results envelope. On success AnalysisType
// and exactly one of the embedded payloads are set; on failure only Error is.
// AnalysisName is always set.
type AnalysisResult struct {
	AnalysisName string `json:"analysis_name"`
	AnalysisType string `json:"analysis_type,omitempty"`
	Error        string `json:"error,omitempty"`

	*CorrelationResult
	*RegressionResult
	*ChiSquareResult
	*TimeSeriesResult
	*DescriptiveResult
}

// CorrelationResult holds a column-by-column Pearson correlation matrix.
type CorrelationResult struct {
	CorrelationMatrix map[string]map[string]Float `json:"correlation_matrix"`
}

type RegressionResult struct {
	Slope       Float   `json:"slope"`
	Intercept   Float   `json:"intercept"`
	Predictions []Float `json:"predictions"`
}

type ChiSquareResult struct {
	Chi2Statistic       Float     `json:"chi2_statistic"`
	PValue              Float     `json:"p_value"`
	DegreesOfFreedom    int       `json:"degrees_of_freedom"`
	ExpectedFrequencies [][]Float `json:"expected_frequencies"`
}

// TimeSeriesResult maps a month-end timestamp (RFC 3339, UTC) to the mean of
// the observations falling in that month.
type TimeSeriesResult struct {
	TimeSeries map[string]Float `json:"time_series"`
}

// DescriptiveResult maps column name to statistic name to value. Statistics
// that do not apply to a column are nil.
type DescriptiveResult struct {
	Statistics map[string]map[string]any `json:"statistics"`
}

// Envelope is the response body of the analyze endpoint.
type Envelope struct {
	Results []AnalysisResult `json:"results"`
}
