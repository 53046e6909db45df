package models

// AnalysisRequest names one analysis to run and the columns it should consume.
type AnalysisRequest struct {
	AnalysisName   string         `json:"analysis_name"`
	RequiredFields RequiredFields `json:"required_fields"`
}

// RequiredFields groups column references by the role they play in an analysis.
// Which groups are read, and how many entries, depends on the analysis.
type RequiredFields struct {
	NumericalColumns   []string `json:"numerical_columns,omitempty"`
	CategoricalColumns []string `json:"categorical_columns,omitempty"`
	DateColumns        []string `json:"date_columns,omitempty"`
}
