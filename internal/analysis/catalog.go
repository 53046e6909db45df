package analysis

// FieldRequirement is the minimum number of entries an analysis reads from one
// required_fields group. Entries past Used are ignored.
type FieldRequirement struct {
	Group string `json:"group"`
	Min   int    `json:"min"`
	Used  int    `json:"used,omitempty"`
}

// CatalogEntry describes one analysis for clients.
type CatalogEntry struct {
	Name        string             `json:"analysis_name"`
	Description string             `json:"description"`
	Fields      []FieldRequirement `json:"required_fields"`
}

const (
	groupNumerical   = "numerical_columns"
	groupCategorical = "categorical_columns"
	groupDate        = "date_columns"
)

// Catalog returns the description of every supported analysis.
func Catalog() []CatalogEntry {
	entries := make([]CatalogEntry, 0, len(Kinds()))
	for _, k := range Kinds() {
		entries = append(entries, CatalogEntry{
			Name:        k.String(),
			Description: k.description(),
			Fields:      k.requirements(),
		})
	}
	return entries
}

func (k Kind) description() string {
	switch k {
	case KindCorrelation:
		return "Pairwise Pearson correlation between numeric columns"
	case KindLinearRegression:
		return "Ordinary least squares fit of the first numeric column on the second"
	case KindChiSquare:
		return "Chi-square test of independence between two categorical columns"
	case KindTimeSeries:
		return "Monthly mean of a numeric column indexed by a date column"
	case KindDescriptive:
		return "Summary statistics for every column of the dataset"
	default:
		return ""
	}
}

func (k Kind) requirements() []FieldRequirement {
	switch k {
	case KindCorrelation:
		return []FieldRequirement{{Group: groupNumerical, Min: 1}}
	case KindLinearRegression:
		return []FieldRequirement{{Group: groupNumerical, Min: 2, Used: 2}}
	case KindChiSquare:
		return []FieldRequirement{{Group: groupCategorical, Min: 2, Used: 2}}
	case KindTimeSeries:
		return []FieldRequirement{
			{Group: groupDate, Min: 1, Used: 1},
			{Group: groupNumerical, Min: 1, Used: 1},
		}
	default:
		return []FieldRequirement{}
	}
}
