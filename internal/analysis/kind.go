package analysis

// Kind identifies one routine of the fixed analysis catalog.
type Kind int

const (
	KindCorrelation Kind = iota + 1
	KindLinearRegression
	KindChiSquare
	KindTimeSeries
	KindDescriptive
)

var kindNames = map[Kind]string{
	KindCorrelation:      "Correlation Analysis",
	KindLinearRegression: "Linear Regression",
	KindChiSquare:        "Chi-Square Test",
	KindTimeSeries:       "Time Series Analysis",
	KindDescriptive:      "Descriptive Statistics",
}

// Kinds lists the catalog in display order.
func Kinds() []Kind {
	return []Kind{KindCorrelation, KindLinearRegression, KindChiSquare, KindTimeSeries, KindDescriptive}
}

// String returns the display name, which is also the wire name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// ParseKind matches name exactly against the catalog. Case and whitespace
// are significant.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}
