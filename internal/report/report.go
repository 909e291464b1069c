package report

// Report bundles every figure the dashboard renders.
type Report struct {
	Summary       Summary           `json:"summary"`
	ByCategory    CategoryBreakdown `json:"byCategory"`
	CategorySplit []CategorySplit   `json:"categorySplit"`
	KindSlices    []Slice           `json:"kindSlices"`
	TypeSlices    []Slice           `json:"typeSlices"`
	Trend         []TrendPoint      `json:"trend"`
}

// Aggregate computes the full report for txs. It is the single entry point
// consumers should use so that charts and tables agree with each other.
func Aggregate(txs []Transaction) Report {
	s := ComputeSummary(txs)
	return Report{
		Summary:       s,
		ByCategory:    ComputeCategoryBreakdown(txs),
		CategorySplit: ComputeCategorySplit(txs),
		KindSlices:    kindSlices(s),
		TypeSlices:    typeSlices(s),
		Trend:         ComputeTrend(txs),
	}
}
