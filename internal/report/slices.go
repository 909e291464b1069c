package report

import "github.com/shopspring/decimal"

// Chart colors bound to the slice series.
const (
	ColorIncome   = "#22c55e"
	ColorExpense  = "#ef4444"
	ColorFixed    = "#7209b7"
	ColorVariable = "#f72585"
)

// Slice labels.
const (
	LabelIncome   = "Receitas"
	LabelExpense  = "Despesas"
	LabelFixed    = "Despesas Fixas"
	LabelVariable = "Despesas Variáveis"
)

// Slice is one segment of a pie chart.
type Slice struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
	Color string          `json:"color"`
}

// ComputeKindSlices returns the income/expense pair of the report chart. The
// values are the Summary totals as is.
func ComputeKindSlices(txs []Transaction) []Slice {
	return kindSlices(ComputeSummary(txs))
}

// ComputeTypeSlices returns income, fixed expense and variable expense. The
// expense subtypes are absolute magnitudes, so a store that records expenses
// as negative amounts still yields positive slices; income is left signed.
func ComputeTypeSlices(txs []Transaction) []Slice {
	return typeSlices(ComputeSummary(txs))
}

func kindSlices(s Summary) []Slice {
	return []Slice{
		{Label: LabelIncome, Value: s.Income, Color: ColorIncome},
		{Label: LabelExpense, Value: s.Expense, Color: ColorExpense},
	}
}

func typeSlices(s Summary) []Slice {
	return []Slice{
		{Label: LabelIncome, Value: s.Income, Color: ColorIncome},
		{Label: LabelFixed, Value: s.FixedExpense.Abs(), Color: ColorFixed},
		{Label: LabelVariable, Value: s.VariableExpense.Abs(), Color: ColorVariable},
	}
}
