package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrendMonths is the number of most recent months kept in a trend.
const TrendMonths = 6

// MonthKeyLayout formats a month key such as 2024-03.
const MonthKeyLayout = "2006-01"

// TrendPoint is one calendar month of expenses split by subtype.
type TrendPoint struct {
	Month    string          `json:"month"`
	Fixed    decimal.Decimal `json:"fixed"`
	Variable decimal.Decimal `json:"variable"`
	Other    decimal.Decimal `json:"other"`
}

// MonthKey returns the YYYY-MM key of t in the location t carries.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ComputeTrend buckets dated expenses by month. Months without expenses are
// not synthesised. Points are sorted by month and only the last TrendMonths
// are returned.
func ComputeTrend(txs []Transaction) []TrendPoint {
	byMonth := make(map[string]*TrendPoint)
	for _, t := range txs {
		if t.Kind != KindExpense || t.OccurredOn == nil {
			continue
		}

		key := MonthKey(*t.OccurredOn)
		p, ok := byMonth[key]
		if !ok {
			p = &TrendPoint{Month: key, Fixed: decimal.Zero, Variable: decimal.Zero, Other: decimal.Zero}
			byMonth[key] = p
		}

		v := t.Value()
		switch t.ExpenseSubtype {
		case SubtypeFixed:
			p.Fixed = p.Fixed.Add(v)
		case SubtypeVariable:
			p.Variable = p.Variable.Add(v)
		default:
			p.Other = p.Other.Add(v)
		}
	}

	points := make([]TrendPoint, 0, len(byMonth))
	for _, p := range byMonth {
		points = append(points, *p)
	}
	// Zero-padded keys sort chronologically as strings.
	sort.Slice(points, func(i, j int) bool { return points[i].Month < points[j].Month })

	if len(points) > TrendMonths {
		points = points[len(points)-TrendMonths:]
	}
	return points
}
