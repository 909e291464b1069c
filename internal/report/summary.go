package report

import "github.com/shopspring/decimal"

// Summary contains the headline totals of a transaction list.
type Summary struct {
	Income           decimal.Decimal `json:"income"`
	Expense          decimal.Decimal `json:"expense"`
	Balance          decimal.Decimal `json:"balance"`
	FixedExpense     decimal.Decimal `json:"fixedExpense"`
	VariableExpense  decimal.Decimal `json:"variableExpense"`
	TransactionCount int             `json:"transactionCount"`
}

// ComputeSummary totals txs in a single pass.
//
// Anything whose kind is not exactly income counts towards Expense, while the
// subtype totals only include transactions whose kind is exactly expense. A
// record with an unknown or missing kind therefore raises Expense without
// raising FixedExpense or VariableExpense.
func ComputeSummary(txs []Transaction) Summary {
	s := Summary{
		Income:          decimal.Zero,
		Expense:         decimal.Zero,
		FixedExpense:    decimal.Zero,
		VariableExpense: decimal.Zero,
	}

	for _, t := range txs {
		v := t.Value()
		if t.Kind == KindIncome {
			s.Income = s.Income.Add(v)
		} else {
			s.Expense = s.Expense.Add(v)
		}

		if t.Kind != KindExpense {
			continue
		}
		switch t.ExpenseSubtype {
		case SubtypeFixed:
			s.FixedExpense = s.FixedExpense.Add(v)
		case SubtypeVariable:
			s.VariableExpense = s.VariableExpense.Add(v)
		}
	}

	s.Balance = s.Income.Sub(s.Expense)
	s.TransactionCount = len(txs)
	return s
}
