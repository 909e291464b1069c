package report

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryTotals holds the income and expense of one category.
type CategoryTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryBreakdown maps a category display name to its totals.
type CategoryBreakdown map[string]CategoryTotals

// ComputeCategoryBreakdown groups txs by category name. Transactions without a
// category are grouped under UncategorizedLabel.
func ComputeCategoryBreakdown(txs []Transaction) CategoryBreakdown {
	out := make(CategoryBreakdown)
	for _, t := range txs {
		name := t.CategoryName()
		ct, ok := out[name]
		if !ok {
			ct = CategoryTotals{Income: decimal.Zero, Expense: decimal.Zero}
		}

		if t.Kind == KindIncome {
			ct.Income = ct.Income.Add(t.Value())
		} else {
			ct.Expense = ct.Expense.Add(t.Value())
		}
		ct.Net = ct.Income.Sub(ct.Expense)

		out[name] = ct
	}
	return out
}

// Names returns the category names in ascending order.
func (b CategoryBreakdown) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CategorySplit is the fixed/variable expense of one named category.
type CategorySplit struct {
	Category string          `json:"category"`
	Fixed    decimal.Decimal `json:"fixed"`
	Variable decimal.Decimal `json:"variable"`
}

// ComputeCategorySplit returns the absolute fixed and variable expense per
// category, sorted by category name. Only expenses with a named category and a
// non-zero amount are considered.
func ComputeCategorySplit(txs []Transaction) []CategorySplit {
	byName := make(map[string]*CategorySplit)
	for _, t := range txs {
		if t.Kind != KindExpense || t.Category == nil || t.Category.Name == "" {
			continue
		}
		v := t.Value()
		if v.IsZero() {
			continue
		}

		cs, ok := byName[t.Category.Name]
		if !ok {
			cs = &CategorySplit{Category: t.Category.Name, Fixed: decimal.Zero, Variable: decimal.Zero}
			byName[t.Category.Name] = cs
		}

		switch t.ExpenseSubtype {
		case SubtypeFixed:
			cs.Fixed = cs.Fixed.Add(v.Abs())
		case SubtypeVariable:
			cs.Variable = cs.Variable.Add(v.Abs())
		}
	}

	out := make([]CategorySplit, 0, len(byName))
	for _, cs := range byName {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}
