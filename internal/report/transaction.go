// Package report derives dashboard figures from a list of transactions.
//
// Every function in this package is a pure reduction over its input: nothing is
// cached, the input slice is never modified and the functions are safe to call
// from multiple goroutines at once.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction as stored upstream.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// ExpenseSubtype classifies expenses for budgeting breakdowns.
type ExpenseSubtype string

const (
	SubtypeFixed    ExpenseSubtype = "fixed"
	SubtypeVariable ExpenseSubtype = "variable"
)

// UncategorizedLabel groups transactions that carry no category.
const UncategorizedLabel = "Sem categoria"

// NoCounterpartyLabel is shown for rows without a counterparty.
const NoCounterpartyLabel = "Sem estabelecimento"

// CategoryRef is the category joined onto a transaction by the store.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Transaction represents a financial transaction as returned by the store.
// Any field may be missing; aggregation treats missing values permissively.
type Transaction struct {
	ID             int64               `json:"id"`
	OccurredOn     *time.Time          `json:"occurredOn"`
	Counterparty   *string             `json:"counterparty"`
	Details        *string             `json:"details"`
	Amount         decimal.NullDecimal `json:"amount"`
	Kind           Kind                `json:"kind"`
	ExpenseSubtype ExpenseSubtype      `json:"expenseSubtype,omitempty"`
	CategoryID     *uuid.UUID          `json:"categoryId"`
	Category       *CategoryRef        `json:"category,omitempty"`
}

// Value returns the amount, or zero when it is absent.
func (t Transaction) Value() decimal.Decimal {
	if !t.Amount.Valid {
		return decimal.Zero
	}
	return t.Amount.Decimal
}

// CategoryName returns the joined category name or UncategorizedLabel.
func (t Transaction) CategoryName() string {
	if t.Category == nil || t.Category.Name == "" {
		return UncategorizedLabel
	}
	return t.Category.Name
}

// CounterpartyName returns the counterparty or NoCounterpartyLabel.
func (t Transaction) CounterpartyName() string {
	if t.Counterparty == nil || *t.Counterparty == "" {
		return NoCounterpartyLabel
	}
	return *t.Counterparty
}

// SignedValue is the magnitude of the amount signed by direction: positive for
// income, negative for everything else. Tables use it so that sign conventions
// in stored amounts do not leak into what the user sees.
func (t Transaction) SignedValue() decimal.Decimal {
	v := t.Value().Abs()
	if t.Kind == KindIncome {
		return v
	}
	return v.Neg()
}
