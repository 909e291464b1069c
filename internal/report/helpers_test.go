package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func day(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func category(name string) *CategoryRef {
	return &CategoryRef{ID: uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)), Name: name}
}

func income(v, date string) Transaction {
	return Transaction{Kind: KindIncome, Amount: amount(v), OccurredOn: day(date)}
}

func expense(v string, subtype ExpenseSubtype, date string) Transaction {
	return Transaction{Kind: KindExpense, ExpenseSubtype: subtype, Amount: amount(v), OccurredOn: day(date)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}
