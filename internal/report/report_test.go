package report

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []Transaction {
	food := category("Alimentação")
	return []Transaction{
		expense("150", SubtypeVariable, "2024-02-05"),
		{Kind: KindExpense, ExpenseSubtype: SubtypeFixed, Amount: amount("300"), OccurredOn: day("2024-01-20"), Category: food},
		income("1000", "2024-01-15"),
		{Kind: KindExpense, Amount: amount("42")},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestAggregate_Empty(t *testing.T) {
	r := Aggregate(nil)

	assertDecimal(t, "0", r.Summary.Income)
	assertDecimal(t, "0", r.Summary.Expense)
	assertDecimal(t, "0", r.Summary.Balance)
	assertDecimal(t, "0", r.Summary.FixedExpense)
	assertDecimal(t, "0", r.Summary.VariableExpense)
	assert.Zero(t, r.Summary.TransactionCount)
	assert.Empty(t, r.ByCategory)
	assert.Empty(t, r.CategorySplit)
	assert.Empty(t, r.Trend)
	assert.Len(t, r.KindSlices, 2)
	assert.Len(t, r.TypeSlices, 3)

	// Empty collections encode as [] and {} so charts never see null.
	encoded := mustJSON(t, r)
	assert.Contains(t, encoded, `"trend":[]`)
	assert.Contains(t, encoded, `"byCategory":{}`)
	assert.Contains(t, encoded, `"categorySplit":[]`)
}

func TestAggregate_MatchesComponents(t *testing.T) {
	txs := sampleTransactions()
	r := Aggregate(txs)

	assert.Equal(t, mustJSON(t, ComputeSummary(txs)), mustJSON(t, r.Summary))
	assert.Equal(t, mustJSON(t, ComputeCategoryBreakdown(txs)), mustJSON(t, r.ByCategory))
	assert.Equal(t, mustJSON(t, ComputeCategorySplit(txs)), mustJSON(t, r.CategorySplit))
	assert.Equal(t, mustJSON(t, ComputeKindSlices(txs)), mustJSON(t, r.KindSlices))
	assert.Equal(t, mustJSON(t, ComputeTypeSlices(txs)), mustJSON(t, r.TypeSlices))
	assert.Equal(t, mustJSON(t, ComputeTrend(txs)), mustJSON(t, r.Trend))

	assertDecimal(t, "492", r.Summary.Expense)
	assert.Equal(t, 4, r.Summary.TransactionCount)
	assert.Len(t, r.Trend, 2)
}

func TestAggregate_Idempotent(t *testing.T) {
	txs := sampleTransactions()
	before := mustJSON(t, txs)

	first := mustJSON(t, Aggregate(txs))
	second := mustJSON(t, Aggregate(txs))

	assert.Equal(t, first, second)
	assert.Equal(t, before, mustJSON(t, txs), "input must not be modified")
}

func TestAggregate_ConcurrentCallers(t *testing.T) {
	txs := sampleTransactions()
	want := mustJSON(t, Aggregate(txs))

	var wg sync.WaitGroup
	results := make([]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			b, _ := json.Marshal(Aggregate(txs))
			results[i] = string(b)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
