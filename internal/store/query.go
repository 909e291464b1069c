package store

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"finance-reports/internal/report"
)

const transactionColumns = `
	SELECT t.id, t.occurred_on, t.counterparty, t.details, t.amount, t.kind,
	       t.expense_subtype, t.category_id, c.id, c.name
	FROM transactions t
	LEFT JOIN categories c ON t.category_id = c.id`

// buildTransactionQuery returns the report query for userID with one
// placeholder per non-empty filter. Filters must already be validated.
func buildTransactionQuery(userID uuid.UUID, f report.Filters) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, strings.ReplaceAll(clause, "?", "$"+strconv.Itoa(len(args))))
	}

	add("t.user_id = ?", userID.String())
	if f.StartDate != "" {
		add("t.occurred_on >= ?::date", f.StartDate)
	}
	if f.EndDate != "" {
		add("t.occurred_on <= ?::date", f.EndDate)
	}
	if f.Type != "" {
		add("t.kind = ?", string(f.Type))
	}
	if f.CategoryID != "" {
		add("t.category_id = ?::uuid", f.CategoryID)
	}

	query := transactionColumns +
		"\n\tWHERE " + strings.Join(where, " AND ") +
		"\n\tORDER BY t.occurred_on DESC NULLS LAST, t.id DESC"
	return query, args
}
