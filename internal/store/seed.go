package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-reports/internal/report"
)

type demoCategory struct {
	name    string
	tags    string
	subtype report.ExpenseSubtype
	color   string
}

var demoCategories = []demoCategory{
	{name: "Alimentação", tags: "Supermercado, Restaurantes", subtype: report.SubtypeVariable, color: "#e74c3c"},
	{name: "Moradia", tags: "Aluguel, Condomínio", subtype: report.SubtypeFixed, color: "#e67e22"},
	{name: "Contas", tags: "Luz, Internet", subtype: report.SubtypeFixed, color: "#f39c12"},
	{name: "Transporte", tags: "Metrô, Aplicativo", subtype: report.SubtypeVariable, color: "#3498db"},
	{name: "Lazer", tags: "Cinema, Shows", subtype: report.SubtypeVariable, color: "#9b59b6"},
	{name: "Salário", tags: "", color: "#27ae60"},
	{name: "Freelance", tags: "", color: "#16a085"},
}

type demoTransaction struct {
	monthsAgo    int
	day          int
	counterparty string
	amount       string
	kind         report.Kind
	subtype      report.ExpenseSubtype
	category     string
}

// Seven months of data so the trend has something to drop.
var demoTransactions = []demoTransaction{
	{0, 1, "Folha de pagamento", "3200.00", report.KindIncome, "", "Salário"},
	{0, 3, "Aluguel apartamento", "1500.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{0, 6, "Energia elétrica", "120.45", report.KindExpense, report.SubtypeFixed, "Contas"},
	{0, 8, "Supermercado", "96.72", report.KindExpense, report.SubtypeVariable, "Alimentação"},
	{0, 9, "Cinema", "28.50", report.KindExpense, report.SubtypeVariable, "Lazer"},
	{0, 12, "Landing page", "850.00", report.KindIncome, "", "Freelance"},
	{0, 14, "Farmácia", "32.90", report.KindExpense, "", ""},
	{1, 1, "Folha de pagamento", "3200.00", report.KindIncome, "", "Salário"},
	{1, 3, "Aluguel apartamento", "1500.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{1, 11, "Internet", "60.00", report.KindExpense, report.SubtypeFixed, "Contas"},
	{1, 16, "Supermercado", "132.39", report.KindExpense, report.SubtypeVariable, "Alimentação"},
	{1, 19, "Aplicativo de transporte", "22.30", report.KindExpense, report.SubtypeVariable, "Transporte"},
	{2, 3, "Aluguel apartamento", "1500.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{2, 8, "Show", "140.00", report.KindExpense, report.SubtypeVariable, "Lazer"},
	{3, 3, "Aluguel apartamento", "1500.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{3, 20, "Jantar", "54.80", report.KindExpense, report.SubtypeVariable, "Alimentação"},
	{4, 3, "Aluguel apartamento", "1450.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{5, 3, "Aluguel apartamento", "1450.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
	{5, 19, "Bilhete mensal", "45.00", report.KindExpense, report.SubtypeVariable, "Transporte"},
	{6, 3, "Aluguel apartamento", "1450.00", report.KindExpense, report.SubtypeFixed, "Moradia"},
}

// SeedDemoData inserts demo categories and transactions for userID.
// Idempotent: it does nothing if the user already has transactions.
func SeedDemoData(ctx context.Context, s *PostgresStore, userID uuid.UUID, now time.Time) (int, error) {
	if userID == uuid.Nil {
		return 0, ErrNoUser
	}

	var cnt int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID.String()).Scan(&cnt)
	if err != nil {
		return 0, fmt.Errorf("checking transactions count: %w", err)
	}
	if cnt > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seeding begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	categoryIDs := make(map[string]uuid.UUID, len(demoCategories))
	for _, c := range demoCategories {
		var subtype *string
		if c.subtype != "" {
			v := string(c.subtype)
			subtype = &v
		}

		var id uuid.UUID
		err := tx.QueryRowContext(ctx, `
			INSERT INTO categories (user_id, name, tags, expense_subtype, color)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`,
			userID.String(), c.name, c.tags, subtype, c.color,
		).Scan(&id)
		if err != nil {
			return 0, fmt.Errorf("seeding category %q: %w", c.name, err)
		}
		categoryIDs[c.name] = id
	}

	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	inserted := 0
	for _, d := range demoTransactions {
		occurredOn := first.AddDate(0, -d.monthsAgo, d.day-1)
		if occurredOn.After(now) {
			occurredOn = first.AddDate(0, -d.monthsAgo, 0)
		}

		var subtype, categoryID *string
		if d.subtype != "" {
			v := string(d.subtype)
			subtype = &v
		}
		if id, ok := categoryIDs[d.category]; ok {
			v := id.String()
			categoryID = &v
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (user_id, occurred_on, counterparty, amount, kind, expense_subtype, category_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			userID.String(), occurredOn.Format(time.DateOnly), d.counterparty,
			decimal.RequireFromString(d.amount).String(), string(d.kind), subtype, categoryID,
		)
		if err != nil {
			return 0, fmt.Errorf("seeding demo transaction %q: %w", d.counterparty, err)
		}
		inserted++
	}

	// One record without date or kind, to show how partial rows are reported.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO transactions (user_id, counterparty, amount, details)
		VALUES ($1, $2, $3, $4)`,
		userID.String(), "Ajuste manual", "10.00", "importado sem data",
	)
	if err != nil {
		return 0, fmt.Errorf("seeding undated transaction: %w", err)
	}
	inserted++

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seeding commit: %w", err)
	}
	return inserted, nil
}
