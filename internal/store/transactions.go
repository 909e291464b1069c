package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"finance-reports/internal/report"
)

var (
	// ErrNoUser is returned when a fetch is attempted without a user.
	ErrNoUser = errors.New("no user to scope transactions to")
	// ErrFetch wraps database failures while reading report data.
	ErrFetch = errors.New("fetch failed")
)

// Fetcher returns the transactions of one user that match the filters,
// newest first, with their category joined when it resolves.
type Fetcher interface {
	FetchTransactions(ctx context.Context, userID uuid.UUID, f report.Filters) ([]report.Transaction, error)
}

// FetchTransactions implements Fetcher. It refuses to run without a user and
// never returns a partial list: any scan error fails the whole fetch.
func (s *PostgresStore) FetchTransactions(ctx context.Context, userID uuid.UUID, f report.Filters) ([]report.Transaction, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	query, args := buildTransactionQuery(userID, f)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: query transactions: %w", ErrFetch, err)
	}
	defer rows.Close()

	// ensure empty slice instead of nil when no rows
	txs := make([]report.Transaction, 0)
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan transaction: %w", ErrFetch, err)
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %w", ErrFetch, err)
	}

	return txs, nil
}

// transactionRow holds one scanned row before NULLs are mapped.
type transactionRow struct {
	id           int64
	occurredOn   sql.NullTime
	counterparty sql.NullString
	details      sql.NullString
	amount       decimal.NullDecimal
	kind         sql.NullString
	subtype      sql.NullString
	categoryID   uuid.NullUUID
	joinedID     uuid.NullUUID
	joinedName   sql.NullString
}

func scanTransaction(rows *sql.Rows) (report.Transaction, error) {
	var r transactionRow
	err := rows.Scan(
		&r.id, &r.occurredOn, &r.counterparty, &r.details, &r.amount, &r.kind,
		&r.subtype, &r.categoryID, &r.joinedID, &r.joinedName,
	)
	if err != nil {
		return report.Transaction{}, err
	}
	return r.transaction(), nil
}

// transaction maps NULL columns to absent fields. A NULL amount stays
// invalid and a NULL kind becomes the empty kind.
func (r transactionRow) transaction() report.Transaction {
	t := report.Transaction{
		ID:             r.id,
		Amount:         r.amount,
		Kind:           report.Kind(r.kind.String),
		ExpenseSubtype: report.ExpenseSubtype(r.subtype.String),
	}

	if r.occurredOn.Valid {
		// DATE columns carry no zone; keep the calendar date as is.
		y, m, d := r.occurredOn.Time.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		t.OccurredOn = &day
	}
	if r.counterparty.Valid {
		v := r.counterparty.String
		t.Counterparty = &v
	}
	if r.details.Valid {
		v := r.details.String
		t.Details = &v
	}
	if r.categoryID.Valid {
		id := r.categoryID.UUID
		t.CategoryID = &id
	}
	if r.joinedID.Valid {
		t.Category = &report.CategoryRef{ID: r.joinedID.UUID, Name: r.joinedName.String}
	}
	return t
}
