package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"finance-reports/internal/report"
)

// Category represents a transaction category owned by a user.
type Category struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	Tags           string                `json:"tags"`
	ExpenseSubtype report.ExpenseSubtype `json:"expenseSubtype,omitempty"`
	Color          string                `json:"color"`
	CreatedAt      time.Time             `json:"createdAt"`
}

// ListCategories returns the categories of userID ordered by name.
func (s *PostgresStore) ListCategories(ctx context.Context, userID uuid.UUID) ([]Category, error) {
	if userID == uuid.Nil {
		return nil, ErrNoUser
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, tags, expense_subtype, color, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name`, userID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: query categories: %w", ErrFetch, err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var (
			c       Category
			subtype sql.NullString
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Tags, &subtype, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scan category: %w", ErrFetch, err)
		}
		c.ExpenseSubtype = report.ExpenseSubtype(subtype.String)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate categories: %w", ErrFetch, err)
	}

	return categories, nil
}
