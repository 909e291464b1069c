package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Period is a preset for the reporting window. It never filters by itself.
type Period string

const (
	PeriodDay    Period = "day"
	PeriodMonth  Period = "month"
	PeriodYear   Period = "year"
	PeriodCustom Period = "custom"
)

// ErrInvalidFilters is returned when a Filters value fails validation.
var ErrInvalidFilters = errors.New("invalid report filters")

// Filters selects which transactions a report covers. Empty fields are
// unbounded. StartDate and EndDate are inclusive ISO dates.
type Filters struct {
	StartDate  string `json:"startDate,omitempty" form:"startDate"`
	EndDate    string `json:"endDate,omitempty" form:"endDate"`
	Type       Kind   `json:"type,omitempty" form:"type"`
	CategoryID string `json:"categoryId,omitempty" form:"categoryId"`
	Period     Period `json:"period" form:"period"`
}

// DefaultFilters returns the filters a new dashboard starts with.
func DefaultFilters() Filters {
	return Filters{Period: PeriodMonth}
}

// Validate reports every problem with f at once.
func (f Filters) Validate() error {
	var errs []error

	start, err := parseDate("startDate", f.StartDate)
	if err != nil {
		errs = append(errs, err)
	}
	end, err := parseDate("endDate", f.EndDate)
	if err != nil {
		errs = append(errs, err)
	}
	if !start.IsZero() && !end.IsZero() && start.After(end) {
		errs = append(errs, fmt.Errorf("startDate %s is after endDate %s", f.StartDate, f.EndDate))
	}

	switch f.Type {
	case "", KindIncome, KindExpense:
	default:
		errs = append(errs, fmt.Errorf("type %q must be %q or %q", f.Type, KindIncome, KindExpense))
	}

	if f.CategoryID != "" {
		if _, err := uuid.Parse(f.CategoryID); err != nil {
			errs = append(errs, fmt.Errorf("categoryId %q: %w", f.CategoryID, err))
		}
	}

	switch f.Period {
	case "", PeriodDay, PeriodMonth, PeriodYear, PeriodCustom:
	default:
		errs = append(errs, fmt.Errorf("period %q must be one of day, month, year, custom", f.Period))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidFilters, errors.Join(errs...))
}

// Resolve fills StartDate and EndDate from Period when both are empty. A
// custom or empty period, or an explicit date, leaves f untouched.
func (f Filters) Resolve(now time.Time) Filters {
	if f.StartDate != "" || f.EndDate != "" {
		return f
	}

	y, m, d := now.Date()
	var start, end time.Time
	switch f.Period {
	case PeriodDay:
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		end = start
	case PeriodMonth:
		start = time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case PeriodYear:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, now.Location())
	default:
		return f
	}

	f.StartDate = start.Format(time.DateOnly)
	f.EndDate = end.Format(time.DateOnly)
	return f
}

func parseDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q is not a YYYY-MM-DD date", field, s)
	}
	return t, nil
}
