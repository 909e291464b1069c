// Package service runs the fetch-then-aggregate flow behind the API.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"finance-reports/internal/cache"
	"finance-reports/internal/logging"
	"finance-reports/internal/report"
	"finance-reports/internal/store"
)

// fetchTimeout bounds a shared fetch once it no longer follows a caller's
// context.
const fetchTimeout = 30 * time.Second

// Result is a report together with the transactions and filters it was
// computed from.
type Result struct {
	Filters      report.Filters       `json:"filters"`
	Transactions []report.Transaction `json:"transactions"`
	Report       report.Report        `json:"report"`
}

// Reports builds reports for a user. It is safe for concurrent use.
type Reports struct {
	fetcher store.Fetcher
	cache   *cache.ReportCache
	group   singleflight.Group
	logger  *slog.Logger
}

// NewReports creates the service. cache may be nil.
func NewReports(fetcher store.Fetcher, c *cache.ReportCache) *Reports {
	return &Reports{
		fetcher: fetcher,
		cache:   c,
		logger:  logging.Component(logging.ComponentReports),
	}
}

// Build fetches the transactions matching f for userID and aggregates them.
// A failed fetch returns an error and no result; an empty fetch returns a
// zero report. Identical concurrent requests share one fetch.
func (s *Reports) Build(ctx context.Context, userID uuid.UUID, f report.Filters) (*Result, error) {
	if userID == uuid.Nil {
		return nil, store.ErrNoUser
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	key := cache.Key(userID, f)

	var cached Result
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Report cache read failed", logging.FieldError, err)
	}
	if hit {
		s.logger.Debug("Report served from cache", logging.FieldUserID, userID, logging.FieldCacheHit, true)
		return &cached, nil
	}

	// The shared fetch outlives any single caller so that one cancelled
	// request does not fail the others waiting on the same key.
	ch := s.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		txs, err := s.fetcher.FetchTransactions(fetchCtx, userID, f)
		if err != nil {
			return nil, err
		}

		res := &Result{
			Filters:      f,
			Transactions: txs,
			Report:       report.Aggregate(txs),
		}
		if err := s.cache.Set(fetchCtx, key, res); err != nil {
			s.logger.Warn("Report cache write failed", logging.FieldError, err)
		}
		s.logger.Debug("Report computed",
			logging.FieldUserID, userID, logging.FieldTransactions, len(txs), logging.FieldCacheHit, false)
		return res, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Result), nil
	}
}

// Invalidate drops the cached reports of userID, e.g. after its data changed.
func (s *Reports) Invalidate(ctx context.Context, userID uuid.UUID) error {
	removed, err := s.cache.InvalidateUser(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Info("Report cache invalidated", logging.FieldUserID, userID, "removed", removed)
	return nil
}
