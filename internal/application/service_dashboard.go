package application

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// GetDashboardSummary aggregates the per-user dashboard numbers. The
// cache is best-effort on both sides: a miss or a cache failure falls
// through to the repositories, and a failed write never fails the
// request.
func (s *Service) GetDashboardSummary(ctx context.Context, userID uuid.UUID) (DashboardSummary, error) {
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, userID); err == nil && raw != nil {
			var cached DashboardSummary
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	now := s.nowFn()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, 0)

	active, err := s.dashboard.CountActiveOrders(ctx, userID)
	if err != nil {
		return DashboardSummary{}, err
	}
	overdue, err := s.dashboard.CountOverdueOrders(ctx, userID, now)
	if err != nil {
		return DashboardSummary{}, err
	}
	income, err := s.dashboard.SumIncome(ctx, userID, monthStart, monthEnd)
	if err != nil {
		return DashboardSummary{}, err
	}
	deadlines, err := s.dashboard.ListUpcomingDeadlines(ctx, userID, now, 5)
	if err != nil {
		return DashboardSummary{}, err
	}

	summary := DashboardSummary{
		ActiveOrders:      active,
		OverdueOrders:     overdue,
		MonthlyIncome:     income,
		UpcomingDeadlines: make([]UpcomingDeadlineItem, 0, len(deadlines)),
	}
	for _, row := range deadlines {
		summary.UpcomingDeadlines = append(summary.UpcomingDeadlines, toUpcomingDeadlineItem(row))
	}

	if s.cache != nil && s.cfg.DashboardCacheTTL > 0 {
		if raw, err := json.Marshal(summary); err == nil {
			_ = s.cache.Put(ctx, userID, raw, s.cfg.DashboardCacheTTL)
		}
	}
	return summary, nil
}
