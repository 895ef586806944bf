// Package projections assembles read models for the console pages.
// Projections never mutate anything backend-side.
package projections

import (
	"context"
	"sync"
	"time"

	"academia/internal/domain/billing"
	"academia/internal/domain/class"
)

// DashboardClassService fetches the class occupancy aggregate.
type DashboardClassService interface {
	Stats(ctx context.Context) (class.Stats, error)
}

// DashboardBillingService fetches the monthly payment rollup.
type DashboardBillingService interface {
	Summary(ctx context.Context, month string, year int) ([]billing.SummaryRow, error)
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Classes DashboardClassService
	Billing DashboardBillingService
}

// DashboardResult carries the output of the dashboard projection. Each
// section fails independently; an unavailable section renders as a
// placeholder rather than failing the whole page.
type DashboardResult struct {
	Stats    class.Stats
	StatsErr error

	PaidCount    int
	UnpaidCount  int
	SummaryMonth string
	SummaryErr   error
}

// QueryGetDashboard aggregates the dashboard sections, loading them
// concurrently the way the original console fired its requests.
func QueryGetDashboard(ctx context.Context, deps GetDashboardDeps, now time.Time) DashboardResult {
	month := billing.Months[int(now.Month())-1]
	result := DashboardResult{SummaryMonth: month}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		result.Stats, result.StatsErr = deps.Classes.Stats(ctx)
	}()

	go func() {
		defer wg.Done()
		rows, err := deps.Billing.Summary(ctx, month, now.Year())
		if err != nil {
			result.SummaryErr = err
			return
		}
		for _, row := range rows {
			if row.PaidMonth {
				result.PaidCount++
			} else {
				result.UnpaidCount++
			}
		}
	}()

	wg.Wait()
	return result
}
