package orchestrators

import (
	"context"
	"log/slog"

	"academia/internal/adapters/api/reports"
)

// DownloadReportInput names the export being requested.
type DownloadReportInput struct {
	Entity  string
	Format  string
	Filters map[string]any
}

// DownloadReportDeps holds dependencies for DownloadReport.
type DownloadReportDeps struct {
	Reports reports.Service
}

// ExecuteDownloadReport streams a backend-rendered export through to the
// caller.
// POST: the caller owns the returned Report.Body and must close it
func ExecuteDownloadReport(ctx context.Context, input DownloadReportInput, deps DownloadReportDeps) (reports.Report, error) {
	report, err := deps.Reports.Download(ctx, input.Entity, input.Format, input.Filters)
	if err != nil {
		return reports.Report{}, err
	}
	slog.Info("report_event", "event", "download", "entity", input.Entity, "format", input.Format)
	return report, nil
}
