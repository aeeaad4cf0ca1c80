package jobs

import (
	"context"

	"staffdesk/internal/domain/reports"
	"staffdesk/internal/domain/staff"
	"staffdesk/internal/platform/metrics"
)

const JobStatsRefresh = "stats_refresh"

type StatsSnapshot struct {
	Total        int            `json:"total"`
	ByRole       map[string]int `json:"byRole"`
	ByDepartment map[string]int `json:"byDepartment"`
}

// StatsRefresh recomputes the headcount gauges from the store.
func StatsRefresh(store *staff.Store, collector *metrics.Collector) RunFunc {
	return func(ctx context.Context) (any, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		records := store.List()
		snapshot := StatsSnapshot{
			Total:        len(records),
			ByRole:       reports.CountByRole(records),
			ByDepartment: reports.CountByDepartment(records),
		}
		collector.SetHeadcount(snapshot.Total, snapshot.ByRole, snapshot.ByDepartment)
		return snapshot, nil
	}
}
