package usecase

import (
	"sort"
	"time"

	"go-hr-dashboard-backend/internal/domain"
)

const (
	// UnknownJobTitle labels applications whose job no longer exists.
	UnknownJobTitle = "Unknown Job"
	// UnknownJobID groups applications that carry no job_id.
	UnknownJobID = "unknown"

	monthKeyLayout = "2006-01"
)

// AggregateMonthly counts timestamps per YYYY-MM month in loc and returns the
// last limit months present, oldest first. Months without applications are
// not synthesized.
func AggregateMonthly(timestamps []time.Time, loc *time.Location, limit int) []domain.MonthlyCount {
	counts := make(map[string]int)
	for _, ts := range timestamps {
		counts[ts.In(loc).Format(monthKeyLayout)]++
	}

	result := make([]domain.MonthlyCount, 0, len(counts))
	for month, count := range counts {
		result = append(result, domain.MonthlyCount{Month: month, Count: count})
	}

	// YYYY-MM sorts chronologically as a string
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})

	if limit > 0 && len(result) > limit {
		result = result[len(result)-limit:]
	}
	return result
}

// AggregateByJob counts rows per job and returns the limit busiest jobs.
// Equal counts keep the order in which each job was first seen in rows.
func AggregateByJob(rows []domain.ApplicationJobRow, limit int) []domain.JobApplicationCount {
	index := make(map[string]int)
	result := make([]domain.JobApplicationCount, 0)

	for _, row := range rows {
		jobID := UnknownJobID
		if row.JobID != nil && *row.JobID != "" {
			jobID = *row.JobID
		}

		i, seen := index[jobID]
		if !seen {
			title := UnknownJobTitle
			if row.JobTitle != nil && *row.JobTitle != "" {
				title = *row.JobTitle
			}
			i = len(result)
			index[jobID] = i
			result = append(result, domain.JobApplicationCount{JobID: jobID, JobTitle: title})
		}
		result[i].Count++
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
