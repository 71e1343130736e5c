package domain

import "context"

// ChartType selects one of the fixed dashboard aggregations.
type ChartType string

const (
	ChartMonthly ChartType = "monthly"
	ChartByJob   ChartType = "by-job"
)

// SupportedChartTypes lists every selector accepted by the charts endpoint.
var SupportedChartTypes = []ChartTypeInfo{
	{Type: ChartMonthly, Description: "Applications per calendar month for the most recent months, oldest first"},
	{Type: ChartByJob, Description: "Applications per job posting for the most applied-to jobs, busiest first"},
}

type ChartTypeInfo struct {
	Type        ChartType `json:"type"`
	Description string    `json:"description"`
}

// Export formats accepted by the export endpoint.
const (
	ExportFormatXLSX = "xlsx"
	ExportFormatCSV  = "csv"
)

// ChartQuery is the validated query string of the charts endpoints.
type ChartQuery struct {
	Type   string `form:"type" validate:"oneof=monthly by-job"`
	Format string `form:"format" validate:"omitempty,oneof=xlsx csv"`
}

// Scope is the set of jobs a caller may aggregate over. It is closed: the only
// implementations are AllJobs and OwnedJobs.
type Scope interface {
	isScope()
}

// AllJobs is the unrestricted scope granted to admins.
type AllJobs struct{}

// OwnedJobs restricts aggregation to the listed job ids.
type OwnedJobs struct {
	IDs []string
}

func (AllJobs) isScope()   {}
func (OwnedJobs) isScope() {}

// IsEmptyScope reports whether scope can match no application at all.
func IsEmptyScope(scope Scope) bool {
	owned, ok := scope.(OwnedJobs)
	return ok && len(owned.IDs) == 0
}

// MonthlyCount is one row of the monthly chart.
type MonthlyCount struct {
	Month string `json:"month"` // YYYY-MM
	Count int    `json:"count"`
}

// JobApplicationCount is one row of the by-job chart.
type JobApplicationCount struct {
	JobID    string `json:"job_id"`
	JobTitle string `json:"job_title"`
	Count    int    `json:"count"`
}

// ChartResult carries the rows of exactly one chart type.
type ChartResult struct {
	Type    ChartType
	Monthly []MonthlyCount
	ByJob   []JobApplicationCount
}

// Rows returns the populated row slice, never nil, for JSON encoding.
func (r *ChartResult) Rows() interface{} {
	if r.Type == ChartByJob {
		if r.ByJob == nil {
			return []JobApplicationCount{}
		}
		return r.ByJob
	}
	if r.Monthly == nil {
		return []MonthlyCount{}
	}
	return r.Monthly
}

// Len returns the number of rows.
func (r *ChartResult) Len() int {
	if r.Type == ChartByJob {
		return len(r.ByJob)
	}
	return len(r.Monthly)
}

type DashboardUsecase interface {
	GetChartData(ctx context.Context, userID string, query ChartQuery) (*ChartResult, error)
	ExportChartData(ctx context.Context, userID string, query ChartQuery) ([]byte, string, error)
	ChartTypes(ctx context.Context, userID string) ([]ChartTypeInfo, error)
}
