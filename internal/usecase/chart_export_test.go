package usecase_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"
	"time"

	"go-hr-dashboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportChartDataCSV(t *testing.T) {
	data, filename, err := newUsecase(sharedStore()).ExportChartData(context.Background(), "admin-1",
		domain.ChartQuery{Type: "by-job", Format: "csv"})
	require.NoError(t, err)

	assert.Regexp(t, `^applications_by-job_\d{8}_\d{6}\.csv$`, filename)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"JOB ID", "JOB TITLE", "APPLICATIONS"},
		{"job-a", "Backend Engineer", "2"},
		{"job-b", "Designer", "2"},
	}, records)
}

func TestExportChartDataDefaultsToExcel(t *testing.T) {
	data, filename, err := newUsecase(sharedStore()).ExportChartData(context.Background(), "hr-1",
		domain.ChartQuery{Type: "monthly"})
	require.NoError(t, err)
	assert.Regexp(t, `\.xlsx$`, filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("monthly")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"MONTH", "APPLICATIONS"},
		{"2024-01", "2"},
	}, rows)
}

func TestExportChartDataRejectsUnknownFormat(t *testing.T) {
	store := sharedStore()
	_, _, err := newUsecase(store).ExportChartData(context.Background(), "admin-1",
		domain.ChartQuery{Type: "monthly", Format: "pdf"})

	appErr := requireAppError(t, err, http.StatusBadRequest)
	assert.Contains(t, appErr.Message, `"pdf"`)
	assert.Contains(t, appErr.Message, "xlsx, csv")
	assert.Zero(t, store.appQueries)
}

func TestExportChartDataRequiresDashboardRole(t *testing.T) {
	_, _, err := newUsecase(sharedStore()).ExportChartData(context.Background(), "candidate",
		domain.ChartQuery{Type: "monthly", Format: "csv"})
	requireAppError(t, err, http.StatusForbidden)
}

func TestExportChartDataCSVEscapesFormulas(t *testing.T) {
	store := sharedStore()
	store.jobs = append(store.jobs,
		domain.Job{ID: "job-f", Title: `=HYPERLINK("http://evil.example","Apply")`, CreatedBy: "hr-1"},
		domain.Job{ID: "job-g", Title: "-Senior Engineer", CreatedBy: "hr-1"},
	)
	store.applications = append(store.applications,
		memoryApplication{JobID: strPtr("job-f"), CreatedAt: month(2024, time.April, 1)},
		memoryApplication{JobID: strPtr("job-g"), CreatedAt: month(2024, time.April, 2)},
	)

	data, _, err := newUsecase(store).ExportChartData(context.Background(), "hr-1",
		domain.ChartQuery{Type: "by-job", Format: "csv"})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"JOB ID", "JOB TITLE", "APPLICATIONS"},
		{"job-a", "Backend Engineer", "2"},
		{"job-f", `'=HYPERLINK("http://evil.example","Apply")`, "1"},
		{"job-g", "'-Senior Engineer", "1"},
	}, records)
}
