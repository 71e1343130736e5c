package v1_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hr-dashboard-backend/config"
	v1 "go-hr-dashboard-backend/internal/delivery/http/v1"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/internal/usecase"
	"go-hr-dashboard-backend/pkg/apperror"
	"go-hr-dashboard-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret"

type MockDashboardUsecase struct {
	mock.Mock
}

func (m *MockDashboardUsecase) GetChartData(ctx context.Context, userID string, query domain.ChartQuery) (*domain.ChartResult, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChartResult), args.Error(1)
}

func (m *MockDashboardUsecase) ExportChartData(ctx context.Context, userID string, query domain.ChartQuery) ([]byte, string, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

func (m *MockDashboardUsecase) ChartTypes(ctx context.Context, userID string) ([]domain.ChartTypeInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ChartTypeInfo), args.Error(1)
}

type staticHealth usecase.HealthStatus

func (s staticHealth) Check(context.Context) usecase.HealthStatus { return usecase.HealthStatus(s) }

func newTestRouter(uc domain.DashboardUsecase, health usecase.HealthUsecase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if health == nil {
		health = staticHealth{Healthy: true, Database: "ok", Redis: "disabled"}
	}
	return v1.NewRouter(v1.RouterDeps{
		DashboardUC: uc,
		HealthUC:    health,
		Verifier:    auth.NewVerifier(testSecret, nil),
		Config: &config.Config{
			AppEnv:                   "test",
			FrontendURL:              "http://localhost:3000",
			RateLimitWindowSeconds:   60,
			RateLimitGlobalThreshold: 1000,
		},
	})
}

func bearer(t *testing.T, sub string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func get(router http.Handler, path, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// envelope returns the response body without the per-request id.
func envelope(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, w.Header().Get("X-Request-ID"), body["request_id"])
	delete(body, "request_id")
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return string(raw)
}

func TestGetCharts(t *testing.T) {
	t.Run("Monthly chart data in the success envelope", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		uc.On("GetChartData", mock.Anything, "hr-1", domain.ChartQuery{Type: "monthly"}).
			Return(&domain.ChartResult{
				Type:    domain.ChartMonthly,
				Monthly: []domain.MonthlyCount{{Month: "2024-01", Count: 2}, {Month: "2024-02", Count: 1}},
			}, nil)

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts?type=monthly", bearer(t, "hr-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[{"month":"2024-01","count":2},{"month":"2024-02","count":1}]}`, envelope(t, w))
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		uc.AssertExpectations(t)
	})

	t.Run("Empty result is an empty array", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		uc.On("GetChartData", mock.Anything, "hr-1", domain.ChartQuery{Type: "by-job"}).
			Return(&domain.ChartResult{Type: domain.ChartByJob}, nil)

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts?type=by-job", bearer(t, "hr-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"success":true,"data":[]}`, envelope(t, w))
	})

	t.Run("Missing token is 401 without reaching the usecase", func(t *testing.T) {
		uc := new(MockDashboardUsecase)

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts?type=monthly", "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.NotEmpty(t, body["error"])
		uc.AssertNotCalled(t, "GetChartData", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Token signed with another secret is 401", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "hr-1"})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		w := get(newTestRouter(new(MockDashboardUsecase), nil), "/api/hr/dashboard/charts?type=monthly", "Bearer "+signed)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Session cookie is accepted", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		uc.On("GetChartData", mock.Anything, "hr-1", mock.Anything).
			Return(&domain.ChartResult{Type: domain.ChartMonthly}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/hr/dashboard/charts?type=monthly", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: bearer(t, "hr-1")[len("Bearer "):]})
		w := httptest.NewRecorder()
		newTestRouter(uc, nil).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	errorCases := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"Missing profile", apperror.NotFound("Profile not found"), http.StatusNotFound,
			`{"success":false,"error":"Profile not found"}`},
		{"Wrong role", apperror.Forbidden("Only HR and admin users can view dashboard charts"), http.StatusForbidden,
			`{"success":false,"error":"Only HR and admin users can view dashboard charts"}`},
		{"Invalid type", apperror.BadRequest(`Invalid type "weekly". Supported values: monthly, by-job`), http.StatusBadRequest,
			`{"success":false,"error":"Invalid type \"weekly\". Supported values: monthly, by-job"}`},
		{"Store failure carries its code", apperror.Store("relation \"jobs\" does not exist", "42P01", errors.New("pg")), http.StatusInternalServerError,
			`{"success":false,"error":"relation \"jobs\" does not exist","code":"42P01"}`},
		{"Unexpected error is generic", errors.New("boom"), http.StatusInternalServerError,
			`{"success":false,"error":"An unexpected error occurred. Please try again later."}`},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			uc := new(MockDashboardUsecase)
			uc.On("GetChartData", mock.Anything, "user-1", mock.Anything).Return(nil, tc.err)

			w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts?type=weekly", bearer(t, "user-1"))

			assert.Equal(t, tc.status, w.Code)
			assert.JSONEq(t, tc.body, envelope(t, w))
		})
	}
}

func TestGetChartTypes(t *testing.T) {
	uc := new(MockDashboardUsecase)
	uc.On("ChartTypes", mock.Anything, "admin-1").Return(domain.SupportedChartTypes, nil)

	w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts/types", bearer(t, "admin-1"))

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                   `json:"success"`
		Data    []domain.ChartTypeInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, len(domain.SupportedChartTypes))
}

func TestExportChart(t *testing.T) {
	t.Run("CSV download", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		query := domain.ChartQuery{Type: "by-job", Format: "csv"}
		uc.On("ExportChartData", mock.Anything, "hr-1", query).
			Return([]byte("JOB ID,JOB TITLE,APPLICATIONS\n"), "applications_by-job_20240301_120000.csv", nil)

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts/export?type=by-job&format=csv", bearer(t, "hr-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, `attachment; filename="applications_by-job_20240301_120000.csv"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "JOB ID,JOB TITLE,APPLICATIONS\n", w.Body.String())
	})

	t.Run("Excel is the default content type", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		uc.On("ExportChartData", mock.Anything, "hr-1", domain.ChartQuery{Type: "monthly"}).
			Return([]byte("PK"), "applications_monthly_20240301_120000.xlsx", nil)

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts/export?type=monthly", bearer(t, "hr-1"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	})

	t.Run("Errors use the JSON envelope", func(t *testing.T) {
		uc := new(MockDashboardUsecase)
		uc.On("ExportChartData", mock.Anything, "hr-1", mock.Anything).
			Return(nil, "", apperror.BadRequest(`Invalid format "pdf". Supported values: xlsx, csv`))

		w := get(newTestRouter(uc, nil), "/api/hr/dashboard/charts/export?type=monthly&format=pdf", bearer(t, "hr-1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestHealth(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		w := get(newTestRouter(new(MockDashboardUsecase), nil), "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"ok"`)
	})

	t.Run("Database down is 503", func(t *testing.T) {
		down := staticHealth{Healthy: false, Database: "unreachable", Redis: "ok"}
		w := get(newTestRouter(new(MockDashboardUsecase), down), "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}
