package usecase

import (
	"context"
	"errors"
	"time"

	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"
	"go-hr-dashboard-backend/pkg/logger"
	"go-hr-dashboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// ChartOptions controls how raw rows become chart rows.
type ChartOptions struct {
	Location     *time.Location // calendar for month keys
	MonthlyLimit int
	ByJobLimit   int
}

// DefaultChartOptions buckets months in UTC and keeps 12 months / 10 jobs.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Location:     time.UTC,
		MonthlyLimit: 12,
		ByJobLimit:   10,
	}
}

type dashboardUsecase struct {
	profileRepo     domain.ProfileRepository
	jobRepo         domain.JobRepository
	applicationRepo domain.ApplicationRepository
	validate        *validator.Validate
	opts            ChartOptions
	now             func() time.Time
}

// NewDashboardUsecase creates the HR dashboard chart usecase
func NewDashboardUsecase(
	profileRepo domain.ProfileRepository,
	jobRepo domain.JobRepository,
	applicationRepo domain.ApplicationRepository,
	validate *validator.Validate,
	opts ChartOptions,
) domain.DashboardUsecase {
	defaults := DefaultChartOptions()
	if opts.Location == nil {
		opts.Location = defaults.Location
	}
	if opts.MonthlyLimit <= 0 {
		opts.MonthlyLimit = defaults.MonthlyLimit
	}
	if opts.ByJobLimit <= 0 {
		opts.ByJobLimit = defaults.ByJobLimit
	}
	return &dashboardUsecase{
		profileRepo:     profileRepo,
		jobRepo:         jobRepo,
		applicationRepo: applicationRepo,
		validate:        validate,
		opts:            opts,
		now:             time.Now,
	}
}

// GetChartData authorizes the caller, resolves which jobs they may see and
// aggregates the matching applications into the requested chart.
func (uc *dashboardUsecase) GetChartData(ctx context.Context, userID string, query domain.ChartQuery) (*domain.ChartResult, error) {
	query.Format = ""
	return uc.chartData(ctx, userID, query)
}

func (uc *dashboardUsecase) chartData(ctx context.Context, userID string, query domain.ChartQuery) (*domain.ChartResult, error) {
	// 1. Authenticate & authorize
	profile, err := uc.authorize(ctx, userID)
	if err != nil {
		return nil, err
	}

	// 2. Validate chart selector (and export format, when present)
	if err := uc.validateQuery(query); err != nil {
		return nil, err
	}
	chartType := domain.ChartType(query.Type)

	// 3. Resolve visibility scope
	scope, err := uc.resolveScope(ctx, userID, profile.Role)
	if err != nil {
		return nil, err
	}

	result := &domain.ChartResult{Type: chartType}
	if domain.IsEmptyScope(scope) {
		return result, nil
	}

	// 4. Fetch & aggregate
	switch chartType {
	case domain.ChartMonthly:
		timestamps, err := uc.applicationRepo.ListCreatedAt(ctx, scope)
		if err != nil {
			return nil, storeFailure(err)
		}
		result.Monthly = AggregateMonthly(timestamps, uc.opts.Location, uc.opts.MonthlyLimit)
	case domain.ChartByJob:
		rows, err := uc.applicationRepo.ListWithJobTitle(ctx, scope)
		if err != nil {
			return nil, storeFailure(err)
		}
		result.ByJob = AggregateByJob(rows, uc.opts.ByJobLimit)
	}

	logger.Log.Debug("Chart data aggregated",
		"chart_type", chartType,
		"role", profile.Role,
		"rows", result.Len(),
	)
	return result, nil
}

// ChartTypes lists the supported selectors for any caller allowed to see the dashboard.
func (uc *dashboardUsecase) ChartTypes(ctx context.Context, userID string) ([]domain.ChartTypeInfo, error) {
	if _, err := uc.authorize(ctx, userID); err != nil {
		return nil, err
	}
	types := make([]domain.ChartTypeInfo, len(domain.SupportedChartTypes))
	copy(types, domain.SupportedChartTypes)
	return types, nil
}

func (uc *dashboardUsecase) authorize(ctx context.Context, userID string) (*domain.Profile, error) {
	if userID == "" {
		return nil, apperror.Unauthorized("Authentication required")
	}

	profile, err := uc.profileRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, storeFailure(err)
	}

	if !profile.Role.CanViewDashboard() {
		return nil, apperror.Forbidden("Only HR and admin users can view dashboard charts")
	}
	return profile, nil
}

func (uc *dashboardUsecase) validateQuery(query domain.ChartQuery) error {
	if err := uc.validate.Struct(query); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return apperror.Internal(err)
		}
		return apperror.BadRequest(validation.Message(err))
	}
	return nil
}

// resolveScope grants admins every job and HR users only the jobs they created.
func (uc *dashboardUsecase) resolveScope(ctx context.Context, userID string, role domain.Role) (domain.Scope, error) {
	if role == domain.RoleAdmin {
		return domain.AllJobs{}, nil
	}

	ids, err := uc.jobRepo.ListIDsByOwner(ctx, userID)
	if err != nil {
		return nil, storeFailure(err)
	}
	return domain.OwnedJobs{IDs: ids}, nil
}

// storeFailure classifies repository errors, including raw pgx errors from
// repositories that did not classify them.
func storeFailure(err error) error {
	return apperror.FromStore(err)
}
