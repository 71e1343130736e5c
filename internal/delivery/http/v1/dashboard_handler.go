package v1

import (
	"net/http"

	"go-hr-dashboard-backend/internal/delivery/http/response"
	"go-hr-dashboard-backend/internal/domain"
	"go-hr-dashboard-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

type DashboardHandler struct {
	dashboardUC domain.DashboardUsecase
}

// NewDashboardHandler registers the HR dashboard chart routes on an
// authenticated group.
func NewDashboardHandler(protected *gin.RouterGroup, dashboardUC domain.DashboardUsecase) {
	handler := &DashboardHandler{
		dashboardUC: dashboardUC,
	}

	protected.GET("/charts", handler.GetCharts)
	protected.GET("/charts/types", handler.GetChartTypes)
	protected.GET("/charts/export", handler.ExportChart)
}

// GetCharts godoc
// @Summary      Get application chart data
// @Description  Aggregates applications per month (monthly) or per job (by-job). HR users see their own jobs only; admins see every job.
// @Tags         hr-dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        type  query     string  true  "Chart type"  Enums(monthly, by-job)
// @Success      200   {object}  response.Response{data=[]domain.MonthlyCount}
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      500   {object}  response.Response
// @Router       /api/hr/dashboard/charts [get]
func (h *DashboardHandler) GetCharts(c *gin.Context) {
	query, ok := bindChartQuery(c)
	if !ok {
		return
	}

	result, err := h.dashboardUC.GetChartData(c.Request.Context(), c.GetString(string(domain.KeyUserID)), query)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "", result.Rows())
}

// GetChartTypes godoc
// @Summary      List chart types
// @Description  Returns the chart types the dashboard can request
// @Tags         hr-dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]domain.ChartTypeInfo}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /api/hr/dashboard/charts/types [get]
func (h *DashboardHandler) GetChartTypes(c *gin.Context) {
	types, err := h.dashboardUC.ChartTypes(c.Request.Context(), c.GetString(string(domain.KeyUserID)))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Chart types retrieved", types)
}

// ExportChart godoc
// @Summary      Export chart data to Excel/CSV
// @Description  Downloads the same rows as GET /charts as an Excel workbook or CSV file
// @Tags         hr-dashboard
// @Produce      application/octet-stream
// @Security     BearerAuth
// @Param        type    query     string  true   "Chart type"  Enums(monthly, by-job)
// @Param        format  query     string  false  "Export format (xlsx, csv). Default: xlsx"
// @Success      200     {file}    binary
// @Failure      400     {object}  response.Response
// @Failure      401     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Router       /api/hr/dashboard/charts/export [get]
func (h *DashboardHandler) ExportChart(c *gin.Context) {
	query, ok := bindChartQuery(c)
	if !ok {
		return
	}

	data, filename, err := h.dashboardUC.ExportChartData(c.Request.Context(), c.GetString(string(domain.KeyUserID)), query)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := contentTypeXLSX
	if query.Format == domain.ExportFormatCSV {
		contentType = contentTypeCSV
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}

func bindChartQuery(c *gin.Context) (domain.ChartQuery, bool) {
	var query domain.ChartQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.Error(apperror.BadRequest("Invalid query parameters"))
		return query, false
	}
	return query, true
}
