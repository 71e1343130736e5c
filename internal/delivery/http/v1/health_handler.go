package v1

import (
	"net/http"

	"go-hr-dashboard-backend/internal/delivery/http/response"
	"go-hr-dashboard-backend/internal/usecase"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	healthUC usecase.HealthUsecase
}

func NewHealthHandler(r gin.IRoutes, healthUC usecase.HealthUsecase) {
	handler := &HealthHandler{healthUC: healthUC}
	r.GET("/health", handler.Check)
}

// Check godoc
// @Summary      Health check
// @Description  Reports database and Redis connectivity. Returns 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200  {object}  response.Response{data=usecase.HealthStatus}
// @Failure      503  {object}  response.Response{data=usecase.HealthStatus}
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	status := h.healthUC.Check(c.Request.Context())
	if !status.Healthy {
		c.JSON(http.StatusServiceUnavailable, response.Response{
			Success: false,
			Error:   "Service unavailable",
			Data:    status,
		})
		return
	}

	response.Success(c, http.StatusOK, "System operational", status)
}
