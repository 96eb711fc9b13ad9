package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loftwork/internal/application/dashboard/usecases"
	"loftwork/internal/shared/logger"
	"loftwork/internal/shared/utils"
)

type DashboardHandler struct {
	getStatsUC usecases.GetDashboardStatsExecutor
	logger     logger.Interface
}

func NewDashboardHandler(getStatsUC usecases.GetDashboardStatsExecutor) *DashboardHandler {
	return &DashboardHandler{
		getStatsUC: getStatsUC,
		logger:     logger.NewLogger(),
	}
}

// GetStats handles GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	result, err := h.getStatsUC.Execute(c.Request.Context(), usecases.GetDashboardStatsQuery{})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}
