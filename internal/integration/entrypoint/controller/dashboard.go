package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/internal/application/usecase/dashboard"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	getDashboardUseCase      *dashboard.GetDashboardUseCase
	getBudgetProgressUseCase *dashboard.GetBudgetProgressUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	getDashboardUseCase *dashboard.GetDashboardUseCase,
	getBudgetProgressUseCase *dashboard.GetBudgetProgressUseCase,
) *DashboardController {
	return &DashboardController{
		getDashboardUseCase:      getDashboardUseCase,
		getBudgetProgressUseCase: getBudgetProgressUseCase,
	}
}

// GetDashboard handles GET /dashboard requests.
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	userID, token, ok := requireUser(ctx)
	if !ok {
		return
	}

	output, err := c.getDashboardUseCase.Execute(ctx.Request.Context(), dashboard.GetDashboardInput{
		UserID:      userID,
		AccessToken: token,
	})
	if err != nil {
		handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToDashboardResponse(output))
}

// GetBudgetProgress handles GET /budget/progress requests.
func (c *DashboardController) GetBudgetProgress(ctx *gin.Context) {
	userID, token, ok := requireUser(ctx)
	if !ok {
		return
	}

	progress, err := c.getBudgetProgressUseCase.Execute(ctx.Request.Context(), dashboard.GetBudgetProgressInput{
		UserID:      userID,
		AccessToken: token,
		Month:       ctx.Query("month"),
	})
	if err != nil {
		handleStatisticsError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BudgetProgressEnvelope{
		Data: dto.ToBudgetProgressResponse(*progress),
	})
}
