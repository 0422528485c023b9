package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/budgetwise/statistics/internal/application/usecase/statistics"
	"github.com/budgetwise/statistics/internal/integration/entrypoint/dto"
)

// StatisticsController handles the statistics view endpoints.
type StatisticsController struct {
	getStatisticsUseCase *statistics.GetStatisticsUseCase
}

// NewStatisticsController creates a new statistics controller instance.
func NewStatisticsController(getStatisticsUseCase *statistics.GetStatisticsUseCase) *StatisticsController {
	return &StatisticsController{
		getStatisticsUseCase: getStatisticsUseCase,
	}
}

// GetStatistics handles GET /statistics requests.
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ToStatisticsResponse(output))
}

// GetSummary handles GET /statistics/summary requests.
func (c *StatisticsController) GetSummary(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.SummaryEnvelope{
		Period: dto.ToPeriodResponse(output.Period),
		Data:   dto.ToSummaryResponse(output.Summary),
	})
}

// GetCategories handles GET /statistics/categories requests.
func (c *StatisticsController) GetCategories(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.CategoryTotalsEnvelope{
		Period: dto.ToPeriodResponse(output.Period),
		Data:   dto.ToCategoryTotalsResponse(output.Categories),
	})
}

// GetMonthly handles GET /statistics/monthly requests.
func (c *StatisticsController) GetMonthly(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.MonthlyEnvelope{
		Period:       dto.ToPeriodResponse(output.Period),
		Data:         dto.ToMonthlyResponse(output.Monthly),
		SkippedCount: output.SkippedCount,
	})
}

// GetTypes handles GET /statistics/types requests.
func (c *StatisticsController) GetTypes(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.CategoryTotalsEnvelope{
		Period: dto.ToPeriodResponse(output.Period),
		Data:   dto.ToCategoryTotalsResponse(output.Types),
	})
}

// GetComparison handles GET /statistics/comparison requests.
func (c *StatisticsController) GetComparison(ctx *gin.Context) {
	output, ok := c.execute(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, dto.ComparisonEnvelope{
		Period: dto.ToPeriodResponse(output.Period),
		Data:   dto.ToComparisonResponse(output.Comparison),
	})
}

func (c *StatisticsController) execute(ctx *gin.Context) (*statistics.GetStatisticsOutput, bool) {
	userID, token, ok := requireUser(ctx)
	if !ok {
		return nil, false
	}

	query := statisticsQuery(ctx)

	topLimit, err := strconv.Atoi(ctx.DefaultQuery("top", "0"))
	if err != nil || topLimit < 0 {
		topLimit = 0
	}

	output, err := c.getStatisticsUseCase.Execute(ctx.Request.Context(), statistics.GetStatisticsInput{
		UserID:      userID,
		AccessToken: token,
		Period:      query.Period,
		StartDate:   query.StartDate,
		EndDate:     query.EndDate,
		TopLimit:    topLimit,
	})
	if err != nil {
		handleStatisticsError(ctx, err)
		return nil, false
	}

	return output, true
}

// statisticsQuery reads the period selection shared by the statistics endpoints.
func statisticsQuery(ctx *gin.Context) dto.StatisticsQuery {
	return dto.StatisticsQuery{
		Period:    ctx.Query("period"),
		StartDate: ctx.Query("start_date"),
		EndDate:   ctx.Query("end_date"),
	}
}
