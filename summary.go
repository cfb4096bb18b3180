package main

import (
	"net/http"

	"financetracker/summary"

	"github.com/gin-gonic/gin"
)

// Summary handler functions

// @Summary Get financial summary
// @Description Aggregate income, expenses, remaining balance, investment and sales figures for a period, with percentage changes against the preceding period, the top expense categories and a gap-filled daily series. Amounts are in milliunits.
// @Tags summary
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param accountId query string false "Restrict to one account"
// @Param categoryId query string false "Restrict to one category"
// @Param companyMode query string false "Pivot onto the Investment (true) or Sales (sales) account"
// @Success 200 {object} map[string]interface{} "data: summary"
// @Failure 400 {object} map[string]interface{} "Bad request"
// @Failure 401 {object} map[string]interface{} "Unauthorized"
// @Failure 500 {object} map[string]interface{} "Error calculating summary"
// @Router /api/summary [get]
func getSummary(c *gin.Context) {
	req := summary.Request{
		From:       c.Query("from"),
		To:         c.Query("to"),
		AccountID:  c.Query("accountId"),
		CategoryID: c.Query("categoryId"),
		Pivot:      summary.ParsePivot(c.Query("companyMode")),
	}
	if req.AccountID != "" {
		if err := validateID("accountId", req.AccountID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if req.CategoryID != "" {
		if err := validateID("categoryId", req.CategoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := aggregator.Summarize(ctx, scopeFrom(c), req)
	if err != nil {
		statusCode, message := handleSummaryError(err)
		log := requestLogger(c)
		if statusCode >= http.StatusInternalServerError {
			log.Error().Err(err).Msg("Error calculating summary")
		} else {
			log.Warn().Err(err).Msg("Rejected summary request")
		}
		c.JSON(statusCode, gin.H{"error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}
