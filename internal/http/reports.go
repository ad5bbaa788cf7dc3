package http

import (
	"net/http"
	"strings"

	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/util"
	echo "github.com/labstack/echo/v4"
)

// dailyReportHandler: leads and check-ins per UTC day; from/to default to today.
func dailyReportHandler(reports repository.ReportsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		today := util.NowParts().DayKey
		from := strings.TrimSpace(c.QueryParam("from"))
		to := strings.TrimSpace(c.QueryParam("to"))
		if from == "" {
			from = today
		}
		if to == "" {
			to = from
		}
		if !util.ValidDayKey(from) || !util.ValidDayKey(to) || from > to {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid date range"})
		}

		ctx := c.Request().Context()
		leads, err := reports.LeadsPerDay(ctx, from, to)
		if err != nil {
			c.Logger().Errorf("leads per day failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}
		checkins, err := reports.CheckinsPerDay(ctx, from, to)
		if err != nil {
			c.Logger().Errorf("checkins per day failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"from":     from,
			"to":       to,
			"leads":    leads,
			"checkins": checkins,
		})
	}
}

// hourlyReportHandler: check-ins of one UTC day bucketed by local hour.
func hourlyReportHandler(reports repository.ReportsRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		day := strings.TrimSpace(c.QueryParam("day"))
		if day == "" {
			day = util.NowParts().DayKey
		}
		if !util.ValidDayKey(day) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid day"})
		}

		hours, err := reports.CheckinsPerHour(c.Request().Context(), day)
		if err != nil {
			c.Logger().Errorf("checkins per hour failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "query failed"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"day":     day,
			"results": hours,
		})
	}
}
