package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ammichelon/dashboard-dinetec/internal/model"
	"github.com/ammichelon/dashboard-dinetec/internal/repository"
	"github.com/ammichelon/dashboard-dinetec/internal/service/capture"
	echo "github.com/labstack/echo/v4"
)

type checkinReq struct {
	Origem string `json:"origem"`
}

func registerLeadHandler(svc *capture.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.LeadInput
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		res, err := svc.Register(c.Request().Context(), req)
		if err != nil {
			return captureError(c, err)
		}

		status := http.StatusOK
		if res.Created {
			status = http.StatusCreated
		}
		return c.JSON(status, res)
	}
}

func getLeadHandler(svc *capture.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		phone := strings.TrimSpace(c.QueryParam("telefone"))
		lead, err := svc.Lead(c.Request().Context(), phone)
		if err != nil {
			return captureError(c, err)
		}
		return c.JSON(http.StatusOK, lead)
	}
}

func createCheckinHandler(svc *capture.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := leadIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid lead id"})
		}

		var req checkinReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		chk, err := svc.CheckinByID(c.Request().Context(), id, req.Origem, capture.SourceHTTP)
		if err != nil {
			return captureError(c, err)
		}
		return c.JSON(http.StatusCreated, chk)
	}
}

func listCheckinsHandler(svc *capture.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := leadIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid lead id"})
		}

		limit := 50
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
				limit = n
			}
		}

		rows, err := svc.Checkins(c.Request().Context(), id, limit)
		if err != nil {
			c.Logger().Errorf("list checkins failed: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"lead_id": id,
			"limit":   limit,
			"count":   len(rows),
			"results": rows,
		})
	}
}

func leadIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

func captureError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, capture.ErrInvalidInput):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, capture.ErrLeadNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "lead not found"})
	case errors.Is(err, repository.ErrDuplicatePhone):
		return c.JSON(http.StatusConflict, map[string]string{"error": "phone already registered"})
	}

	c.Logger().Errorf("capture failed: %v", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"})
}
