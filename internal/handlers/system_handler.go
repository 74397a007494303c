package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fiscal-ops-backend/internal/repository"
	"fiscal-ops-backend/internal/services/monthly"
)

type SystemHandler struct {
	logs    *repository.SystemLogRepository
	monthly *monthly.Service
}

func NewSystemHandler(logs *repository.SystemLogRepository, monthly *monthly.Service) *SystemHandler {
	return &SystemHandler{logs: logs, monthly: monthly}
}

func (h *SystemHandler) ListLogs(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}

	entries, err := h.logs.List(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// RunMonthly is the manual trigger for the reconciliation job.
func (h *SystemHandler) RunMonthly(c *gin.Context) {
	result, err := h.monthly.Run()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
