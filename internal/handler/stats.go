package handler

import (
	"net/http"
	"time"

	"visitorlog/internal/service"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct{ svc service.StatsService }

func NewStatsHandler(svc service.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Get godoc
// @Summary Point-in-time visitor counters
// @Tags stats
// @Produce json
// @Success 200 {object} dto.StatsResponse
// @Router /v1/stats [get]
func (h *StatsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Compute(c.Request.Context(), time.Now())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
