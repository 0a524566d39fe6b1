package statshandler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"promptory-server/internal/domain/stats"
	"promptory-server/internal/interfaces/httpserver/middlewares"
	"promptory-server/internal/interfaces/httpserver/responses"
)

// StatsHandler exposes per-user aggregate views.
type StatsHandler struct {
	service *stats.Service
}

func NewStatsHandler(service *stats.Service) *StatsHandler {
	return &StatsHandler{service: service}
}

// Summary godoc
// @Summary      Conversation summary
// @Description  Returns the caller's total conversation count and a per-source breakdown.
// @Tags         statistics
// @Produce      json
// @Success      200  {object}  stats.Summary
// @Router       /api/v1/statistics/summary [get]
func (h *StatsHandler) Summary(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err, "failed to build summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Tags godoc
// @Summary      Most frequent tags
// @Description  Returns the caller's most frequent tags in descending count order.
// @Tags         statistics
// @Produce      json
// @Success      200  {array}  stats.TagCount
// @Router       /api/v1/statistics/tags [get]
func (h *StatsHandler) Tags(c *gin.Context) {
	principal, ok := middlewares.PrincipalFromContext(c)
	if !ok {
		responses.HandleErrorWithStatus(c, http.StatusUnauthorized, errors.New("authentication required"), "unauthorized")
		return
	}

	counts, err := h.service.TagFrequency(c.Request.Context(), principal.UserID)
	if err != nil {
		responses.HandleError(c, err, "failed to aggregate tags")
		return
	}

	if counts == nil {
		counts = []stats.TagCount{}
	}
	c.JSON(http.StatusOK, counts)
}
