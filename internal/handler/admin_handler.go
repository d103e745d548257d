package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/aiclases-pricing/internal/dto"
	"github.com/anyulbade/aiclases-pricing/internal/service"
)

type AdminHandler struct {
	activity  *service.ActivityService
	dashboard *service.DashboardService
}

func NewAdminHandler(activity *service.ActivityService, dashboard *service.DashboardService) *AdminHandler {
	return &AdminHandler{activity: activity, dashboard: dashboard}
}

func (h *AdminHandler) GetActivity(c *gin.Context) {
	activities := h.activity.List(c.Query("type"), dto.ParseLimit(c))
	c.JSON(http.StatusOK, dto.ActivityResponse{Activities: activities, Total: len(activities)})
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	data := h.dashboard.Build(dto.ParseLimit(c))

	wantsHTML := c.Query("format") == "html" || strings.Contains(c.GetHeader("Accept"), "text/html")

	if wantsHTML {
		html, err := h.dashboard.RenderHTML(data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render HTML: " + err.Error()})
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	c.JSON(http.StatusOK, data)
}
