package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
)

type DashboardHandler struct {
	service *admin.Service
	logger  *zap.Logger
}

func NewDashboardHandler(service *admin.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger.Named("dashboard_handler")}
}

func (h *DashboardHandler) Page(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		render(c, http.StatusBadGateway, "dashboard.html", gin.H{
			"Title": "Dashboard",
			"Stats": admin.Dashboard{},
			"Error": "Failed to load dashboard. Please try again.",
		})
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{"Title": "Dashboard", "Stats": stats})
}

func (h *DashboardHandler) JSON(c *gin.Context) {
	stats, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load dashboard", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load dashboard"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
