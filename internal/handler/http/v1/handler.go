package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/service"
)

type Handler struct {
	barangays service.BarangayService
	drivers   service.DriverService
	vehicles  service.VehicleService
	incidents service.IncidentService
	tracking  service.TrackingService
	auth      service.AuthService
	dashboard service.DashboardService
	logger    *logrus.Logger
	validate  *validator.Validate
	cfg       *config.Config
}

func NewHandler(
	barangays service.BarangayService,
	drivers service.DriverService,
	vehicles service.VehicleService,
	incidents service.IncidentService,
	tracking service.TrackingService,
	auth service.AuthService,
	dashboard service.DashboardService,
	logger *logrus.Logger,
	cfg *config.Config,
) *Handler {
	return &Handler{
		barangays: barangays,
		drivers:   drivers,
		vehicles:  vehicles,
		incidents: incidents,
		tracking:  tracking,
		auth:      auth,
		dashboard: dashboard,
		logger:    logger,
		validate:  validator.New(),
		cfg:       cfg,
	}
}

// paramID разбирает числовой идентификатор из параметра пути
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// @Summary Get dashboard statistics
// @Description Get entity totals and the most recent incident reports. Requires session.
// @Tags Dashboard
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.DashboardStats
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /dashboard [get]
func (h *Handler) dashboardStats(c *gin.Context) {
	log := h.logger.WithField("method", "dashboardStats")

	stats, err := h.dashboard.Stats(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to get dashboard stats from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// @Summary Get application health status
// @Description Get health status of the application
// @Tags System
// @Produce json
// @Success 200 {object} map[string]string "Status OK"
// @Router /api/system/health [get]
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
