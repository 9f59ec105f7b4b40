package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API.
// Группа /api открыта для GPS-устройств и публичной формы обращений,
// остальные маршруты панели защищены сессией.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	// Публичные маршруты устройств и граждан
	api := router.Group("/api")
	{
		api.POST("/store-location", h.storeLocation)
		api.GET("/vehicles/:id/get-location", h.getVehicleLocations)
		api.POST("/submit-incident-report", h.submitIncidentReport)
		api.GET("/system/health", h.healthCheck)
	}

	// Аутентификация панели
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
	router.POST("/2fa/verify", h.verifyTwoFactor)

	// Маршруты панели, требующие сессии
	panel := router.Group("/", SessionAuthMiddleware(h.auth, h.logger))
	{
		panel.GET("/dashboard", h.dashboardStats)

		barangays := panel.Group("/barangays")
		{
			barangays.GET("", h.listBarangays)
			barangays.POST("", h.createBarangay)
			barangays.PUT("/:id", h.updateBarangay)
			barangays.DELETE("/:id", h.deleteBarangay)
			barangays.GET("/:id/info", h.barangayInfo)

			barangays.POST("/:id/users", h.createAdminUser)
			barangays.PUT("/:id/users/:userId", h.updateAdminUser)
			barangays.DELETE("/:id/users/:userId", h.deleteAdminUser)

			barangays.POST("/:id/drivers", h.createDriver)
			barangays.PUT("/:id/drivers/:driverId", h.updateDriver)
			barangays.DELETE("/:id/drivers/:driverId", h.deleteDriver)
		}

		vehicles := panel.Group("/vehicles")
		{
			vehicles.GET("", h.listVehicles)
			vehicles.POST("", h.createVehicle)
			vehicles.GET("/:id", h.getVehicle)
			vehicles.PUT("/:id", h.updateVehicle)
			vehicles.DELETE("/:id", h.deleteVehicle)
			vehicles.GET("/:id/get-location", h.getVehicleLocationsToday)
		}

		panel.GET("/drivers", h.listDrivers)

		incidents := panel.Group("/incidents")
		{
			incidents.GET("", h.listIncidents)
			incidents.POST("", h.createIncident)
			incidents.GET("/:id", h.getIncident)
			incidents.PUT("/:id", h.updateIncident)
			incidents.DELETE("/:id", h.deleteIncident)
		}
	}
}
