package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// @Summary Store a vehicle location report
// @Description Accept a GPS position report from a tracking device identified by its vehicle code.
// @Tags Tracking
// @Accept json
// @Produce json
// @Param location body StoreLocationRequest true "Location report"
// @Success 200 {object} StoreLocationResponse
// @Failure 400 {object} StoreLocationResponse "Invalid request body or validation error"
// @Failure 404 {object} StoreLocationResponse "Vehicle code not found"
// @Failure 500 {object} StoreLocationResponse "Internal server error"
// @Router /api/store-location [post]
func (h *Handler) storeLocation(c *gin.Context) {
	var input StoreLocationRequest
	log := h.logger.WithField("method", "storeLocation")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, StoreLocationResponse{Success: false, Message: "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, StoreLocationResponse{Success: false, Message: err.Error()})
		return
	}

	_, err := h.tracking.RecordLocation(c.Request.Context(), input.Code, input.Latitude, input.Longitude)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, StoreLocationResponse{Success: false, Message: "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to record location in service")
		c.JSON(http.StatusInternalServerError, StoreLocationResponse{Success: false, Message: "failed to store location"})
		return
	}

	c.JSON(http.StatusOK, StoreLocationResponse{Success: true, Message: "location stored successfully"})
}

// @Summary Get full location history of a vehicle
// @Description Get all recorded GPS points of a vehicle in insertion order.
// @Tags Tracking
// @Produce json
// @Param id path int true "Vehicle ID"
// @Success 200 {array} LocationResponse
// @Failure 400 {object} map[string]string "Invalid vehicle ID"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/vehicles/{id}/get-location [get]
func (h *Handler) getVehicleLocations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getVehicleLocations").WithField("vehicle_id", id)

	points, err := h.tracking.VehicleHistory(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to get vehicle history from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToLocationResponses(points))
}

// @Summary Get today's location history of a vehicle
// @Description Get GPS points of a vehicle recorded during the current calendar day. Requires session.
// @Tags Tracking
// @Produce json
// @Security SessionAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {array} LocationResponse
// @Failure 400 {object} map[string]string "Invalid vehicle ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles/{id}/get-location [get]
func (h *Handler) getVehicleLocationsToday(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getVehicleLocationsToday").WithField("vehicle_id", id)

	points, err := h.tracking.VehicleHistoryToday(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to get vehicle history from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, ModelsToLocationResponses(points))
}
