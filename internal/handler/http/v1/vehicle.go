package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// @Summary List vehicles
// @Description Get all registered vehicles. Requires session.
// @Tags Vehicles
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Vehicle
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles [get]
func (h *Handler) listVehicles(c *gin.Context) {
	log := h.logger.WithField("method", "listVehicles")

	vehicles, err := h.vehicles.ListVehicles(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list vehicles from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// @Summary Get a vehicle
// @Description Get a vehicle by ID. Requires session.
// @Tags Vehicles
// @Produce json
// @Security SessionAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} models.Vehicle
// @Failure 400 {object} map[string]string "Invalid vehicle ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles/{id} [get]
func (h *Handler) getVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getVehicle").WithField("id", id)

	vehicle, err := h.vehicles.GetVehicle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to get vehicle from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// @Summary Create a vehicle
// @Description Register a vehicle in a barangay. The code must be unique per GPS device. Requires session.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param vehicle body VehicleRequest true "Vehicle creation request"
// @Success 201 {object} models.Vehicle
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Owning barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles [post]
func (h *Handler) createVehicle(c *gin.Context) {
	var input VehicleRequest
	log := h.logger.WithField("method", "createVehicle")

	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToVehicleModel(input)
	if err := h.vehicles.CreateVehicle(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to create vehicle in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, model)
}

// @Summary Update a vehicle
// @Description Update a vehicle by ID. Requires session.
// @Tags Vehicles
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Vehicle ID"
// @Param vehicle body VehicleRequest true "Vehicle update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid vehicle ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles/{id} [put]
func (h *Handler) updateVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateVehicle").WithField("id", id)

	var input VehicleRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		log.WithError(err).Warn("Failed to bind JSON")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	model := DTOToVehicleModel(input)
	model.ID = id

	if err := h.vehicles.UpdateVehicle(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to update vehicle in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a vehicle
// @Description Delete a vehicle by ID. Requires session.
// @Tags Vehicles
// @Produce json
// @Security SessionAuth
// @Param id path int true "Vehicle ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid vehicle ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Vehicle not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vehicles/{id} [delete]
func (h *Handler) deleteVehicle(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteVehicle").WithField("id", id)

	if err := h.vehicles.DeleteVehicle(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
			return
		}
		log.WithError(err).Error("Failed to delete vehicle in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
