package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// @Summary List drivers
// @Description Get all registered drivers across barangays. Requires session.
// @Tags Drivers
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Driver
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /drivers [get]
func (h *Handler) listDrivers(c *gin.Context) {
	log := h.logger.WithField("method", "listDrivers")

	drivers, err := h.drivers.ListDrivers(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list drivers from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, drivers)
}

// @Summary Create a driver
// @Description Register a driver in a barangay together with a driver user account. Requires session.
// @Tags Drivers
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param driver body DriverRequest true "Driver creation request"
// @Success 201 {object} models.Driver
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/drivers [post]
func (h *Handler) createDriver(c *gin.Context) {
	barangayID, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createDriver").WithField("barangay_id", barangayID)

	var input DriverRequest
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

	// Пароль обязателен только при создании
	if input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	driver := &models.Driver{
		Name:          input.Name,
		LicenseNumber: input.LicenseNumber,
		ContactNumber: input.ContactNumber,
	}
	if err := h.drivers.CreateDriver(c.Request.Context(), barangayID, driver, input.Email, input.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to create driver in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, driver)
}

// @Summary Update a driver
// @Description Update a driver and the linked user account. Empty password keeps the current one. Requires session.
// @Tags Drivers
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param driverId path int true "Driver ID"
// @Param driver body DriverRequest true "Driver update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Driver not found in barangay"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/drivers/{driverId} [put]
func (h *Handler) updateDriver(c *gin.Context) {
	barangayID, ok := paramID(c, "id")
	if !ok {
		return
	}
	driverID, ok := paramID(c, "driverId")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateDriver").WithField("barangay_id", barangayID).WithField("driver_id", driverID)

	var input DriverRequest
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

	driver := &models.Driver{
		Name:          input.Name,
		LicenseNumber: input.LicenseNumber,
		ContactNumber: input.ContactNumber,
	}
	if err := h.drivers.UpdateDriver(c.Request.Context(), barangayID, driverID, driver, input.Email, input.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		log.WithError(err).Error("Failed to update driver in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a driver
// @Description Delete a driver of a barangay. Requires session.
// @Tags Drivers
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param driverId path int true "Driver ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Driver not found in barangay"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/drivers/{driverId} [delete]
func (h *Handler) deleteDriver(c *gin.Context) {
	barangayID, ok := paramID(c, "id")
	if !ok {
		return
	}
	driverID, ok := paramID(c, "driverId")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteDriver").WithField("barangay_id", barangayID).WithField("driver_id", driverID)

	if err := h.drivers.DeleteDriver(c.Request.Context(), barangayID, driverID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "driver not found"})
			return
		}
		log.WithError(err).Error("Failed to delete driver in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
