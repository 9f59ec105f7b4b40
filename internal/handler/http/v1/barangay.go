package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// @Summary List barangays
// @Description Get all barangays. Requires session.
// @Tags Barangays
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Barangay
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays [get]
func (h *Handler) listBarangays(c *gin.Context) {
	log := h.logger.WithField("method", "listBarangays")

	barangays, err := h.barangays.ListBarangays(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("Failed to list barangays from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, barangays)
}

// @Summary Create a new barangay
// @Description Create a new barangay. Requires session.
// @Tags Barangays
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param barangay body BarangayRequest true "Barangay creation request"
// @Success 201 {object} models.Barangay
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays [post]
func (h *Handler) createBarangay(c *gin.Context) {
	var input BarangayRequest
	log := h.logger.WithField("method", "createBarangay")

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

	model := DTOToBarangayModel(input)
	if err := h.barangays.CreateBarangay(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create barangay in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, model)
}

// @Summary Update an existing barangay
// @Description Update a barangay by ID. Requires session.
// @Tags Barangays
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param barangay body BarangayRequest true "Barangay update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid barangay ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id} [put]
func (h *Handler) updateBarangay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateBarangay").WithField("id", id)

	var input BarangayRequest
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

	model := DTOToBarangayModel(input)
	model.ID = id

	if err := h.barangays.UpdateBarangay(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to update barangay in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a barangay
// @Description Delete a barangay by ID. Requires session.
// @Tags Barangays
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid barangay ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id} [delete]
func (h *Handler) deleteBarangay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteBarangay").WithField("id", id)

	if err := h.barangays.DeleteBarangay(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to delete barangay in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get barangay info
// @Description Get a barangay with its admin users, drivers and vehicles. Requires session.
// @Tags Barangays
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Success 200 {object} models.BarangayInfo
// @Failure 400 {object} map[string]string "Invalid barangay ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/info [get]
func (h *Handler) barangayInfo(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "barangayInfo").WithField("id", id)

	info, err := h.barangays.BarangayInfo(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to get barangay info from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, info)
}

// @Summary Create a barangay admin user
// @Description Create an admin user account for a barangay. Requires session.
// @Tags Barangays
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param user body AdminUserRequest true "Admin user creation request"
// @Success 201 {object} models.User
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Barangay not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/users [post]
func (h *Handler) createAdminUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "createAdminUser").WithField("barangay_id", id)

	var input AdminUserRequest
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

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		IsActive: isActive,
	}
	if err := h.barangays.CreateAdminUser(c.Request.Context(), id, user, input.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "barangay not found"})
			return
		}
		log.WithError(err).Error("Failed to create admin user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary Update a barangay admin user
// @Description Update an admin user of a barangay. Empty password keeps the current one. Requires session.
// @Tags Barangays
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param userId path int true "User ID"
// @Param user body AdminUserRequest true "Admin user update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found in barangay"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/users/{userId} [put]
func (h *Handler) updateAdminUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateAdminUser").WithField("barangay_id", id).WithField("user_id", userID)

	var input AdminUserRequest
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

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		IsActive: isActive,
	}
	if err := h.barangays.UpdateAdminUser(c.Request.Context(), id, userID, user, input.Password); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.WithError(err).Error("Failed to update admin user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete a barangay admin user
// @Description Delete an admin user of a barangay. Requires session.
// @Tags Barangays
// @Produce json
// @Security SessionAuth
// @Param id path int true "Barangay ID"
// @Param userId path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found in barangay"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /barangays/{id}/users/{userId} [delete]
func (h *Handler) deleteAdminUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	userID, ok := paramID(c, "userId")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteAdminUser").WithField("barangay_id", id).WithField("user_id", userID)

	if err := h.barangays.DeleteAdminUser(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.WithError(err).Error("Failed to delete admin user in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
