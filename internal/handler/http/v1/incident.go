package v1

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// допустимые расширения изображений публичной формы
var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// @Summary Submit an incident report
// @Description Public endpoint for citizens to report an incident, optionally with a photo (multipart field "image").
// @Tags Incidents
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Incident title"
// @Param description formData string true "Incident description"
// @Param creator formData string true "Reporter name"
// @Param latitude formData number true "Incident latitude"
// @Param longitude formData number true "Incident longitude"
// @Param barangay_id formData int false "Barangay the incident belongs to"
// @Param image formData file false "Incident photo (jpg, jpeg, png, gif, up to 2 MB)"
// @Success 201 {object} models.IncidentReport
// @Failure 400 {object} map[string]string "Invalid form data or image"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/submit-incident-report [post]
func (h *Handler) submitIncidentReport(c *gin.Context) {
	var input SubmitIncidentRequest
	log := h.logger.WithField("method", "submitIncidentReport")

	if err := c.ShouldBind(&input); err != nil {
		log.WithError(err).Warn("Failed to bind form data")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		log.WithError(err).Warn("Validation failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incident := &models.IncidentReport{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Severity:    input.Severity,
		Creator:     input.Creator,
		Latitude:    input.Latitude,
		Longitude:   input.Longitude,
		BarangayID:  input.BarangayID,
	}

	// Фото необязательно
	file, err := c.FormFile("image")
	if err == nil && file != nil {
		if file.Size > h.cfg.MaxImageSizeByte {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image is too large"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedImageExt[ext] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
			return
		}
		imagePath := filepath.Join(h.cfg.UploadDir, uuid.NewString()+ext)
		if err := c.SaveUploadedFile(file, imagePath); err != nil {
			log.WithError(err).Error("Failed to save incident image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		incident.ImagePath = imagePath
	}

	if err := h.incidents.SubmitIncident(c.Request.Context(), incident); err != nil {
		log.WithError(err).Error("Failed to submit incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, incident)
}

// @Summary List incident reports
// @Description Get incident reports, optionally filtered by barangay and status. Requires session.
// @Tags Incidents
// @Produce json
// @Security SessionAuth
// @Param barangay_id query int false "Filter by barangay ID"
// @Param status query string false "Filter by status" Enums(pending, in_progress, resolved, closed)
// @Success 200 {array} models.IncidentReport
// @Failure 400 {object} map[string]string "Invalid filter"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [get]
func (h *Handler) listIncidents(c *gin.Context) {
	log := h.logger.WithField("method", "listIncidents")

	var filter models.IncidentFilter
	if raw := c.Query("barangay_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid barangay_id"})
			return
		}
		filter.BarangayID = &id
	}
	filter.Status = c.Query("status")

	incidents, err := h.incidents.ListIncidents(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("Failed to list incidents from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, incidents)
}

// @Summary Get an incident report
// @Description Get an incident report by ID. Requires session.
// @Tags Incidents
// @Produce json
// @Security SessionAuth
// @Param id path int true "Incident ID"
// @Success 200 {object} models.IncidentReport
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [get]
func (h *Handler) getIncident(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "getIncident").WithField("id", id)

	incident, err := h.incidents.GetIncident(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to get incident from service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, incident)
}

// @Summary Create an incident report
// @Description Create an incident report from the admin panel. Requires session.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param incident body IncidentRequest true "Incident creation request"
// @Success 201 {object} models.IncidentReport
// @Failure 400 {object} map[string]string "Invalid request body or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents [post]
func (h *Handler) createIncident(c *gin.Context) {
	var input IncidentRequest
	log := h.logger.WithField("method", "createIncident")

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

	model := DTOToIncidentModel(input)
	if err := h.incidents.CreateIncident(c.Request.Context(), model); err != nil {
		log.WithError(err).Error("Failed to create incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusCreated, model)
}

// @Summary Update an incident report
// @Description Update an incident report by ID. The stored image is kept. Requires session.
// @Tags Incidents
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param id path int true "Incident ID"
// @Param incident body IncidentRequest true "Incident update request"
// @Success 200 "OK"
// @Failure 400 {object} map[string]string "Invalid incident ID or request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [put]
func (h *Handler) updateIncident(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "updateIncident").WithField("id", id)

	var input IncidentRequest
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

	model := DTOToIncidentModel(input)
	model.ID = id

	if err := h.incidents.UpdateIncident(c.Request.Context(), model); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to update incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusOK)
}

// @Summary Delete an incident report
// @Description Delete an incident report by ID along with its stored image. Requires session.
// @Tags Incidents
// @Produce json
// @Security SessionAuth
// @Param id path int true "Incident ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid incident ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Incident not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /incidents/{id} [delete]
func (h *Handler) deleteIncident(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	log := h.logger.WithField("method", "deleteIncident").WithField("id", id)

	if err := h.incidents.DeleteIncident(c.Request.Context(), id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
			return
		}
		log.WithError(err).Error("Failed to delete incident in service")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
