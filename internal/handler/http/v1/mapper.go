package v1

import "github.com/djgraphics28/bvms-api/internal/models"

// DTOToBarangayModel преобразует DTO барангая в доменную модель
func DTOToBarangayModel(dto BarangayRequest) *models.Barangay {
	return &models.Barangay{
		Name:      dto.Name,
		Latitude:  dto.Latitude,
		Longitude: dto.Longitude,
	}
}

// DTOToVehicleModel преобразует DTO транспорта в доменную модель
func DTOToVehicleModel(dto VehicleRequest) *models.Vehicle {
	return &models.Vehicle{
		Code:          dto.Code,
		PlateNumber:   dto.PlateNumber,
		Brand:         dto.Brand,
		Model:         dto.Model,
		Color:         dto.Color,
		Year:          dto.Year,
		ChassisNumber: dto.ChassisNumber,
		EngineNumber:  dto.EngineNumber,
		VehicleType:   dto.VehicleType,
		BarangayID:    dto.BarangayID,
	}
}

// DTOToIncidentModel преобразует DTO обращения из панели в доменную модель
func DTOToIncidentModel(dto IncidentRequest) *models.IncidentReport {
	return &models.IncidentReport{
		Title:       dto.Title,
		Description: dto.Description,
		Status:      dto.Status,
		Severity:    dto.Severity,
		Creator:     dto.Creator,
		Latitude:    dto.Latitude,
		Longitude:   dto.Longitude,
		BarangayID:  dto.BarangayID,
	}
}

// ModelToLocationResponse преобразует GPS-точку в DTO для ответа
func ModelToLocationResponse(model *models.VehicleLocation) *LocationResponse {
	return &LocationResponse{
		ID:        model.ID,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		CreatedAt: model.CreatedAt,
		VehicleID: model.VehicleID,
	}
}

// ModelsToLocationResponses преобразует слайс GPS-точек в слайс DTO
func ModelsToLocationResponses(models []*models.VehicleLocation) []*LocationResponse {
	responses := make([]*LocationResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToLocationResponse(model)
	}
	return responses
}
