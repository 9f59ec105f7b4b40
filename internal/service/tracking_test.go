package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service/mocks"
)

// newTestTrackingService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestTrackingService(t *testing.T) (*trackingService, *mocks.MockLocationRepository, *mocks.MockVehicleRepository) {
	ctrl := gomock.NewController(t)
	locationsMock := mocks.NewMockLocationRepository(ctrl)
	vehiclesMock := mocks.NewMockVehicleRepository(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewTrackingService(locationsMock, vehiclesMock, logger)
	return service.(*trackingService), locationsMock, vehiclesMock
}

func TestRecordLocation_Success(t *testing.T) {
	// Подготовка
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()
	vehicle := &models.Vehicle{ID: 7, Code: "V1", PlateNumber: "ABC-123"}

	// Ожидания
	vehiclesMock.EXPECT().
		GetByCode(ctx, "V1").
		Return(vehicle, nil).
		Times(1)
	locationsMock.EXPECT().
		Append(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, point *models.VehicleLocation) error {
			point.ID = 1
			point.CreatedAt = time.Now()
			return nil
		}).
		Times(1)

	// Действие
	point, err := service.RecordLocation(ctx, "V1", 14.60, 120.98)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, int64(7), point.VehicleID)
	assert.Equal(t, 14.60, point.Latitude)
	assert.Equal(t, 120.98, point.Longitude)
}

func TestRecordLocation_UnknownCode(t *testing.T) {
	// Подготовка
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания: неизвестный код не создает ни одной записи
	vehiclesMock.EXPECT().
		GetByCode(ctx, "UNKNOWN").
		Return(nil, fmt.Errorf("repository: vehicle by code: %w", models.ErrNotFound)).
		Times(1)
	locationsMock.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Times(0)

	// Действие
	point, err := service.RecordLocation(ctx, "UNKNOWN", 14.60, 120.98)

	// Проверки
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Nil(t, point)
}

func TestRecordLocation_StorageError(t *testing.T) {
	// Подготовка
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()
	vehicle := &models.Vehicle{ID: 7, Code: "V1"}

	// Ожидания
	vehiclesMock.EXPECT().
		GetByCode(ctx, "V1").
		Return(vehicle, nil).
		Times(1)
	locationsMock.EXPECT().
		Append(ctx, gomock.Any()).
		Return(errors.New("connection refused")).
		Times(1)

	// Действие
	point, err := service.RecordLocation(ctx, "V1", 14.60, 120.98)

	// Проверки
	require.Error(t, err)
	assert.False(t, errors.Is(err, models.ErrNotFound))
	assert.Nil(t, point)
}

func TestVehicleHistory_OrderPreserved(t *testing.T) {
	// Подготовка: три последовательных отчета одного устройства
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	expected := []*models.VehicleLocation{
		{ID: 1, VehicleID: 7, Latitude: 14.60, Longitude: 120.98, CreatedAt: base},
		{ID: 2, VehicleID: 7, Latitude: 14.61, Longitude: 120.99, CreatedAt: base.Add(time.Minute)},
		{ID: 3, VehicleID: 7, Latitude: 14.62, Longitude: 121.00, CreatedAt: base.Add(2 * time.Minute)},
	}

	// Ожидания
	vehiclesMock.EXPECT().
		GetByID(ctx, int64(7)).
		Return(&models.Vehicle{ID: 7, Code: "V1"}, nil).
		Times(1)
	locationsMock.EXPECT().
		ListByVehicle(ctx, int64(7)).
		Return(expected, nil).
		Times(1)

	// Действие
	points, err := service.VehicleHistory(ctx, 7)

	// Проверки
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, expected, points)
}

func TestVehicleHistory_UnknownVehicle(t *testing.T) {
	// Подготовка
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	vehiclesMock.EXPECT().
		GetByID(ctx, int64(999)).
		Return(nil, fmt.Errorf("repository: vehicle by id: %w", models.ErrNotFound)).
		Times(1)
	locationsMock.EXPECT().
		ListByVehicle(gomock.Any(), gomock.Any()).
		Times(0)

	// Действие
	points, err := service.VehicleHistory(ctx, 999)

	// Проверки
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
	assert.Nil(t, points)
}

func TestVehicleHistory_EmptyIsNotAnError(t *testing.T) {
	// Подготовка: транспорт существует, но еще без точек
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()

	// Ожидания
	vehiclesMock.EXPECT().
		GetByID(ctx, int64(7)).
		Return(&models.Vehicle{ID: 7, Code: "V1"}, nil).
		Times(1)
	locationsMock.EXPECT().
		ListByVehicle(ctx, int64(7)).
		Return([]*models.VehicleLocation{}, nil).
		Times(1)

	// Действие
	points, err := service.VehicleHistory(ctx, 7)

	// Проверки
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestVehicleHistoryToday_UsesTodayQuery(t *testing.T) {
	// Подготовка
	service, locationsMock, vehiclesMock := newTestTrackingService(t)
	ctx := context.Background()
	expected := []*models.VehicleLocation{
		{ID: 5, VehicleID: 7, Latitude: 14.60, Longitude: 120.98, CreatedAt: time.Now()},
	}

	// Ожидания: полная история не запрашивается
	vehiclesMock.EXPECT().
		GetByID(ctx, int64(7)).
		Return(&models.Vehicle{ID: 7, Code: "V1"}, nil).
		Times(1)
	locationsMock.EXPECT().
		ListByVehicleToday(ctx, int64(7)).
		Return(expected, nil).
		Times(1)
	locationsMock.EXPECT().
		ListByVehicle(gomock.Any(), gomock.Any()).
		Times(0)

	// Действие
	points, err := service.VehicleHistoryToday(ctx, 7)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, points)
}
