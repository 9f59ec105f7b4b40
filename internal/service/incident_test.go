package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/notify"
	notify_mocks "github.com/djgraphics28/bvms-api/internal/notify/mocks"
	"github.com/djgraphics28/bvms-api/internal/service/mocks"
)

// newTestIncidentService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestIncidentService(t *testing.T) (*incidentService, *mocks.MockIncidentRepository, *notify_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	repoMock := mocks.NewMockIncidentRepository(ctrl)
	publisherMock := notify_mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	service := NewIncidentService(repoMock, publisherMock, logger)
	return service.(*incidentService), repoMock, publisherMock
}

func TestSubmitIncident_DefaultsAndNotification(t *testing.T) {
	// Подготовка
	service, repoMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.IncidentReport{
		Title:       "Flooding on main road",
		Description: "Knee-deep water after heavy rain",
		Creator:     "Maria Santos",
		Latitude:    14.60,
		Longitude:   120.98,
	}

	// Ожидания
	repoMock.EXPECT().
		Create(ctx, incident).
		DoAndReturn(func(_ context.Context, inc *models.IncidentReport) error {
			inc.ID = 42
			return nil
		}).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event notify.NotificationEvent) error {
			assert.Equal(t, notify.EventIncidentReported, event.Type)
			assert.Equal(t, int64(42), event.Incident.ID)
			return nil
		}).
		Times(1)

	// Действие
	err := service.SubmitIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, models.IncidentStatusPending, incident.Status)
	assert.Equal(t, models.IncidentSeverityLow, incident.Severity)
}

func TestSubmitIncident_PublishFailureIsNotFatal(t *testing.T) {
	// Подготовка: отказ очереди уведомлений не откатывает обращение
	service, repoMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.IncidentReport{
		Title:       "Broken street light",
		Description: "Corner of Rizal and Mabini",
		Creator:     "Pedro Reyes",
		Latitude:    14.60,
		Longitude:   120.98,
	}

	// Ожидания
	repoMock.EXPECT().Create(ctx, incident).Return(nil).Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		Return(errors.New("redis: connection refused")).
		Times(1)

	// Действие
	err := service.SubmitIncident(ctx, incident)

	// Проверки
	require.NoError(t, err)
}

func TestSubmitIncident_RepositoryError(t *testing.T) {
	// Подготовка
	service, repoMock, publisherMock := newTestIncidentService(t)
	ctx := context.Background()
	incident := &models.IncidentReport{
		Title:       "Test",
		Description: "Test",
		Creator:     "Test",
	}

	// Ожидания: уведомление не публикуется при отказе хранилища
	repoMock.EXPECT().Create(ctx, incident).Return(errors.New("connection refused")).Times(1)
	publisherMock.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.SubmitIncident(ctx, incident)

	// Проверки
	require.Error(t, err)
}

func TestUpdateIncident_KeepsImagePath(t *testing.T) {
	// Подготовка: обновление из панели не затирает сохраненное изображение
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	existing := &models.IncidentReport{
		ID:        42,
		Title:     "Old title",
		Status:    models.IncidentStatusPending,
		Severity:  models.IncidentSeverityLow,
		ImagePath: "storage/uploads/abc.jpg",
	}
	update := &models.IncidentReport{
		ID:       42,
		Title:    "New title",
		Status:   models.IncidentStatusResolved,
		Severity: models.IncidentSeverityMedium,
	}

	// Ожидания
	repoMock.EXPECT().GetByID(ctx, int64(42)).Return(existing, nil).Times(1)
	repoMock.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, inc *models.IncidentReport) error {
			assert.Equal(t, "New title", inc.Title)
			assert.Equal(t, models.IncidentStatusResolved, inc.Status)
			assert.Equal(t, "storage/uploads/abc.jpg", inc.ImagePath)
			return nil
		}).
		Times(1)

	// Действие
	err := service.UpdateIncident(ctx, update)

	// Проверки
	require.NoError(t, err)
}

func TestUpdateIncident_NotFound(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	update := &models.IncidentReport{ID: 999, Title: "New title"}

	// Ожидания
	repoMock.EXPECT().
		GetByID(ctx, int64(999)).
		Return(nil, fmt.Errorf("repository: incident by id: %w", models.ErrNotFound)).
		Times(1)
	repoMock.EXPECT().Update(gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.UpdateIncident(ctx, update)

	// Проверки
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestListIncidents_PassesFilter(t *testing.T) {
	// Подготовка
	service, repoMock, _ := newTestIncidentService(t)
	ctx := context.Background()
	barangayID := int64(3)
	filter := models.IncidentFilter{BarangayID: &barangayID, Status: models.IncidentStatusPending}
	expected := []*models.IncidentReport{{ID: 1, Title: "Flooding"}}

	// Ожидания
	repoMock.EXPECT().List(ctx, filter).Return(expected, nil).Times(1)

	// Действие
	incidents, err := service.ListIncidents(ctx, filter)

	// Проверки
	require.NoError(t, err)
	assert.Equal(t, expected, incidents)
}
