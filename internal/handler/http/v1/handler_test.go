package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/djgraphics28/bvms-api/internal/service/mocks"
)

// testMocks агрегирует моки сервисов для тестов хэндлеров
type testMocks struct {
	barangays *mocks.MockBarangayService
	drivers   *mocks.MockDriverService
	vehicles  *mocks.MockVehicleService
	incidents *mocks.MockIncidentService
	tracking  *mocks.MockTrackingService
	auth      *mocks.MockAuthService
	dashboard *mocks.MockDashboardService
}

// newTestHandler создает новый экземпляр Handler с мокированными сервисами
func newTestHandler(t *testing.T) (*testMocks, *gin.Engine) {
	ctrl := gomock.NewController(t)
	m := &testMocks{
		barangays: mocks.NewMockBarangayService(ctrl),
		drivers:   mocks.NewMockDriverService(ctrl),
		vehicles:  mocks.NewMockVehicleService(ctrl),
		incidents: mocks.NewMockIncidentService(ctrl),
		tracking:  mocks.NewMockTrackingService(ctrl),
		auth:      mocks.NewMockAuthService(ctrl),
		dashboard: mocks.NewMockDashboardService(ctrl),
	}

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		UploadDir:        t.TempDir(),
		MaxImageSizeByte: 2 * 1024 * 1024,
	}

	handler := NewHandler(m.barangays, m.drivers, m.vehicles, m.incidents, m.tracking, m.auth, m.dashboard, logger, cfg)

	// Настройка Gin роутера для тестов
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.RegisterRoutes(router)

	return m, router
}

// makeRequest - вспомогательная функция для выполнения HTTP-запросов
func makeRequest(router *gin.Engine, method, url string, body io.Reader, headers ...map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, h := range headers {
		for key, value := range h {
			req.Header.Set(key, value)
		}
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// authHeaders возвращает заголовки с токеном сессии и настраивает мок валидации
func authHeaders(m *testMocks, token string) map[string]string {
	m.auth.EXPECT().
		ValidateSession(gomock.Any(), token).
		Return(&models.Session{Token: token, UserID: 1, TwoFactorPassed: true}, nil).
		Times(1)
	return map[string]string{"X-Session-Token": token}
}

func TestStoreLocation_Success(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	reqBody := StoreLocationRequest{
		Code:      "V1",
		Latitude:  14.60,
		Longitude: 120.98,
	}

	// Ожидания
	m.tracking.EXPECT().
		RecordLocation(gomock.Any(), "V1", 14.60, 120.98).
		Return(&models.VehicleLocation{ID: 1, VehicleID: 7, Latitude: 14.60, Longitude: 120.98}, nil).
		Times(1)

	// Действие
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBuffer(bodyBytes))

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)

	var resp StoreLocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "location stored successfully", resp.Message)
}

func TestStoreLocation_ZeroCoordinates(t *testing.T) {
	// Подготовка: ноль - валидная координата, отчет с экватора принимается
	m, router := newTestHandler(t)
	reqBody := StoreLocationRequest{
		Code:      "V1",
		Latitude:  0,
		Longitude: 120.98,
	}

	// Ожидания
	m.tracking.EXPECT().
		RecordLocation(gomock.Any(), "V1", 0.0, 120.98).
		Return(&models.VehicleLocation{ID: 1, VehicleID: 7, Latitude: 0, Longitude: 120.98}, nil).
		Times(1)

	// Действие
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBuffer(bodyBytes))

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreLocation_UnknownCode(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	reqBody := StoreLocationRequest{
		Code:      "UNKNOWN",
		Latitude:  14.60,
		Longitude: 120.98,
	}

	// Ожидания
	m.tracking.EXPECT().
		RecordLocation(gomock.Any(), "UNKNOWN", 14.60, 120.98).
		Return(nil, fmt.Errorf("service: vehicle code UNKNOWN: %w", models.ErrNotFound)).
		Times(1)

	// Действие
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBuffer(bodyBytes))

	// Проверки
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp StoreLocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "vehicle not found", resp.Message)
}

func TestStoreLocation_InvalidJSON(t *testing.T) {
	m, router := newTestHandler(t)

	m.tracking.EXPECT().RecordLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBufferString(`{"code": "V1"`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestStoreLocation_ValidationError(t *testing.T) {
	// Отсутствует code, координаты вне диапазона
	m, router := newTestHandler(t)
	reqBody := StoreLocationRequest{
		Latitude:  95.0,
		Longitude: 120.98,
	}

	m.tracking.EXPECT().RecordLocation(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStoreLocation_StorageError(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := StoreLocationRequest{
		Code:      "V1",
		Latitude:  14.60,
		Longitude: 120.98,
	}

	m.tracking.EXPECT().
		RecordLocation(gomock.Any(), "V1", 14.60, 120.98).
		Return(nil, errors.New("connection refused")).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/api/store-location", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp StoreLocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
}

func TestGetVehicleLocations_OrderedHistory(t *testing.T) {
	// Подготовка: три точки маршрута в порядке записи
	m, router := newTestHandler(t)
	base := time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC)
	points := []*models.VehicleLocation{
		{ID: 1, VehicleID: 7, Latitude: 14.60, Longitude: 120.98, CreatedAt: base},
		{ID: 2, VehicleID: 7, Latitude: 14.61, Longitude: 120.99, CreatedAt: base.Add(time.Minute)},
		{ID: 3, VehicleID: 7, Latitude: 14.62, Longitude: 121.00, CreatedAt: base.Add(2 * time.Minute)},
	}

	// Ожидания
	m.tracking.EXPECT().
		VehicleHistory(gomock.Any(), int64(7)).
		Return(points, nil).
		Times(1)

	// Действие
	w := makeRequest(router, "GET", "/api/vehicles/7/get-location", nil)

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*LocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 3)
	assert.Equal(t, 14.60, resp[0].Latitude)
	assert.Equal(t, 14.61, resp[1].Latitude)
	assert.Equal(t, 14.62, resp[2].Latitude)
	for _, point := range resp {
		assert.Equal(t, int64(7), point.VehicleID)
	}
}

func TestGetVehicleLocations_EmptyHistory(t *testing.T) {
	m, router := newTestHandler(t)

	m.tracking.EXPECT().
		VehicleHistory(gomock.Any(), int64(7)).
		Return([]*models.VehicleLocation{}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/api/vehicles/7/get-location", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestGetVehicleLocations_VehicleNotFound(t *testing.T) {
	m, router := newTestHandler(t)

	m.tracking.EXPECT().
		VehicleHistory(gomock.Any(), int64(999)).
		Return(nil, fmt.Errorf("service: vehicle 999: %w", models.ErrNotFound)).
		Times(1)

	w := makeRequest(router, "GET", "/api/vehicles/999/get-location", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "vehicle not found")
}

func TestGetVehicleLocations_InvalidID(t *testing.T) {
	m, router := newTestHandler(t)

	m.tracking.EXPECT().VehicleHistory(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/api/vehicles/abc/get-location", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVehicleLocationsToday_Success(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	points := []*models.VehicleLocation{
		{ID: 10, VehicleID: 7, Latitude: 14.60, Longitude: 120.98, CreatedAt: time.Now()},
	}

	// Ожидания
	headers := authHeaders(m, "valid-token")
	m.tracking.EXPECT().
		VehicleHistoryToday(gomock.Any(), int64(7)).
		Return(points, nil).
		Times(1)

	// Действие
	w := makeRequest(router, "GET", "/vehicles/7/get-location", nil, headers)

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*LocationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, int64(10), resp[0].ID)
}

func TestGetVehicleLocationsToday_MissingToken(t *testing.T) {
	m, router := newTestHandler(t)

	m.tracking.EXPECT().VehicleHistoryToday(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/vehicles/7/get-location", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetVehicleLocationsToday_InvalidSession(t *testing.T) {
	m, router := newTestHandler(t)

	m.auth.EXPECT().
		ValidateSession(gomock.Any(), "bad-token").
		Return(nil, service.ErrInvalidSession).
		Times(1)
	m.tracking.EXPECT().VehicleHistoryToday(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/vehicles/7/get-location", nil, map[string]string{"X-Session-Token": "bad-token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetVehicleLocationsToday_TwoFactorPending(t *testing.T) {
	// Сессия существует, но код 2FA еще не подтвержден
	m, router := newTestHandler(t)

	m.auth.EXPECT().
		ValidateSession(gomock.Any(), "pending-token").
		Return(&models.Session{Token: "pending-token", UserID: 1, TwoFactorPassed: false}, nil).
		Times(1)
	m.tracking.EXPECT().VehicleHistoryToday(gomock.Any(), gomock.Any()).Times(0)

	w := makeRequest(router, "GET", "/vehicles/7/get-location", nil, map[string]string{"X-Session-Token": "pending-token"})

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "two-factor verification required")
}

func TestLogin_Success(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	reqBody := LoginRequest{Email: "admin@bvms.local", Password: "secret-password"}

	// Ожидания
	m.auth.EXPECT().
		Login(gomock.Any(), "admin@bvms.local", "secret-password").
		Return(
			&models.Session{Token: "new-token", UserID: 1, TwoFactorPassed: true},
			&models.User{ID: 1, Email: "admin@bvms.local", TwoFactorEnabled: false},
			nil,
		).
		Times(1)

	// Действие
	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/login", bytes.NewBuffer(bodyBytes))

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "new-token", resp.Token)
	assert.False(t, resp.TwoFactorRequired)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := LoginRequest{Email: "admin@bvms.local", Password: "wrong"}

	m.auth.EXPECT().
		Login(gomock.Any(), "admin@bvms.local", "wrong").
		Return(nil, nil, service.ErrInvalidCredentials).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/login", bytes.NewBuffer(bodyBytes))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")
}

func TestVerifyTwoFactor_Success(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := VerifyTwoFactorRequest{Code: "123456"}

	m.auth.EXPECT().
		VerifyTwoFactor(gomock.Any(), "pending-token", "123456").
		Return(nil).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/2fa/verify", bytes.NewBuffer(bodyBytes), map[string]string{"X-Session-Token": "pending-token"})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyTwoFactor_WrongCode(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := VerifyTwoFactorRequest{Code: "000000"}

	m.auth.EXPECT().
		VerifyTwoFactor(gomock.Any(), "pending-token", "000000").
		Return(service.ErrInvalidTwoFactor).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/2fa/verify", bytes.NewBuffer(bodyBytes), map[string]string{"X-Session-Token": "pending-token"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSubmitIncidentReport_Success(t *testing.T) {
	// Подготовка: публичная multipart-форма без изображения
	m, router := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Road accident"))
	require.NoError(t, mw.WriteField("description", "Two tricycles collided near the plaza"))
	require.NoError(t, mw.WriteField("creator", "Juan Dela Cruz"))
	require.NoError(t, mw.WriteField("latitude", "14.60"))
	require.NoError(t, mw.WriteField("longitude", "120.98"))
	require.NoError(t, mw.Close())

	// Ожидания
	m.incidents.EXPECT().
		SubmitIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.IncidentReport) error {
			incident.ID = 42
			incident.Status = models.IncidentStatusPending
			incident.Severity = models.IncidentSeverityLow
			return nil
		}).
		Times(1)

	// Действие
	req := httptest.NewRequest("POST", "/api/submit-incident-report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Проверки
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.IncidentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, models.IncidentStatusPending, resp.Status)
	assert.Equal(t, "Road accident", resp.Title)
}

func TestSubmitIncidentReport_ZeroCoordinates(t *testing.T) {
	// Подготовка: точка (0, 0) - валидные координаты, форма принимается
	m, router := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Stranded vessel"))
	require.NoError(t, mw.WriteField("description", "Reported far offshore"))
	require.NoError(t, mw.WriteField("creator", "Juan Dela Cruz"))
	require.NoError(t, mw.WriteField("latitude", "0"))
	require.NoError(t, mw.WriteField("longitude", "0"))
	require.NoError(t, mw.Close())

	// Ожидания
	m.incidents.EXPECT().
		SubmitIncident(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, incident *models.IncidentReport) error {
			assert.Zero(t, incident.Latitude)
			assert.Zero(t, incident.Longitude)
			incident.ID = 43
			return nil
		}).
		Times(1)

	// Действие
	req := httptest.NewRequest("POST", "/api/submit-incident-report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	// Проверки
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSubmitIncidentReport_MissingFields(t *testing.T) {
	m, router := newTestHandler(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Road accident"))
	require.NoError(t, mw.Close())

	m.incidents.EXPECT().SubmitIncident(gomock.Any(), gomock.Any()).Times(0)

	req := httptest.NewRequest("POST", "/api/submit-incident-report", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListIncidents_WithFilter(t *testing.T) {
	// Подготовка
	m, router := newTestHandler(t)
	barangayID := int64(3)
	expected := []*models.IncidentReport{
		{ID: 1, Title: "Flooding", Status: models.IncidentStatusPending, BarangayID: &barangayID},
	}

	// Ожидания
	headers := authHeaders(m, "valid-token")
	m.incidents.EXPECT().
		ListIncidents(gomock.Any(), models.IncidentFilter{BarangayID: &barangayID, Status: "pending"}).
		Return(expected, nil).
		Times(1)

	// Действие
	w := makeRequest(router, "GET", "/incidents?barangay_id=3&status=pending", nil, headers)

	// Проверки
	assert.Equal(t, http.StatusOK, w.Code)

	var resp []*models.IncidentReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Flooding", resp[0].Title)
}

func TestDashboardStats_Success(t *testing.T) {
	m, router := newTestHandler(t)
	barangayID := int64(3)

	headers := authHeaders(m, "valid-token")
	m.dashboard.EXPECT().
		Stats(gomock.Any()).
		Return(&models.DashboardStats{
			TotalAdmins:    2,
			TotalVehicles:  5,
			TotalDrivers:   4,
			TotalBarangays: 3,
			RecentIncidents: []*models.IncidentReport{
				{ID: 9, Title: "Flooding", BarangayID: &barangayID, BarangayName: "San Isidro"},
			},
		}, nil).
		Times(1)

	w := makeRequest(router, "GET", "/dashboard", nil, headers)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.DashboardStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 5, resp.TotalVehicles)
	require.Len(t, resp.RecentIncidents, 1)
	assert.Equal(t, "San Isidro", resp.RecentIncidents[0].BarangayName)
}

func TestCreateBarangay_Success(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := BarangayRequest{Name: "San Isidro", Latitude: 14.60, Longitude: 120.98}

	headers := authHeaders(m, "valid-token")
	m.barangays.EXPECT().
		CreateBarangay(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, barangay *models.Barangay) error {
			barangay.ID = 3
			return nil
		}).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/barangays", bytes.NewBuffer(bodyBytes), headers)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.Barangay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(3), resp.ID)
	assert.Equal(t, "San Isidro", resp.Name)
}

func TestCreateVehicle_BarangayNotFound(t *testing.T) {
	m, router := newTestHandler(t)
	reqBody := VehicleRequest{Code: "V1", PlateNumber: "ABC-123", BarangayID: 99}

	headers := authHeaders(m, "valid-token")
	m.vehicles.EXPECT().
		CreateVehicle(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("service: barangay 99 for vehicle: %w", models.ErrNotFound)).
		Times(1)

	bodyBytes, _ := json.Marshal(reqBody)
	w := makeRequest(router, "POST", "/vehicles", bytes.NewBuffer(bodyBytes), headers)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "barangay not found")
}
