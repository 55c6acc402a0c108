package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webcv-utils/internal/settings"
	"webcv-utils/internal/store"
	"webcv-utils/pkg/models"
)

// memStore backs handler tests without a database
type memStore struct {
	store.Store
	applications map[string]*models.GeneratedApplication
	userSettings map[string]*models.UserSettings
}

func newMemStore() *memStore {
	return &memStore{
		applications: make(map[string]*models.GeneratedApplication),
		userSettings: make(map[string]*models.UserSettings),
	}
}

func (s *memStore) GetApplication(ctx context.Context, id string) (*models.GeneratedApplication, error) {
	if app, ok := s.applications[id]; ok {
		return app, nil
	}
	return nil, store.ErrNotFound
}

func (s *memStore) ListApplications(ctx context.Context, userID string) ([]models.GeneratedApplication, error) {
	var apps []models.GeneratedApplication
	for _, app := range s.applications {
		if app.UserID == userID {
			apps = append(apps, *app)
		}
	}
	return apps, nil
}

func (s *memStore) DeleteApplication(ctx context.Context, id string) error {
	delete(s.applications, id)
	return nil
}

func (s *memStore) GetUserSettings(ctx context.Context, userID string) (*models.UserSettings, error) {
	if stored, ok := s.userSettings[userID]; ok {
		copied := *stored
		return &copied, nil
	}
	return nil, store.ErrNotFound
}

func (s *memStore) SaveUserSettings(ctx context.Context, userSettings *models.UserSettings) error {
	copied := *userSettings
	s.userSettings[userSettings.UserID] = &copied
	return nil
}

func doRequest(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetApplicationNotFound(t *testing.T) {
	e := echo.New()
	e.GET("/api/v1/applications/:id", GetApplicationHandler(newMemStore()))

	rec := doRequest(t, e, http.MethodGet, "/api/v1/applications/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_found", resp.Error)
}

func TestGetApplicationFound(t *testing.T) {
	st := newMemStore()
	st.applications["app-1"] = &models.GeneratedApplication{ID: "app-1", UserID: "u1", JobTitle: "Engineer"}

	e := echo.New()
	e.GET("/api/v1/applications/:id", GetApplicationHandler(st))

	rec := doRequest(t, e, http.MethodGet, "/api/v1/applications/app-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var app models.GeneratedApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, "Engineer", app.JobTitle)
}

func TestListApplicationsRequiresUserID(t *testing.T) {
	e := echo.New()
	e.GET("/api/v1/applications", ListApplicationsHandler(newMemStore()))

	rec := doRequest(t, e, http.MethodGet, "/api/v1/applications", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListApplicationsFiltersByUser(t *testing.T) {
	st := newMemStore()
	st.applications["a"] = &models.GeneratedApplication{ID: "a", UserID: "u1"}
	st.applications["b"] = &models.GeneratedApplication{ID: "b", UserID: "u2"}

	e := echo.New()
	e.GET("/api/v1/applications", ListApplicationsHandler(st))

	rec := doRequest(t, e, http.MethodGet, "/api/v1/applications?user_id=u1", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Applications []models.GeneratedApplication `json:"applications"`
		Count        int                           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "a", resp.Applications[0].ID)
}

func TestDeleteApplication(t *testing.T) {
	st := newMemStore()
	st.applications["app-1"] = &models.GeneratedApplication{ID: "app-1", UserID: "u1"}

	e := echo.New()
	e.DELETE("/api/v1/applications/:id", DeleteApplicationHandler(st))

	rec := doRequest(t, e, http.MethodDelete, "/api/v1/applications/app-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, st.applications)
}

func TestUpdateAndGetSettings(t *testing.T) {
	svc := settings.NewService(newMemStore())

	e := echo.New()
	e.PUT("/api/v1/settings/:user_id", UpdateSettingsHandler(svc))
	e.GET("/api/v1/settings/:user_id", GetSettingsHandler(svc))

	rec := doRequest(t, e, http.MethodPut, "/api/v1/settings/u1",
		`{"openai_api_key": "sk-test", "default_model": "deepseek-chat"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, e, http.MethodGet, "/api/v1/settings/u1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var userSettings models.UserSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &userSettings))
	assert.Equal(t, "sk-test", userSettings.OpenAIAPIKey)
	assert.Equal(t, "deepseek-chat", userSettings.DefaultModel)
}

func TestGetSettingsUnknownUserReturnsEmpty(t *testing.T) {
	svc := settings.NewService(newMemStore())

	e := echo.New()
	e.GET("/api/v1/settings/:user_id", GetSettingsHandler(svc))

	rec := doRequest(t, e, http.MethodGet, "/api/v1/settings/stranger", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var userSettings models.UserSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &userSettings))
	assert.Equal(t, "stranger", userSettings.UserID)
	assert.Empty(t, userSettings.OpenAIAPIKey)
}

func TestHealthEndpoints(t *testing.T) {
	e := echo.New()
	e.GET("/health", HealthHandler)
	e.GET("/health/live", LivenessHandler)
	e.GET("/health/ready", ReadinessHandler(nil))

	for _, target := range []string{"/health", "/health/live", "/health/ready"} {
		rec := doRequest(t, e, http.MethodGet, target, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}

	rec := doRequest(t, e, http.MethodGet, "/health/ready", "")
	var resp models.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "disabled", resp.Checks["cache"])
}
