package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"homesight/server/internal/analysis"
	"homesight/server/internal/database"
	"homesight/server/internal/models"
	"homesight/server/internal/storage"
)

type testEnv struct {
	router  *gin.Engine
	db      *database.Database
	store   *storage.Store
	webhook *httptest.Server
}

func webhookFixture() string {
	return `{
		"rawApiData": {
			"propertyDetails": {
				"streetAddress": "44 Hill Rd",
				"city": "Stowe",
				"state": "VT",
				"zipcode": "05672",
				"bedrooms": 3,
				"livingArea": 1800,
				"priceHistory": [{"price": 450000}, {"price": 400000}]
			}
		}
	}`
}

func newTestEnv(t *testing.T, webhookHandler http.HandlerFunc) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := logrus.New()

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	db := database.NewWithDB(gdb, logger)
	require.NoError(t, db.RunMigrations())

	store, err := storage.NewStore(t.TempDir(), "/images", logger)
	require.NoError(t, err)

	webhook := httptest.NewServer(webhookHandler)
	t.Cleanup(webhook.Close)

	client := analysis.NewClient(webhook.URL, 120, logger)
	handler := NewHandler(db, client, store, nil, logger)

	router := gin.New()
	SetupRoutes(router, handler)

	return &testEnv{router: router, db: db, store: store, webhook: webhook}
}

func (e *testEnv) request(t *testing.T, method, path string, body *bytes.Buffer, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("X-User-ID", "user-1")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(webhookFixture()))
	}
}

func TestRequireUser(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())

	req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestAnalyzePersistsCanonicalRecord(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())

	body := bytes.NewBufferString(`{"address": "44 Hill Rd, Stowe, VT"}`)
	w := env.request(t, http.MethodPost, "/api/analyze", body, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var property models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &property))
	assert.NotEmpty(t, property.ID)
	assert.Equal(t, "user-1", property.UserID)

	var data models.PropertyData
	require.NoError(t, json.Unmarshal(property.AnalysisData, &data))
	require.NotNil(t, data.PropertyOverview)

	// Most-recent-first list price rule, end to end.
	require.NotNil(t, data.PropertyOverview.ListPrice)
	assert.Equal(t, 450000.0, *data.PropertyOverview.ListPrice)

	// No climate data in the fixture, so no environmental record.
	assert.Nil(t, data.Environmental)

	// Placeholder analysis and charts are always present.
	assert.Equal(t, models.AnalysisPending, data.AIAnalysis.Status)
	require.NotNil(t, data.Charts)
	assert.Len(t, data.Charts.ValueSeries, 11)

	// Re-analyzing the same address updates the same row.
	w = env.request(t, http.MethodPost, "/api/analyze", bytes.NewBufferString(`{"address": "44 Hill Rd, Stowe, VT"}`), nil)
	require.Equal(t, http.StatusOK, w.Code)
	properties, err := env.db.ListProperties("user-1", false)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
}

func TestAnalyzeWebhookErrorMapping(t *testing.T) {
	env := newTestEnv(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	w := env.request(t, http.MethodPost, "/api/analyze", bytes.NewBufferString(`{"address": "nowhere"}`), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROPERTY_NOT_FOUND")
}

func TestAnalyzeMissingAddress(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())
	w := env.request(t, http.MethodPost, "/api/analyze", bytes.NewBufferString(`{}`), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ADDRESS")
}

func analyzeOne(t *testing.T, env *testEnv) models.Property {
	t.Helper()
	w := env.request(t, http.MethodPost, "/api/analyze", bytes.NewBufferString(`{"address": "44 Hill Rd, Stowe, VT"}`), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var property models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &property))
	return property
}

func TestExportFormats(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())
	property := analyzeOne(t, env)

	w := env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format=txt", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="44_Hill_Rd.txt"`)
	assert.Contains(t, w.Body.String(), "44 Hill Rd")

	w = env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format=pdf", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format=docx", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".docx")

	w = env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format=html", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "inline")
	assert.Contains(t, w.Body.String(), "window.print()")

	w = env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format=csv", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportWithoutOverviewFails(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())

	// Stored analysis with no overview at all.
	property := &models.Property{
		UserID:       "user-1",
		Address:      "empty",
		AnalysisData: []byte(`{"aiAnalysis":{"status":"pending","grade":"N/A"}}`),
	}
	require.NoError(t, env.db.UpsertProperty(property))

	for _, format := range []string{"pdf", "docx", "txt", "html"} {
		w := env.request(t, http.MethodGet, "/api/properties/"+property.ID+"/export?format="+format, nil, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, format)
		assert.Contains(t, w.Body.String(), "EXPORT_FAILED", format)
	}
}

func TestFavoriteAndStatusEndpoints(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())
	property := analyzeOne(t, env)

	w := env.request(t, http.MethodPut, "/api/properties/"+property.ID+"/favorite", bytes.NewBufferString(`{"is_favorite": true}`), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPut, "/api/properties/"+property.ID+"/status", bytes.NewBufferString(`{"status": "archived"}`), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	got, err := env.db.GetProperty("user-1", property.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorite)
	assert.Equal(t, "archived", got.Status)

	w = env.request(t, http.MethodPut, "/api/properties/unknown/favorite", bytes.NewBufferString(`{"is_favorite": true}`), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func multipartImages(t *testing.T, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for name, data := range files {
		part, err := writer.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImageUploadAndBatchDelete(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())
	property := analyzeOne(t, env)

	body, contentType := multipartImages(t, map[string][]byte{
		"a.jpg": []byte("aaa"),
		"b.jpg": []byte("bbb"),
		"c.jpg": []byte("ccc"),
	})
	w := env.request(t, http.MethodPost, "/api/properties/"+property.ID+"/images", body, map[string]string{
		"Content-Type": contentType,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	images, err := env.db.ListImages(property.ID)
	require.NoError(t, err)
	require.Len(t, images, 3)

	// Remove one blob out from under the store so its delete fails.
	brokenID := images[1].ID
	require.NoError(t, env.store.Delete(images[1].FileName))

	ids, err := json.Marshal(map[string][]string{
		"image_ids": {images[0].ID, images[1].ID, images[2].ID},
	})
	require.NoError(t, err)

	w = env.request(t, http.MethodDelete, "/api/properties/"+property.ID+"/images", bytes.NewBuffer(ids), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Results []storage.ItemResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	var failures, successes int
	for _, res := range resp.Results {
		if res.Error != "" {
			failures++
		} else {
			successes++
		}
	}
	assert.Equal(t, 2, successes)
	assert.Equal(t, 1, failures)

	// The two successes are gone for good; the failure keeps its record.
	remaining, err := env.db.ListImages(property.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, brokenID, remaining[0].ID)
}

func TestSettingsRoundTrip(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())

	w := env.request(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"default_export_format":"pdf"`)

	body := bytes.NewBufferString(`{"display_name": "Pat", "default_export_format": "txt"}`)
	w = env.request(t, http.MethodPut, "/api/settings", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/settings", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"display_name":"Pat"`)
	assert.Contains(t, w.Body.String(), `"default_export_format":"txt"`)
}

func TestGetAndDeleteProperty(t *testing.T) {
	env := newTestEnv(t, jsonWebhook())
	property := analyzeOne(t, env)

	w := env.request(t, http.MethodGet, "/api/properties/"+property.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/properties/"+property.ID, nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/properties/"+property.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
