package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lrbook/internal/database"
	"lrbook/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(repository.NewCityRepository(db), repository.NewLocationRepository(db))
	r := gin.New()
	v1 := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(v1, v1)
	return r
}

func performRequest(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestCatalog_CityAndLocationLifecycle(t *testing.T) {
	r := setupRouter(t)

	w, env := performRequest(r, http.MethodPost, "/api/v1/cities", gin.H{"name": "Chennai", "code": "chn"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var city struct {
		ID   string `json:"id"`
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &city))
	assert.Equal(t, "CHN", city.Code)

	w, env = performRequest(r, http.MethodPost, "/api/v1/cities", gin.H{"name": "Again", "code": "CHN"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CODE_EXISTS", env.Error.Code)

	w, _ = performRequest(r, http.MethodPost, "/api/v1/locations", gin.H{
		"name": "Chennai Central", "code": "CHC", "city_id": city.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = performRequest(r, http.MethodGet, "/api/v1/locations?search=central", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var locs []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &locs))
	require.Len(t, locs, 1)
	assert.Equal(t, "active", locs[0]["status"])

	w, env = performRequest(r, http.MethodDelete, "/api/v1/cities/"+city.ID, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CITY_IN_USE", env.Error.Code)
}

func TestCatalog_Validation(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name string
		path string
		body gin.H
		code string
	}{
		{"city code too long", "/api/v1/cities", gin.H{"name": "X", "code": "ABCD"}, "VALIDATION_ERROR"},
		{"city code digits", "/api/v1/cities", gin.H{"name": "X", "code": "A1B"}, "VALIDATION_ERROR"},
		{"location unknown city", "/api/v1/locations", gin.H{"name": "X", "code": "XYZ", "city_id": "missing"}, "CITY_NOT_FOUND"},
		{"missing name", "/api/v1/cities", gin.H{"code": "ABC"}, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := performRequest(r, http.MethodPost, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestCatalog_CityCodeImmutable(t *testing.T) {
	r := setupRouter(t)

	_, env := performRequest(r, http.MethodPost, "/api/v1/cities", gin.H{"name": "Madurai", "code": "MDU"})
	var city struct{ ID string }
	require.NoError(t, json.Unmarshal(env.Data, &city))

	w, _ := performRequest(r, http.MethodPut, "/api/v1/cities/"+city.ID, gin.H{"name": "Madurai", "code": "MDX"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = performRequest(r, http.MethodPut, "/api/v1/cities/"+city.ID, gin.H{"name": "Madurai City"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = performRequest(r, http.MethodPut, "/api/v1/cities/missing", gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
