package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kebabkartan/backend/config"
	"github.com/kebabkartan/backend/internal/api"
	"github.com/kebabkartan/backend/internal/database"
	"github.com/kebabkartan/backend/internal/models"
	"github.com/kebabkartan/backend/internal/router"
	"github.com/kebabkartan/backend/internal/service"
	"github.com/kebabkartan/backend/internal/types"
)

const testAdminPassword = "hemligt"

// stubCaptcha lets a test flip submissions between accepted and rejected
// without a verification backend.
type stubCaptcha struct {
	fail bool
}

func (s *stubCaptcha) Verify(ctx context.Context, token string) error {
	if s.fail {
		return service.ErrCaptchaFailed
	}
	return nil
}

type testEnv struct {
	router  *gin.Engine
	db      *gorm.DB
	auth    *service.AuthService
	captcha *stubCaptcha
}

func setupTestEnv(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	captcha := &stubCaptcha{}
	authService := service.NewAuthService(db, "test-secret")
	placeService := service.NewPlaceService(db, testAdminPassword)
	ratingService := service.NewRatingService(db)
	reviewService := service.NewReviewService(db)
	geoService := service.NewGeoIPService("", nil)
	cfg := &config.Config{AnalyticsMeasurementID: "G-TEST123"}

	handlers := router.Handlers{
		Auth:   api.NewAuthHandler(authService),
		Place:  api.NewPlaceHandler(placeService, nil),
		Review: api.NewReviewHandler(reviewService, captcha),
		Rating: api.NewRatingHandler(ratingService, captcha),
		Client: api.NewClientHandler(geoService, cfg),
	}

	return &testEnv{
		router:  router.SetupRouter(handlers, authService, nil),
		db:      db,
		auth:    authService,
		captcha: captcha,
	}
}

// performRequest runs one request through the full route table. A non-empty
// token is attached as a bearer credential.
func (e *testEnv) performRequest(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token and
// the user id parsed back out of it.
func (e *testEnv) registerUser(t *testing.T, name string) (string, uuid.UUID) {
	w := e.performRequest(t, http.MethodPost, "/api/auth/register", "", types.RegisterRequest{
		Name:     name,
		Email:    name + "-" + uuid.NewString() + "@example.com",
		Password: "lösenord123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp types.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	claims, err := e.auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	return resp.Token, claims.UserID
}

func (e *testEnv) createPlace(t *testing.T, name, slug string) models.Place {
	place := models.Place{
		ID:        uuid.New(),
		Name:      name,
		Slug:      slug,
		City:      "Göteborg",
		Latitude:  57.7089,
		Longitude: 11.9746,
		Tags:      models.TagList{"Kebab"},
	}
	require.NoError(t, e.db.Create(&place).Error)
	return place
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
