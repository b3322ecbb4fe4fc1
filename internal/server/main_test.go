package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"devlink/internal/cache"
	"devlink/internal/config"
	"devlink/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestServer builds a full server against an isolated in-memory SQLite
// database with no Redis.
func setupTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	cache.SetClient(nil)

	cfg := &config.Config{
		JWTSecret:      "handler-test-secret-key-0123456789ab",
		Port:           "0",
		Env:            "test",
		AllowedOrigins: "*",
	}
	return NewServerWithDeps(cfg, db, nil)
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, s *Server, method, path string, body any, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals a response body into dest.
func decodeBody(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// registerUser registers a user through the API and returns the token.
func registerUser(t *testing.T, s *Server, name, email string) string {
	t.Helper()
	resp := doJSON(t, s, http.MethodPost, "/api/users", map[string]string{
		"name": name, "email": email, "password": "secret1",
	}, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	require.NotEmpty(t, body["token"])
	return body["token"]
}
