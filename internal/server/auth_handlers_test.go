package server

import (
	"io"
	"net/http"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterEndpoint(t *testing.T) {
	s := setupTestServer(t)

	t.Run("returns 201 and a token", func(t *testing.T) {
		token := registerUser(t, s, "Jane Doe", "jane@example.com")
		assert.NotEmpty(t, token)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/users", map[string]string{
			"name": "Jane Again", "email": "jane@example.com", "password": "secret1",
		}, "")
		assert.Equal(t, http.StatusConflict, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, models.CodeConflict, body.Code)
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		tests := []struct {
			name    string
			payload map[string]string
		}{
			{"bad email", map[string]string{"name": "Jo", "email": "nope", "password": "secret1"}},
			{"short password", map[string]string{"name": "Jo", "email": "jo@example.com", "password": "abc"}},
			{"short name", map[string]string{"name": "J", "email": "jo@example.com", "password": "secret1"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				resp := doJSON(t, s, http.MethodPost, "/api/users", tt.payload, "")
				assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

				var body models.ErrorResponse
				decodeBody(t, resp, &body)
				assert.Equal(t, models.CodeValidation, body.Code)
			})
		}
	})
}

func TestLoginEndpoint(t *testing.T) {
	s := setupTestServer(t)
	registerUser(t, s, "Jane Doe", "jane@example.com")

	t.Run("valid credentials return a token", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/auth", map[string]string{
			"email": "jane@example.com", "password": "secret1",
		}, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.NotEmpty(t, body["token"])
	})

	t.Run("wrong password and unknown email produce identical responses", func(t *testing.T) {
		wrongPw := doJSON(t, s, http.MethodPost, "/api/auth", map[string]string{
			"email": "jane@example.com", "password": "not-the-password",
		}, "")
		unknown := doJSON(t, s, http.MethodPost, "/api/auth", map[string]string{
			"email": "ghost@example.com", "password": "secret1",
		}, "")

		assert.Equal(t, http.StatusBadRequest, wrongPw.StatusCode)
		assert.Equal(t, http.StatusBadRequest, unknown.StatusCode)

		wrongBody, err := io.ReadAll(wrongPw.Body)
		require.NoError(t, err)
		unknownBody, err := io.ReadAll(unknown.Body)
		require.NoError(t, err)
		assert.Equal(t, string(wrongBody), string(unknownBody))
	})
}

func TestCurrentUserEndpoint(t *testing.T) {
	s := setupTestServer(t)
	token := registerUser(t, s, "Jane Doe", "jane@example.com")

	t.Run("returns the caller without the password", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/auth", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Jane Doe", body["name"])
		assert.Equal(t, "jane@example.com", body["email"])
		assert.NotContains(t, body, "password")
	})

	t.Run("missing token returns 401", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/auth", nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("garbage token returns 401", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/auth", nil, "not.a.jwt")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token signed with another key returns 401", func(t *testing.T) {
		other := setupTestServer(t)
		other.config.JWTSecret = "a-completely-different-secret-key-xyz"
		foreign, err := other.generateToken(1)
		require.NoError(t, err)

		resp := doJSON(t, s, http.MethodGet, "/api/auth", nil, foreign)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
