package server

import (
	"net/http"
	"testing"

	"devlink/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileEndpoints(t *testing.T) {
	s := setupTestServer(t)
	token := registerUser(t, s, "Jane Doe", "jane@example.com")

	t.Run("first upsert returns 201", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
			"status": "Senior Developer",
			"skills": "Go, SQL, Redis",
			"company": "Acme",
		}, token)
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Senior Developer", body["status"])
		assert.Len(t, body["skills"], 3)
	})

	t.Run("second upsert returns 200 and merges", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
			"status": "Staff Engineer",
			"skills": "Go",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Staff Engineer", body["status"])
		// Company was not in the payload and must be preserved.
		assert.Equal(t, "Acme", body["company"])
	})

	t.Run("GET /api/profile/me returns the caller's profile", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/profile/me", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "Staff Engineer", body["status"])
	})

	t.Run("profiles are publicly listable and fetchable", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/profile", nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var list []map[string]any
		decodeBody(t, resp, &list)
		require.Len(t, list, 1)

		userID := int(list[0]["user_id"].(float64))
		single := doJSON(t, s, http.MethodGet, "/api/profile/user/1", nil, "")
		assert.Equal(t, http.StatusOK, single.StatusCode)
		assert.Equal(t, 1, userID)
	})

	t.Run("unknown profile returns 404", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/profile/user/9999", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid user id returns 400", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/profile/user/abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("upsert without auth returns 401", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
			"status": "Dev", "skills": "Go",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("missing skills returns 400", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
			"status": "Dev",
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body models.ErrorResponse
		decodeBody(t, resp, &body)
		assert.Equal(t, models.CodeValidation, body.Code)
	})
}

func TestExperienceEndpoints(t *testing.T) {
	s := setupTestServer(t)
	token := registerUser(t, s, "Jane Doe", "jane@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
		"status": "Developer", "skills": "Go",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("add experience", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPut, "/api/profile/experience", map[string]any{
			"title":   "Engineer",
			"company": "Acme",
			"from":    "2020-03-01",
			"current": true,
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		require.Len(t, body["experience"], 1)
	})

	t.Run("remove experience by id", func(t *testing.T) {
		me := doJSON(t, s, http.MethodGet, "/api/profile/me", nil, token)
		var profile struct {
			Experience []struct {
				ID uint `json:"id"`
			} `json:"experience"`
		}
		decodeBody(t, me, &profile)
		require.Len(t, profile.Experience, 1)

		resp := doJSON(t, s, http.MethodDelete,
			"/api/profile/experience/1", nil, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Empty(t, body["experience"])
	})

	t.Run("removing unknown experience returns 404", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodDelete, "/api/profile/experience/9999", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("bad date returns 400", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPut, "/api/profile/experience", map[string]any{
			"title": "Engineer", "company": "Acme", "from": "03/01/2020",
		}, token)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestEducationEndpoints(t *testing.T) {
	s := setupTestServer(t)
	token := registerUser(t, s, "Jane Doe", "jane@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
		"status": "Student", "skills": "Go",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("add and remove education", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodPut, "/api/profile/education", map[string]any{
			"school":       "State University",
			"degree":       "BSc",
			"fieldofstudy": "Computer Science",
			"from":         "2014-09-01",
			"to":           "2018-06-01",
		}, token)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		require.Len(t, body["education"], 1)

		del := doJSON(t, s, http.MethodDelete, "/api/profile/education/1", nil, token)
		require.Equal(t, http.StatusOK, del.StatusCode)

		var after map[string]any
		decodeBody(t, del, &after)
		assert.Empty(t, after["education"])
	})
}

func TestDeleteAccountEndpoint(t *testing.T) {
	s := setupTestServer(t)
	token := registerUser(t, s, "Jane Doe", "jane@example.com")

	resp := doJSON(t, s, http.MethodPost, "/api/profile", map[string]any{
		"status": "Developer", "skills": "Go",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	del := doJSON(t, s, http.MethodDelete, "/api/profile", nil, token)
	require.Equal(t, http.StatusOK, del.StatusCode)

	t.Run("the account is gone", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/auth", nil, token)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("the profile is gone", func(t *testing.T) {
		resp := doJSON(t, s, http.MethodGet, "/api/profile/user/1", nil, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
