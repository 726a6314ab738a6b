package server

import (
	"fmt"
	"net/http"
	"testing"

	"criminaldiaries/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestAdminRoutes_RequireAdminRole(t *testing.T) {
	_, app, _ := newTestServer(t)
	userToken, _ := signupUser(t, app, "regular")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/users"},
		{http.MethodGet, "/api/admin/stories"},
		{http.MethodGet, "/api/admin/comments"},
		{http.MethodGet, "/api/admin/stats"},
		{http.MethodDelete, "/api/admin/users/1"},
	}

	for _, p := range paths {
		t.Run(p.method+" "+p.path, func(t *testing.T) {
			resp, _ := doJSON(t, app, p.method, p.path, userToken, nil)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode)

			resp, _ = doJSON(t, app, p.method, p.path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAdminUserManagement(t *testing.T) {
	_, app, db := newTestServer(t)
	adminToken, admin := signupUser(t, app, "boss")
	makeAdmin(t, db, admin.ID)
	_, target := signupUser(t, app, "member")

	t.Run("List Users", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/api/admin/users", adminToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 2, *env.Count)
	})

	t.Run("Promote User", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/users/%d", target.ID)
		resp, env := doJSON(t, app, http.MethodPut, path, adminToken, map[string]string{"role": "admin"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.User
		decodeData(t, env, &updated)
		assert.Equal(t, models.RoleAdmin, updated.Role)
	})

	t.Run("Invalid Role Rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/users/%d", target.ID)
		resp, _ := doJSON(t, app, http.MethodPut, path, adminToken, map[string]string{"role": "overlord"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Demote When Another Admin Exists", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/users/%d", target.ID)
		resp, _ := doJSON(t, app, http.MethodPut, path, adminToken, map[string]string{"role": "user"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Demote Last Admin Rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/users/%d", admin.ID)
		resp, env := doJSON(t, app, http.MethodPut, path, adminToken, map[string]string{"role": "user"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, env.Message, "last admin")
	})

	t.Run("Delete Last Admin Rejected", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/users/%d", admin.ID)
		resp, _ := doJSON(t, app, http.MethodDelete, path, adminToken, nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Delete User Cascades Their Content", func(t *testing.T) {
		// the target writes a story before being removed
		memberToken, _ := func() (string, *models.User) {
			resp, env := doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "member@example.com",
				"password": "Password123!",
			})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var payload struct {
				Token string       `json:"token"`
				User  *models.User `json:"user"`
			}
			decodeData(t, env, &payload)
			return payload.Token, payload.User
		}()

		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", memberToken, validStoryBody())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		path := fmt.Sprintf("/api/admin/users/%d", target.ID)
		resp, _ = doJSON(t, app, http.MethodDelete, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var stories int64
		db.Model(&models.Story{}).Where("author_id = ?", target.ID).Count(&stories)
		assert.Zero(t, stories)

		// the deleted user's token no longer authenticates
		resp, _ = doJSON(t, app, http.MethodGet, "/api/auth/me", memberToken, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestAdminModeration(t *testing.T) {
	_, app, db := newTestServer(t)
	adminToken, admin := signupUser(t, app, "mod")
	makeAdmin(t, db, admin.ID)
	writerToken, _ := signupUser(t, app, "writer")

	_, env := doJSON(t, app, http.MethodPost, "/api/stories", writerToken, validStoryBody())
	var story models.Story
	decodeData(t, env, &story)

	_, env = doJSON(t, app, http.MethodPost, "/api/comments", writerToken, map[string]any{
		"storyId": story.ID,
		"content": "a comment worth removing",
	})
	var comment models.Comment
	decodeData(t, env, &comment)

	t.Run("List Comments Includes Story Title", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/api/admin/comments", adminToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, *env.Count)

		var comments []models.Comment
		decodeData(t, env, &comments)
		assert.NotNil(t, comments[0].Story)
		assert.Equal(t, story.Title, comments[0].Story.Title)
	})

	t.Run("Admin Deletes Someone Else's Comment", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/comments/%d", comment.ID)
		resp, _ := doJSON(t, app, http.MethodDelete, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Admin Deletes Someone Else's Story", func(t *testing.T) {
		path := fmt.Sprintf("/api/admin/stories/%d", story.ID)
		resp, _ := doJSON(t, app, http.MethodDelete, path, adminToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/stories/%d", story.ID), "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestAdminStats(t *testing.T) {
	_, app, db := newTestServer(t)
	adminToken, admin := signupUser(t, app, "boss")
	makeAdmin(t, db, admin.ID)
	writerToken, _ := signupUser(t, app, "writer")

	_, env := doJSON(t, app, http.MethodPost, "/api/stories", writerToken, validStoryBody())
	var story models.Story
	decodeData(t, env, &story)

	doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/stories/%d/like", story.ID), adminToken, nil)
	doJSON(t, app, http.MethodPost, "/api/comments", adminToken, map[string]any{
		"storyId": story.ID,
		"content": "noted",
	})

	resp, env := doJSON(t, app, http.MethodGet, "/api/admin/stats", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stats struct {
		UserCount      int64 `json:"user_count"`
		StoryCount     int64 `json:"story_count"`
		CommentCount   int64 `json:"comment_count"`
		Categories     []struct {
			Category string `json:"category"`
			Count    int64  `json:"count"`
		} `json:"categories"`
		PopularStories []models.Story `json:"popular_stories"`
		ActiveUsers    []struct {
			User         models.User `json:"user"`
			CommentCount int64       `json:"comment_count"`
		} `json:"active_users"`
	}
	decodeData(t, env, &stats)

	assert.Equal(t, int64(2), stats.UserCount)
	assert.Equal(t, int64(1), stats.StoryCount)
	assert.Equal(t, int64(1), stats.CommentCount)
	assert.Len(t, stats.Categories, 1)
	assert.Equal(t, story.Category, stats.Categories[0].Category)
	assert.Len(t, stats.PopularStories, 1)
	assert.Equal(t, 1, stats.PopularStories[0].LikesCount)
	assert.Len(t, stats.ActiveUsers, 1)
	assert.Equal(t, "boss", stats.ActiveUsers[0].User.Username)
}
