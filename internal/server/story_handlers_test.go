package server

import (
	"fmt"
	"net/http"
	"testing"

	"criminaldiaries/internal/models"

	"github.com/stretchr/testify/assert"
)

func validStoryBody() map[string]string {
	return map[string]string{
		"title":    "The Vanishing of Clara Hughes",
		"excerpt":  "A flight attendant disappears between two shifts.",
		"content":  "Full story content goes here.",
		"category": models.CategoryUnsolvedMysteries,
	}
}

func TestCreateStory(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, user := signupUser(t, app, "writer")

	t.Run("Success With Defaults", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPost, "/api/stories", token, validStoryBody())
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		assert.True(t, env.Success)

		var story models.Story
		decodeData(t, env, &story)
		assert.Equal(t, user.ID, story.AuthorID)
		assert.Equal(t, models.DefaultStoryImage, story.Image)
		assert.Equal(t, models.DefaultReadTime, story.ReadTime)
		assert.Equal(t, "writer", story.Author.Username)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", "", validStoryBody())
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Missing Required Fields", func(t *testing.T) {
		body := validStoryBody()
		delete(body, "content")
		resp, env := doJSON(t, app, http.MethodPost, "/api/stories", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, env.Success)
	})

	t.Run("Whitespace-Only Fields Rejected", func(t *testing.T) {
		body := validStoryBody()
		body["excerpt"] = "   "
		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Unknown Category", func(t *testing.T) {
		body := validStoryBody()
		body["category"] = "Petty Theft"
		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Title Too Long", func(t *testing.T) {
		body := validStoryBody()
		long := make([]byte, models.MaxTitleLen+1)
		for i := range long {
			long[i] = 'x'
		}
		body["title"] = string(long)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", token, body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetStories(t *testing.T) {
	_, app, _ := newTestServer(t)
	token, _ := signupUser(t, app, "writer")

	for i := 0; i < 3; i++ {
		body := validStoryBody()
		body["title"] = fmt.Sprintf("Story %d", i)
		resp, _ := doJSON(t, app, http.MethodPost, "/api/stories", token, body)
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	t.Run("Public List With Count", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/api/stories", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotNil(t, env.Count)
		assert.Equal(t, 3, *env.Count)
	})

	t.Run("Pagination", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodGet, "/api/stories?limit=2&offset=2", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, 1, *env.Count)
	})

	t.Run("Get Single Not Found", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/stories/999", "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Get Single Bad ID", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/stories/abc", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestUpdateStory_Ownership(t *testing.T) {
	_, app, _ := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	strangerToken, _ := signupUser(t, app, "stranger")

	_, env := doJSON(t, app, http.MethodPost, "/api/stories", ownerToken, validStoryBody())
	var story models.Story
	decodeData(t, env, &story)

	path := fmt.Sprintf("/api/stories/%d", story.ID)

	t.Run("Non-Owner Forbidden", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, path, strangerToken, map[string]string{
			"title": "Hijacked",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner Can Edit", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]string{
			"title": "Revised Title",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Story
		decodeData(t, env, &updated)
		assert.Equal(t, "Revised Title", updated.Title)
		// untouched fields survive a partial update
		assert.Equal(t, story.Excerpt, updated.Excerpt)
	})

	t.Run("Invalid Category Rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]string{
			"category": "Not A Category",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Blank Fields Rejected", func(t *testing.T) {
		for _, field := range []string{"title", "excerpt", "content"} {
			resp, _ := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]string{
				field: "   ",
			})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		}

		// the rejected updates must not have touched the story
		_, env := doJSON(t, app, http.MethodGet, path, "", nil)
		var current models.Story
		decodeData(t, env, &current)
		assert.NotEmpty(t, current.Title)
		assert.NotEmpty(t, current.Excerpt)
	})

	t.Run("Provided Fields Are Trimmed", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPut, path, ownerToken, map[string]string{
			"title": "  Padded Title  ",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var updated models.Story
		decodeData(t, env, &updated)
		assert.Equal(t, "Padded Title", updated.Title)
	})
}

func TestDeleteStory_Ownership(t *testing.T) {
	_, app, db := newTestServer(t)
	ownerToken, _ := signupUser(t, app, "owner")
	strangerToken, _ := signupUser(t, app, "stranger")

	_, env := doJSON(t, app, http.MethodPost, "/api/stories", ownerToken, validStoryBody())
	var story models.Story
	decodeData(t, env, &story)
	path := fmt.Sprintf("/api/stories/%d", story.ID)

	// hang a comment and a like off the story so the cascade is observable
	resp, _ := doJSON(t, app, http.MethodPost, "/api/comments", strangerToken, map[string]any{
		"storyId": story.ID,
		"content": "Chilling.",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPut, path+"/like", strangerToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	t.Run("Non-Owner Forbidden", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, path, strangerToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Owner Deletes With Cascade", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodDelete, path, ownerToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doJSON(t, app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var comments, likes int64
		db.Model(&models.Comment{}).Where("story_id = ?", story.ID).Count(&comments)
		db.Model(&models.Like{}).Where("story_id = ?", story.ID).Count(&likes)
		assert.Zero(t, comments)
		assert.Zero(t, likes)
	})
}

func TestLikeStory_Toggle(t *testing.T) {
	_, app, _ := newTestServer(t)
	authorToken, _ := signupUser(t, app, "author")
	fanToken, _ := signupUser(t, app, "fan")

	_, env := doJSON(t, app, http.MethodPost, "/api/stories", authorToken, validStoryBody())
	var story models.Story
	decodeData(t, env, &story)
	path := fmt.Sprintf("/api/stories/%d/like", story.ID)

	t.Run("First Toggle Likes", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPut, path, fanToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Story liked", env.Message)

		var liked models.Story
		decodeData(t, env, &liked)
		assert.Equal(t, 1, liked.LikesCount)
		assert.True(t, liked.Liked)
	})

	t.Run("Second Toggle Unlikes", func(t *testing.T) {
		resp, env := doJSON(t, app, http.MethodPut, path, fanToken, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Story unliked", env.Message)

		var unliked models.Story
		decodeData(t, env, &unliked)
		assert.Equal(t, 0, unliked.LikesCount)
		assert.False(t, unliked.Liked)
	})

	t.Run("Missing Story", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/stories/999/like", fanToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
