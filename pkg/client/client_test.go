package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"criminaldiaries/internal/models"

	"github.com/stretchr/testify/assert"
)

const testToken = "session-token-123"

// newStubServer fakes just enough of the API to drive the client: a login
// endpoint issuing a fixed token and a profile endpoint requiring it.
func newStubServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	writeJSON := func(w http.ResponseWriter, status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		assert.NoError(t, json.NewEncoder(w).Encode(body))
	}

	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Password != "secret123" {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Message: "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, models.OK(map[string]any{
			"token": testToken,
			"user":  models.User{ID: 1, Username: "holmes", Email: creds.Email},
		}))
	})

	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+testToken {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Message: "Authentication required"})
			return
		}
		writeJSON(w, http.StatusOK, models.OK(models.User{ID: 1, Username: "holmes"}))
	})

	mux.HandleFunc("/api/stories", func(w http.ResponseWriter, r *http.Request) {
		stories := []models.Story{{ID: 4, Title: "The Cipher Letters"}}
		writeJSON(w, http.StatusOK, models.OKWithCount(stories, len(stories)))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SessionLifecycle(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL)
	ctx := context.Background()

	// before login the client carries no token and protected calls fail
	assert.Empty(t, c.Token())
	_, err := c.Me(ctx)
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)

	user, err := c.Login(ctx, "holmes@example.com", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, "holmes", user.Username)
	assert.Equal(t, testToken, c.Token())

	// the stored token is attached as a bearer on subsequent calls
	me, err := c.Me(ctx)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), me.ID)

	c.Logout()
	assert.Empty(t, c.Token())
	_, err = c.Me(ctx)
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
}

func TestClient_LoginFailureKeepsLoggedOut(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL)

	_, err := c.Login(context.Background(), "holmes@example.com", "wrong")
	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.Empty(t, c.Token())
}

func TestClient_DecodesEnvelopeData(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL)

	stories, err := c.ListStories(context.Background(), 10, 0)
	assert.NoError(t, err)
	assert.Len(t, stories, 1)
	assert.Equal(t, "The Cipher Letters", stories[0].Title)
}

func TestClient_FailureEnvelopeBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		assert.NoError(t, json.NewEncoder(w).Encode(models.Response{Success: false, Message: "Story not found"}))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL)
	_, err := c.GetStory(context.Background(), 999)

	var apiErr *APIError
	assert.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Story not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestClient_SetTokenRestoresSession(t *testing.T) {
	srv := newStubServer(t)
	c := New(srv.URL)

	c.SetToken(testToken)
	me, err := c.Me(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "holmes", me.Username)
}
