package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"criminaldiaries/internal/config"
	"criminaldiaries/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a server over an in-memory database with the full
// route table mounted.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Story{}, &models.Comment{}, &models.Like{})
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test_secret",
		Env:       "test",
	}

	s := NewServerWithDeps(cfg, db, nil)
	app := fiber.New()
	s.SetupRoutes(app)

	return s, app, db
}

type envelope struct {
	Success bool            `json:"success"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// doJSON performs a request against the test app, optionally authenticated.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, envelope) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}

	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			t.Fatalf("Failed to decode envelope %q: %v", raw, err)
		}
	}
	return resp, env
}

// signupUser registers a user through the API and returns their token and record.
func signupUser(t *testing.T, app *fiber.App, username string) (string, *models.User) {
	t.Helper()

	resp, env := doJSON(t, app, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password123!",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("Signup for %s failed with status %d: %s", username, resp.StatusCode, env.Message)
	}

	var payload struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatalf("Failed to decode signup payload: %v", err)
	}
	return payload.Token, payload.User
}

// makeAdmin flips a user's role directly in the database.
func makeAdmin(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("Failed to promote user %d: %v", userID, err)
	}
}

func decodeData(t *testing.T, env envelope, out any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, out); err != nil {
		t.Fatalf("Failed to decode envelope data: %v", err)
	}
}
