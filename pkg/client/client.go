// Package client provides a typed HTTP client for the Criminal Diaries API.
// It keeps the session token from Login or Signup and attaches it as a
// bearer token on subsequent requests until Logout is called.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"criminaldiaries/internal/models"
)

// Client talks to a Criminal Diaries API server.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the API at baseURL, e.g. "http://localhost:6000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Token returns the current session token, empty when logged out.
func (c *Client) Token() string { return c.token }

// SetToken installs an existing session token, e.g. one restored from disk.
func (c *Client) SetToken(token string) { c.token = token }

// Logout discards the session token. The server keeps no session state, so
// dropping the token is all that is required.
func (c *Client) Logout() { c.token = "" }

type authPayload struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new account and stores the returned session token.
func (c *Client) Signup(ctx context.Context, username, email, password string) (*models.User, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	c.token = payload.Token
	return payload.User, nil
}

// Login authenticates and stores the returned session token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	var payload authPayload
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &payload)
	if err != nil {
		return nil, err
	}
	c.token = payload.Token
	return payload.User, nil
}

// Me returns the profile of the logged-in user.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// StoryInput carries the writable story fields.
type StoryInput struct {
	Title    string `json:"title"`
	Excerpt  string `json:"excerpt,omitempty"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category"`
	ReadTime string `json:"readTime,omitempty"`
}

// ListStories fetches a page of stories, newest first.
func (c *Client) ListStories(ctx context.Context, limit, offset int) ([]*models.Story, error) {
	var stories []*models.Story
	path := fmt.Sprintf("/api/stories?limit=%d&offset=%d", limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStory fetches one story with its comments.
func (c *Client) GetStory(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	path := fmt.Sprintf("/api/stories/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// CreateStory publishes a new story. Requires login.
func (c *Client) CreateStory(ctx context.Context, in StoryInput) (*models.Story, error) {
	var story models.Story
	if err := c.do(ctx, http.MethodPost, "/api/stories", in, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// UpdateStory edits an existing story. Requires ownership or an admin token.
func (c *Client) UpdateStory(ctx context.Context, id uint, in StoryInput) (*models.Story, error) {
	var story models.Story
	path := fmt.Sprintf("/api/stories/%d", id)
	if err := c.do(ctx, http.MethodPut, path, in, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// DeleteStory removes a story. Requires ownership or an admin token.
func (c *Client) DeleteStory(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/stories/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// ToggleLike flips the caller's like on a story and returns the fresh story.
func (c *Client) ToggleLike(ctx context.Context, id uint) (*models.Story, error) {
	var story models.Story
	path := fmt.Sprintf("/api/stories/%d/like", id)
	if err := c.do(ctx, http.MethodPut, path, nil, &story); err != nil {
		return nil, err
	}
	return &story, nil
}

// CreateComment posts a comment on a story. Requires login.
func (c *Client) CreateComment(ctx context.Context, storyID uint, content string) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(ctx, http.MethodPost, "/api/comments", map[string]any{
		"storyId": storyID,
		"content": content,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// StoryComments fetches the comments on a story, newest first.
func (c *Client) StoryComments(ctx context.Context, storyID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	path := fmt.Sprintf("/api/comments/story/%d", storyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// DeleteComment removes a comment. Requires ownership or an admin token.
func (c *Client) DeleteComment(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/comments/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// APIError is returned when the server responds with a failure envelope.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// do executes a request and decodes the envelope's data field into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode >= 400 || !envelope.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: envelope.Message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
