package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/devlinkr/devlinkr-be/internal/auth"
	"github.com/devlinkr/devlinkr-be/internal/services"
	"github.com/devlinkr/devlinkr-be/internal/store/mock"
	"github.com/devlinkr/devlinkr-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

// setupTestRouter wires the full router against in-memory stores.
func setupTestRouter(t *testing.T) *chi.Mux {
	t.Helper()
	auth.SetSecret("test-secret")

	users := mock.NewUserStore()
	posts := mock.NewPostStore()
	events := mock.NewEventStore()

	hub := websocket.NewHub()
	go hub.Run()

	userService := services.NewUserService(users)
	eventService := services.NewEventService(events)
	postService := services.NewPostService(posts, users, eventService, hub)

	return NewRouter(hub, userService, postService, eventService, "http://localhost:3000")
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

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
	router.ServeHTTP(w, req)
	return w
}

// registerUser registers an account through the API and returns its token.
func registerUser(t *testing.T, router http.Handler, name, email string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/users", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

// createPost publishes a post through the API and returns its ID.
func createPost(t *testing.T, router http.Handler, token, text string) string {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/posts", token, map[string]string{"text": text})
	require.Equal(t, http.StatusOK, w.Code)

	var post struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	require.NotEmpty(t, post.ID)
	return post.ID
}
