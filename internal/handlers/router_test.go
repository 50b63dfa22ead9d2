package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Tasker/internal/auth"
	dom "Tasker/internal/domain"
	"Tasker/internal/service"

	"github.com/gin-gonic/gin"
)

// stubUsers is an in-memory UserService/AdminService with plaintext passwords.
type stubUsers struct {
	users  map[int64]dom.User
	pwds   map[int64]string
	nextID int64
}

func newStubUsers() *stubUsers {
	return &stubUsers{users: map[int64]dom.User{}, pwds: map[int64]string{}}
}

func (s *stubUsers) add(username, password string, role dom.Role) dom.User {
	s.nextID++
	u := dom.User{ID: s.nextID, Username: username, Role: role, CreatedAt: time.Now()}
	s.users[u.ID] = u
	s.pwds[u.ID] = password
	return u
}

func (s *stubUsers) byName(username string) (dom.User, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return dom.User{}, false
}

func (s *stubUsers) Register(_ context.Context, username, password string) (dom.User, error) {
	if username == "" || password == "" {
		return dom.User{}, service.ErrInvalidCredentials
	}
	if _, ok := s.byName(username); ok {
		return dom.User{}, service.ErrUsernameTaken
	}
	return s.add(username, password, dom.RoleUser), nil
}

func (s *stubUsers) ValidateCredentials(_ context.Context, username, password string) (dom.User, error) {
	u, ok := s.byName(username)
	if !ok || s.pwds[u.ID] != password {
		return dom.User{}, service.ErrInvalidCredentials
	}
	return u, nil
}

func (s *stubUsers) UpdateProfile(_ context.Context, userID int64, newUsername, newPassword *string) (dom.User, error) {
	u := s.users[userID]
	if newUsername != nil {
		if other, ok := s.byName(*newUsername); ok && other.ID != userID {
			return dom.User{}, service.ErrUsernameTaken
		}
		u.Username = *newUsername
	}
	if newPassword != nil {
		s.pwds[userID] = *newPassword
	}
	s.users[userID] = u
	return u, nil
}

func (s *stubUsers) ListUsers(_ context.Context, requesterID int64) ([]dom.User, error) {
	if !s.users[requesterID].IsAdmin() {
		return nil, service.ErrForbidden
	}
	var out []dom.User
	for id := int64(1); id <= s.nextID; id++ {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// stubSessions implements SessionStore and auth.SessionLookup.
type stubSessions struct {
	m map[string]int64
	n int
}

func newStubSessions() *stubSessions {
	return &stubSessions{m: map[string]int64{}}
}

func (s *stubSessions) Create(_ context.Context, userID int64) (string, error) {
	s.n++
	id := fmt.Sprintf("sess-%d", s.n)
	s.m[id] = userID
	return id, nil
}

func (s *stubSessions) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

func (s *stubSessions) GetUserID(_ context.Context, id string) (int64, bool) {
	userID, ok := s.m[id]
	return userID, ok
}

// stubTodos is an in-memory TodoService enforcing the same ownership rules.
type stubTodos struct {
	todos  map[int64]dom.Todo
	nextID int64
}

func newStubTodos() *stubTodos {
	return &stubTodos{todos: map[int64]dom.Todo{}}
}

func (s *stubTodos) Create(_ context.Context, userID int64, title string) (dom.Todo, error) {
	s.nextID++
	t := dom.Todo{ID: s.nextID, Title: title, UserID: userID, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	s.todos[t.ID] = t
	return t, nil
}

func (s *stubTodos) List(_ context.Context, userID int64) ([]dom.Todo, error) {
	var out []dom.Todo
	for id := int64(1); id <= s.nextID; id++ {
		if t, ok := s.todos[id]; ok && t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *stubTodos) Update(_ context.Context, userID, id int64, title string) (dom.Todo, error) {
	t, ok := s.todos[id]
	if !ok {
		return dom.Todo{}, service.ErrNotFound
	}
	if t.UserID != userID {
		return dom.Todo{}, service.ErrNotOwner
	}
	t.Title = title
	t.UpdatedAt = time.Now()
	s.todos[id] = t
	return t, nil
}

func (s *stubTodos) Delete(_ context.Context, userID, id int64) error {
	t, ok := s.todos[id]
	if !ok {
		return service.ErrNotFound
	}
	if t.UserID != userID {
		return service.ErrNotOwner
	}
	delete(s.todos, id)
	return nil
}

// newTestRouter wires the full route surface with stubbed services.
func newTestRouter(users *stubUsers, todos *stubTodos, sessions *stubSessions) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authHandler := NewAuthHandler(sessions, users)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)

	protected := r.Group("", auth.RequireSession(sessions))
	protected.GET("/logout", authHandler.Logout)
	protected.POST("/profile", authHandler.UpdateProfile)
	protected.GET("/admin/users", NewAdminHandler(users).ListUsers)

	todoHandler := NewTodoHandler(todos)
	protected.POST("/todos", todoHandler.Create)
	protected.GET("/todos", todoHandler.List)
	protected.PUT("/todos/:id", todoHandler.Update)
	protected.DELETE("/todos/:id", todoHandler.Delete)

	return r
}

func doRequest(t *testing.T, r http.Handler, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_id" && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

func registerAndLogin(t *testing.T, r http.Handler, username, password string) *http.Cookie {
	t.Helper()
	creds := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	if rec := doRequest(t, r, http.MethodPost, "/register", creds); rec.Code != http.StatusOK {
		t.Fatalf("register %s: status %d body=%s", username, rec.Code, rec.Body.String())
	}
	rec := doRequest(t, r, http.MethodPost, "/login", creds)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body=%s", username, rec.Code, rec.Body.String())
	}
	return sessionCookie(t, rec)
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
