package handlers

import (
	"net/http"
	"strings"
	"testing"

	dom "Tasker/internal/domain"
)

func TestRegisterLoginLogout(t *testing.T) {
	r := newTestRouter(newStubUsers(), newStubTodos(), newStubSessions())

	rec := doRequest(t, r, http.MethodPost, "/register", `{"username":"user1","password":"pass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, r, http.MethodPost, "/login", `{"username":"user1","password":"pass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Login successful") {
		t.Fatalf("login body = %s", rec.Body.String())
	}
	cookie := sessionCookie(t, rec)

	rec = doRequest(t, r, http.MethodGet, "/logout", "", cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Logged out") {
		t.Fatalf("logout: status %d body=%s", rec.Code, rec.Body.String())
	}

	// the destroyed session must no longer open gated routes
	rec = doRequest(t, r, http.MethodGet, "/todos", "", cookie)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("after logout: status %d, want 401", rec.Code)
	}
}

func TestLoginBadCredentials(t *testing.T) {
	sessions := newStubSessions()
	r := newTestRouter(newStubUsers(), newStubTodos(), sessions)

	rec := doRequest(t, r, http.MethodPost, "/register", `{"username":"user1","password":"pass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d", rec.Code)
	}

	rec = doRequest(t, r, http.MethodPost, "/login", `{"username":"user1","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password: status %d, want 401", rec.Code)
	}
	if len(sessions.m) != 0 {
		t.Fatalf("failed login created %d sessions", len(sessions.m))
	}
}

func TestRegisterDuplicate(t *testing.T) {
	r := newTestRouter(newStubUsers(), newStubTodos(), newStubSessions())

	rec := doRequest(t, r, http.MethodPost, "/register", `{"username":"user1","password":"pass1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: status %d", rec.Code)
	}
	rec = doRequest(t, r, http.MethodPost, "/register", `{"username":"user1","password":"other"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", rec.Code)
	}
}

func TestProfileUpdate(t *testing.T) {
	users := newStubUsers()
	users.add("admin", "adminpass", dom.RoleAdmin)
	r := newTestRouter(users, newStubTodos(), newStubSessions())

	cookie := registerAndLogin(t, r, "user2", "pass2")

	// renaming onto the seeded admin's username must fail with 400
	rec := doRequest(t, r, http.MethodPost, "/profile", `{"username":"admin"}`, cookie)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("collision update: status %d, want 400", rec.Code)
	}

	rec = doRequest(t, r, http.MethodPost, "/profile", `{"username":"user2new","password":"newpass"}`, cookie)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "Profile updated") {
		t.Fatalf("profile update: status %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, r, http.MethodPost, "/login", `{"username":"user2new","password":"newpass"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login with updated credentials: status %d", rec.Code)
	}
}

func TestProfileRequiresSession(t *testing.T) {
	r := newTestRouter(newStubUsers(), newStubTodos(), newStubSessions())
	rec := doRequest(t, r, http.MethodPost, "/profile", `{"username":"x"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("profile without session: status %d, want 401", rec.Code)
	}
}
