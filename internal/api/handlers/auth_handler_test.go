package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avelar/taskhub-be/internal/apperr"
	"github.com/avelar/taskhub-be/internal/auth"
	"github.com/avelar/taskhub-be/internal/models"
)

type fakeUserService struct {
	user        models.User
	signupErr   error
	authErr     error
	getErr      error
	signupEmail string
}

func (f *fakeUserService) Signup(ctx context.Context, email, password, name string) (models.User, error) {
	f.signupEmail = email
	return f.user, f.signupErr
}

func (f *fakeUserService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	return f.user, f.authErr
}

func (f *fakeUserService) GetByID(ctx context.Context, id string) (models.User, error) {
	return f.user, f.getErr
}

func decodeEnvelope(t *testing.T, body string) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		t.Fatalf("invalid response body %q: %v", body, err)
	}
	return env
}

func newTestTokens() *auth.TokenService {
	return auth.NewTokenService("test-secret", time.Hour)
}

func TestSignupHandler(t *testing.T) {
	users := &fakeUserService{user: models.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}}
	h := NewAuthHandler(users, newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"Alice@Example.com","password":"secret1","name":"Alice"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["success"] != true || env["message"] != "User registered successfully" {
		t.Errorf("envelope = %v", env)
	}
	data := env["data"].(map[string]any)
	if data["token"] == "" || data["token"] == nil {
		t.Error("no token issued")
	}
	user := data["user"].(map[string]any)
	if user["email"] != "alice@example.com" {
		t.Errorf("user = %v", user)
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Error("password hash leaked in response")
	}
	if users.signupEmail != "alice@example.com" {
		t.Errorf("service received email %q before normalization", users.signupEmail)
	}
}

func TestSignupHandlerValidation(t *testing.T) {
	h := NewAuthHandler(&fakeUserService{}, newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"nope","password":"abc","name":"A"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["success"] != false {
		t.Errorf("envelope = %v", env)
	}
	if len(env["errors"].([]any)) != 3 {
		t.Errorf("errors = %v", env["errors"])
	}
}

func TestSignupHandlerConflict(t *testing.T) {
	users := &fakeUserService{signupErr: apperr.Conflict("User with this email already exists")}
	h := NewAuthHandler(users, newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup",
		strings.NewReader(`{"email":"alice@example.com","password":"secret1","name":"Alice"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["message"] != "User with this email already exists" {
		t.Errorf("envelope = %v", env)
	}
}

func TestLoginHandlerInvalidCredentials(t *testing.T) {
	users := &fakeUserService{authErr: apperr.Unauthorized("Invalid credentials")}
	h := NewAuthHandler(users, newTestTokens())

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"wrong1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
	env := decodeEnvelope(t, rec.Body.String())
	if env["message"] != "Invalid credentials" {
		t.Errorf("envelope = %v", env)
	}
}

func TestLoginHandlerIssuesVerifiableToken(t *testing.T) {
	tokens := newTestTokens()
	users := &fakeUserService{user: models.User{ID: "user-1", Email: "alice@example.com"}}
	h := NewAuthHandler(users, tokens)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"alice@example.com","password":"secret1"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec.Body.String())["data"].(map[string]any)
	userID, err := tokens.Verify(data["token"].(string))
	if err != nil || userID != "user-1" {
		t.Errorf("token does not verify to the user: %q, %v", userID, err)
	}
}

func TestMeHandler(t *testing.T) {
	tokens := newTestTokens()
	users := &fakeUserService{user: models.User{ID: "user-1", Email: "alice@example.com", Name: "Alice"}}
	h := NewAuthHandler(users, tokens)

	token, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	auth.Middleware(tokens, users)(http.HandlerFunc(h.Me)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	data := decodeEnvelope(t, rec.Body.String())["data"].(map[string]any)
	user := data["user"].(map[string]any)
	if user["id"] != "user-1" {
		t.Errorf("user = %v", user)
	}
}
