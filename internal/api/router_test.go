package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/recipebox/recipe-api/internal/core/domain"
	"github.com/recipebox/recipe-api/internal/core/service"
)

// In-memory repositories backing full-stack router tests.

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrEmailTaken
	}
	r.nextID++
	stored := *user
	stored.ID = "user-" + strconv.Itoa(r.nextID)
	r.users[stored.Email] = &stored
	out := stored
	return &out, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		out := *u
		return &out, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == user.ID {
			stored := *user
			r.users[user.Email] = &stored
			out := stored
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

type memRecipeRepo struct {
	mu      sync.Mutex
	recipes map[int64]*domain.Recipe
	nextID  int64
}

func (r *memRecipeRepo) Create(_ context.Context, recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	recipe.ID = r.nextID
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) FindByID(_ context.Context, id int64, userID string) (*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.recipes[id]
	if !ok || rec.UserID != userID {
		return nil, domain.ErrRecipeNotFound
	}
	out := *rec
	return &out, nil
}

func (r *memRecipeRepo) ListByUser(_ context.Context, userID string) ([]*domain.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Recipe
	for id := r.nextID; id >= 1; id-- {
		if rec, ok := r.recipes[id]; ok && rec.UserID == userID {
			item := *rec
			out = append(out, &item)
		}
	}
	return out, nil
}

func (r *memRecipeRepo) Update(_ context.Context, recipe *domain.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.recipes[recipe.ID]
	if !ok || existing.UserID != recipe.UserID {
		return domain.ErrRecipeNotFound
	}
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *memRecipeRepo) Delete(_ context.Context, id int64, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.recipes[id]
	if !ok || existing.UserID != userID {
		return domain.ErrRecipeNotFound
	}
	delete(r.recipes, id)
	return nil
}

// The prometheus middleware registers collectors globally, so the router is
// built once and shared; tests isolate themselves with distinct emails.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
	testUsers  *service.UserService
)

func testServer(t *testing.T) *echo.Echo {
	t.Helper()
	routerOnce.Do(func() {
		log := zerolog.Nop()
		testUsers = service.NewUserService(&memUserRepo{users: make(map[string]*domain.User)}, nil, "test-secret", 0, log)
		recipes := service.NewRecipeService(&memRecipeRepo{recipes: make(map[int64]*domain.Recipe)}, nil, log)

		testRouter = NewRouter(Dependencies{
			Users:    testUsers,
			Recipes:  recipes,
			Resolver: testUsers,
			Log:      log,
		})
	})
	return testRouter
}

func testUserFromToken(token string) (*domain.User, error) {
	return testUsers.Resolve(context.Background(), token)
}

func doJSON(e *echo.Echo, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, e *echo.Echo, email, password, name string) {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/v1/users", "",
		`{"email":"`+email+`","password":"`+password+`","name":"`+name+`"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, rec.Code, rec.Body.String())
	}
}

func obtainToken(t *testing.T, e *echo.Echo, email, password string) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/v1/users/token", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("token %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["token"] == "" {
		t.Fatalf("expected token in response: %s", rec.Body.String())
	}
	return resp["token"]
}

func TestRouter_RegisterFlow(t *testing.T) {
	e := testServer(t)

	rec := doJSON(e, http.MethodPost, "/v1/users", "",
		`{"email":"flow@example.com","password":"testpass123","name":"Test name"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("password must not be echoed: %s", rec.Body.String())
	}

	// Duplicate registration fails with 400.
	rec = doJSON(e, http.MethodPost, "/v1/users", "",
		`{"email":"flow@example.com","password":"testpass123","name":"Test name"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate: expected 400, got %d", rec.Code)
	}
}

func TestRouter_PasswordStoredHashed(t *testing.T) {
	e := testServer(t)
	register(t, e, "hashed@example.com", "testpass123", "")

	token := obtainToken(t, e, "hashed@example.com", "testpass123")
	user, err := testUserFromToken(token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.PasswordHash == "testpass123" {
		t.Fatalf("password stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("testpass123")) != nil {
		t.Fatalf("stored hash does not verify the password")
	}
}

func TestRouter_Token_WrongPassword(t *testing.T) {
	e := testServer(t)
	register(t, e, "wrongpw@example.com", "testpass123", "")

	rec := doJSON(e, http.MethodPost, "/v1/users/token", "",
		`{"email":"wrongpw@example.com","password":"badpass"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, hasToken := resp["token"]; hasToken {
		t.Fatalf("response must not contain a token key: %s", rec.Body.String())
	}
}

func TestRouter_Token_BlankPassword(t *testing.T) {
	e := testServer(t)
	register(t, e, "blankpw@example.com", "testpass123", "")

	rec := doJSON(e, http.MethodPost, "/v1/users/token", "",
		`{"email":"blankpw@example.com","password":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestRouter_MeRequiresAuth(t *testing.T) {
	e := testServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/users/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/users/me", "garbage-token", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestRouter_MeMethodNotAllowed(t *testing.T) {
	e := testServer(t)
	register(t, e, "method@example.com", "testpass123", "")
	token := obtainToken(t, e, "method@example.com", "testpass123")

	rec := doJSON(e, http.MethodPost, "/v1/users/me", token, `{}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}

	// The method check happens in the router, before auth runs.
	rec = doJSON(e, http.MethodPost, "/v1/users/me", "", `{}`)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 without a token, got %d", rec.Code)
	}
}

func TestRouter_UpdateMe(t *testing.T) {
	e := testServer(t)
	register(t, e, "update@example.com", "testpass123", "Old name")
	token := obtainToken(t, e, "update@example.com", "testpass123")

	rec := doJSON(e, http.MethodPatch, "/v1/users/me", token, `{"name":"New name","password":"newpass456"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["name"] != "New name" {
		t.Fatalf("name not updated: %+v", resp)
	}

	// Old password no longer works; the new one does.
	bad := doJSON(e, http.MethodPost, "/v1/users/token", "",
		`{"email":"update@example.com","password":"testpass123"}`)
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("old password still accepted")
	}
	obtainToken(t, e, "update@example.com", "newpass456")
}

func TestRouter_RecipesRequireAuth(t *testing.T) {
	e := testServer(t)

	rec := doJSON(e, http.MethodGet, "/v1/recipes", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRouter_RecipeListScopedToCaller(t *testing.T) {
	e := testServer(t)
	register(t, e, "owner1@example.com", "testpass123", "")
	register(t, e, "owner2@example.com", "testpass123", "")
	token1 := obtainToken(t, e, "owner1@example.com", "testpass123")
	token2 := obtainToken(t, e, "owner2@example.com", "testpass123")

	rec := doJSON(e, http.MethodPost, "/v1/recipes", token1,
		`{"title":"Owner one dish","time_minutes":10,"price":"4.50"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create 1: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	rec = doJSON(e, http.MethodPost, "/v1/recipes", token2,
		`{"title":"Owner two dish","time_minutes":20,"price":"9.00"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create 2: expected 201, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/recipes", token1, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	var list []map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &list)
	if len(list) != 1 {
		t.Fatalf("expected exactly one recipe for owner 1, got %d", len(list))
	}
	if list[0]["title"] != "Owner one dish" {
		t.Fatalf("unexpected recipe in list: %+v", list[0])
	}
}

func TestRouter_ForeignRecipeLooksMissing(t *testing.T) {
	e := testServer(t)
	register(t, e, "victim@example.com", "testpass123", "")
	register(t, e, "intruder@example.com", "testpass123", "")
	victim := obtainToken(t, e, "victim@example.com", "testpass123")
	intruder := obtainToken(t, e, "intruder@example.com", "testpass123")

	rec := doJSON(e, http.MethodPost, "/v1/recipes", victim,
		`{"title":"Private dish","time_minutes":10,"price":"4.50"}`)
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := strconv.Itoa(int(created["id"].(float64)))

	// Not 403: existence must not leak.
	rec = doJSON(e, http.MethodGet, "/v1/recipes/"+id, intruder, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign recipe, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodDelete, "/v1/recipes/"+id, intruder, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign delete, got %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/v1/recipes/"+id, victim, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner must still see the recipe, got %d", rec.Code)
	}
}

func TestRouter_RecipeUpdateAndDelete(t *testing.T) {
	e := testServer(t)
	register(t, e, "crud@example.com", "testpass123", "")
	token := obtainToken(t, e, "crud@example.com", "testpass123")

	rec := doJSON(e, http.MethodPost, "/v1/recipes", token,
		`{"title":"Original","time_minutes":15,"price":"3.00","description":"before"}`)
	var created map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	id := strconv.Itoa(int(created["id"].(float64)))

	rec = doJSON(e, http.MethodPatch, "/v1/recipes/"+id, token, `{"title":"Patched"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var patched map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &patched)
	if patched["title"] != "Patched" || patched["description"] != "before" {
		t.Fatalf("patch must only change provided fields: %+v", patched)
	}

	rec = doJSON(e, http.MethodPut, "/v1/recipes/"+id, token,
		`{"title":"Replaced","time_minutes":1,"price":"0.50"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d", rec.Code)
	}
	var replaced map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &replaced)
	if _, hasDesc := replaced["description"]; hasDesc {
		t.Fatalf("put must clear the description: %+v", replaced)
	}

	rec = doJSON(e, http.MethodDelete, "/v1/recipes/"+id, token, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	rec = doJSON(e, http.MethodGet, "/v1/recipes/"+id, token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRouter_AdminRequiresStaff(t *testing.T) {
	e := testServer(t)
	register(t, e, "plain@example.com", "testpass123", "")
	token := obtainToken(t, e, "plain@example.com", "testpass123")

	rec := doJSON(e, http.MethodPost, "/v1/admin/users", token,
		`{"email":"newadmin@example.com","password":"test123"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-staff caller, got %d", rec.Code)
	}
}
