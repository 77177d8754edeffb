package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/adboard-go/ads"
	"github.com/user/adboard-go/apperror"
	"github.com/user/adboard-go/auth"
	"github.com/user/adboard-go/users"
)

// memStore backs both repositories so ad authors resolve against registered
// users, as the SQL joins do in production.
type memStore struct {
	nextUserID int
	users      map[int]*users.User
	nextAdID   int
	ads        map[int]*ads.Ad
}

func newMemStore() *memStore {
	return &memStore{
		nextUserID: 1,
		users:      map[int]*users.User{},
		nextAdID:   1,
		ads:        map[int]*ads.Ad{},
	}
}

type memUserRepo struct{ store *memStore }

func (r *memUserRepo) Create(_ context.Context, name, email, passwordHash string) (*users.User, error) {
	for _, u := range r.store.users {
		if u.Email == email {
			return nil, apperror.NewConflictError("User already exists", nil)
		}
	}
	user := &users.User{
		ID:           r.store.nextUserID,
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now(),
	}
	r.store.users[user.ID] = user
	r.store.nextUserID++
	return user, nil
}

func (r *memUserRepo) GetByID(_ context.Context, id int) (*users.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}
	return user, nil
}

type memAdRepo struct{ store *memStore }

func (r *memAdRepo) Create(_ context.Context, title, description string, authorID int) (*ads.Ad, error) {
	author, ok := r.store.users[authorID]
	if !ok {
		return nil, apperror.NewDatabaseError("author does not exist", nil)
	}
	ad := &ads.Ad{
		ID:          r.store.nextAdID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now(),
		AuthorID:    authorID,
		AuthorName:  author.Name,
	}
	r.store.ads[ad.ID] = ad
	r.store.nextAdID++
	return ad, nil
}

func (r *memAdRepo) GetByID(_ context.Context, id int) (*ads.Ad, error) {
	ad, ok := r.store.ads[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Advertisement not found", nil)
	}
	copied := *ad
	return &copied, nil
}

func (r *memAdRepo) Update(_ context.Context, id int, patch ads.Patch) (*ads.Ad, error) {
	ad, ok := r.store.ads[id]
	if !ok {
		return nil, apperror.NewNotFoundError("Advertisement not found", nil)
	}
	if patch.Title != nil {
		ad.Title = *patch.Title
	}
	if patch.Description != nil {
		ad.Description = *patch.Description
	}
	copied := *ad
	return &copied, nil
}

func (r *memAdRepo) Delete(_ context.Context, id int) error {
	if _, ok := r.store.ads[id]; !ok {
		return apperror.NewNotFoundError("Advertisement not found", nil)
	}
	delete(r.store.ads, id)
	return nil
}

func newTestServer(t *testing.T) chi.Router {
	t.Helper()
	store := newMemStore()
	tokens := auth.NewTokenService("test-secret", time.Hour)

	userHandlers := users.NewUserHandlers(users.NewUserService(&memUserRepo{store}, tokens))
	adHandlers := ads.NewAdHandlers(ads.NewAdService(&memAdRepo{store}))

	return newRouter(tokens, userHandlers, adHandlers)
}

func request(t *testing.T, router chi.Router, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, router chi.Router, name, email, password string) (int, string) {
	t.Helper()

	w := request(t, router, "POST", "/api/register",
		`{"name":"`+name+`","email":"`+email+`","password":"`+password+`"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reg users.RegisterResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	loginBody, err := json.Marshal(map[string]interface{}{"id": reg.ID, "password": password})
	require.NoError(t, err)
	w = request(t, router, "POST", "/api/login", string(loginBody), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tok users.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tok))

	return reg.ID, tok.Token
}

func TestFullLifecycle(t *testing.T) {
	router := newTestServer(t)

	userID, token := registerAndLogin(t, router, "alice", "alice@example.com", "secretpass")
	assert.Equal(t, 1, userID)

	w := request(t, router, "POST", "/api/ads",
		`{"title":"Bike for sale","description":"Lightly used city bike"}`, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var created ads.AdResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice", created.Author)

	w = request(t, router, "GET", "/api/ads/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var fetched ads.AdResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "alice", fetched.Author)

	w = request(t, router, "PATCH", "/api/ads/1", `{"title":"Bike sold"}`, token)
	require.Equal(t, http.StatusOK, w.Code)
	var patched ads.AdResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &patched))
	assert.Equal(t, "Bike sold", patched.Title)
	assert.Equal(t, "Lightly used city bike", patched.Description)

	w = request(t, router, "DELETE", "/api/ads/1", "", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"deleted"}`, w.Body.String())

	w = request(t, router, "GET", "/api/ads/1", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	router := newTestServer(t)

	w := request(t, router, "POST", "/api/register",
		`{"name":"al","email":"nope","password":"short"}`, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Error []apperror.FieldError `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	fields := make([]string, 0, len(resp.Error))
	for _, fe := range resp.Error {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fields)
}

func TestDuplicateEmailConflict(t *testing.T) {
	router := newTestServer(t)
	body := `{"name":"alice","email":"alice@example.com","password":"secretpass"}`

	w := request(t, router, "POST", "/api/register", body, "")
	require.Equal(t, http.StatusOK, w.Code)
	w = request(t, router, "POST", "/api/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMutationRequiresToken(t *testing.T) {
	router := newTestServer(t)
	_, token := registerAndLogin(t, router, "alice", "alice@example.com", "secretpass")
	w := request(t, router, "POST", "/api/ads",
		`{"title":"Bike for sale","description":"Lightly used city bike"}`, token)
	require.Equal(t, http.StatusOK, w.Code)

	for _, tc := range []struct{ method, path, body string }{
		{"POST", "/api/ads", `{"title":"Other ad","description":"Another description"}`},
		{"PATCH", "/api/ads/1", `{"title":"Hijacked"}`},
		{"DELETE", "/api/ads/1", ""},
	} {
		w := request(t, router, tc.method, tc.path, tc.body, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestForeignOwnerForbidden(t *testing.T) {
	router := newTestServer(t)
	_, aliceToken := registerAndLogin(t, router, "alice", "alice@example.com", "secretpass")
	_, bobToken := registerAndLogin(t, router, "bob", "bob@example.com", "hunter2hunter2")

	w := request(t, router, "POST", "/api/ads",
		`{"title":"Bike for sale","description":"Lightly used city bike"}`, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = request(t, router, "PATCH", "/api/ads/1", `{"title":"Hijacked"}`, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = request(t, router, "DELETE", "/api/ads/1", "", bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Still intact and untouched for the owner.
	w = request(t, router, "GET", "/api/ads/1", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ad ads.AdResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ad))
	assert.Equal(t, "Bike for sale", ad.Title)
}

func TestMissingResources(t *testing.T) {
	router := newTestServer(t)

	w := request(t, router, "GET", "/api/users/99", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found"}`, w.Body.String())

	w = request(t, router, "GET", "/api/ads/99", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Advertisement not found"}`, w.Body.String())
}

func TestLoginFailures(t *testing.T) {
	router := newTestServer(t)
	registerAndLogin(t, router, "alice", "alice@example.com", "secretpass")

	w := request(t, router, "POST", "/api/login", `{"id":1,"password":"wrongpass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = request(t, router, "POST", "/api/login", `{"id":42,"password":"secretpass"}`, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
