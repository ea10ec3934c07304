package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akshat/recipe-box/backend/internal/models"
	"github.com/akshat/recipe-box/backend/internal/store"
)

// fakeUserStore is an in-memory UserStore keyed by email.
type fakeUserStore struct {
	users map[string]*models.User
	next  int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*models.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, username, email, hashedPw string) (*models.User, error) {
	if _, ok := f.users[email]; ok {
		return nil, store.ErrDuplicate
	}
	f.next++
	u := &models.User{
		ID:       fmt.Sprintf("user-%d", f.next),
		Username: username,
		Email:    email,
		Password: hashedPw,
	}
	f.users[email] = u
	return &models.User{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return nil, store.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func (f *fakeUserStore) ListUsers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		out = append(out, models.User{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	return out, nil
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegister(t *testing.T) {
	h := NewHandler(newFakeUserStore(), NewTokenManager("secret"))

	rec := postJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Username: "a", Email: "a@x.com", Password: "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "a", got["username"])
	assert.Equal(t, "a@x.com", got["email"])
	assert.NotContains(t, got, "password")
}

func TestRegister_MissingFields(t *testing.T) {
	h := NewHandler(newFakeUserStore(), NewTokenManager("secret"))

	rec := postJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Username: "a", Email: "a@x.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h := NewHandler(newFakeUserStore(), NewTokenManager("secret"))

	req := models.RegisterRequest{Username: "a", Email: "a@x.com", Password: "pw"}
	rec := postJSON(t, h.Register, "/api/auth/register", req)
	require.Equal(t, http.StatusCreated, rec.Code)

	req.Username = "b"
	rec = postJSON(t, h.Register, "/api/auth/register", req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	users := newFakeUserStore()
	tokens := NewTokenManager("secret")
	h := NewHandler(users, tokens)

	rec := postJSON(t, h.Register, "/api/auth/register", models.RegisterRequest{
		Username: "a", Email: "a@x.com", Password: "pw",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email: "a@x.com", Password: "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// The token must decode back to the created user's id.
	userID, err := tokens.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	// The password hash must not leak through the response.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_WrongPassword(t *testing.T) {
	users := newFakeUserStore()
	h := NewHandler(users, NewTokenManager("secret"))

	hashed, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.CreateUser(context.Background(), "a", "a@x.com", string(hashed))
	require.NoError(t, err)

	rec := postJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email: "a@x.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogin_UnknownEmail(t *testing.T) {
	h := NewHandler(newFakeUserStore(), NewTokenManager("secret"))

	rec := postJSON(t, h.Login, "/api/auth/login", models.LoginRequest{
		Email: "nobody@x.com", Password: "pw",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListUsers_ExcludesPassword(t *testing.T) {
	users := newFakeUserStore()
	h := NewHandler(users, NewTokenManager("secret"))

	hashed, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = users.CreateUser(context.Background(), "a", "a@x.com", string(hashed))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users", http.NoBody)
	rec := httptest.NewRecorder()
	h.ListUsers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.Contains(t, rec.Body.String(), "a@x.com")
}
