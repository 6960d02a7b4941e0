package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/memstore"
	"TOURMAP_BACK-END/internal/middleware"
)

func newAuthHandler() (*AuthHandler, *memstore.Store) {
	store := memstore.New()
	return NewAuthHandler(store.Users(), testJWT, nopLogger()), store
}

func TestRegister(t *testing.T) {
	h, _ := newAuthHandler()

	rec := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: map[string]any{
		"email": "a@b.com", "password": "password123", "username": "u1",
	}})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	resp := decode[dto.RegisterResponse](t, rec)
	assert.Equal(t, "User registered successfully", resp.Message)
	assert.Equal(t, "u1", resp.User.Username)
	assert.Equal(t, "a@b.com", resp.User.Email)
	assert.False(t, resp.User.IsAdmin)
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	h, _ := newAuthHandler()
	body := map[string]any{"email": "a@b.com", "password": "password123"}

	first := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: body})
	require.Equal(t, http.StatusCreated, first.Code)

	second := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: map[string]any{
		"email": "A@B.com ", "password": "password123",
	}})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Equal(t, "Email already in use", errorMessage(t, second))
}

func TestRegister_StoresNormalizedEmail(t *testing.T) {
	h, store := newAuthHandler()

	rec := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: map[string]any{
		"email": " C@D.com", "password": "password123",
	}})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "c@d.com", decode[dto.RegisterResponse](t, rec).User.Email)

	_, err := store.Users().FindByEmail(t.Context(), "c@d.com")
	assert.NoError(t, err)
}

func TestRegister_DefaultsUsernameFromEmail(t *testing.T) {
	h, store := newAuthHandler()

	rec := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: map[string]any{
		"email": "traveller@example.com", "password": "password123",
	}})
	require.Equal(t, http.StatusCreated, rec.Code)

	users, err := store.Users().List(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "traveller", users[0].Username)
}

func TestRegister_BadRequest(t *testing.T) {
	h, _ := newAuthHandler()

	tests := []struct {
		name string
		body any
		want string
	}{
		{name: "malformed json", body: `{"email":`, want: "Invalid request body"},
		{name: "unknown field", body: `{"email":"a@b.com","password":"password123","role":"x"}`, want: "Invalid request body"},
		{name: "bad email", body: map[string]any{"email": "nope", "password": "password123"}, want: "email must be a valid email"},
		{name: "short password", body: map[string]any{"email": "a@b.com", "password": "short"}, want: "password"},
		{name: "missing email", body: map[string]any{"password": "password123"}, want: "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.Register, call{method: http.MethodPost, target: "/auth", body: tt.body})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, errorMessage(t, rec), tt.want)
		})
	}
}

func TestLogin(t *testing.T) {
	h, store := newAuthHandler()
	user := seedUser(t, store, "a@b.com", "password123", true, true)

	tests := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{name: "valid", email: "a@b.com", password: "password123", want: http.StatusOK},
		{name: "case insensitive email", email: "A@B.COM", password: "password123", want: http.StatusOK},
		{name: "padded email", email: "  a@b.com ", password: "password123", want: http.StatusOK},
		{name: "wrong password", email: "a@b.com", password: "password124", want: http.StatusUnauthorized},
		{name: "unknown email", email: "nobody@b.com", password: "password123", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.Login, call{method: http.MethodPost, target: "/auth/tokens", body: map[string]any{
				"email": tt.email, "password": tt.password,
			}})
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
			if tt.want != http.StatusOK {
				return
			}

			resp := decode[dto.TokenResponse](t, rec)
			require.NotEmpty(t, resp.Token)
			claims, err := middleware.ValidateToken(resp.Token, testJWT)
			require.NoError(t, err)
			assert.Equal(t, user.ID, claims.ID)
			assert.True(t, claims.IsAdmin)
			assert.True(t, claims.Verified)
		})
	}
}

func TestProtectedEndpoints(t *testing.T) {
	h, store := newAuthHandler()
	admin := seedUser(t, store, "admin@b.com", "password123", true, false)

	rec := serve(t, h.Protected, call{method: http.MethodGet, target: "/test/protected", claims: claimsFor(admin)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, admin.ID.String(), decode[dto.ProtectedResponse](t, rec).UserID)

	rec = serve(t, h.AdminProtected, call{method: http.MethodGet, target: "/test/adminprotected", claims: claimsFor(admin)})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.ProtectedResponse](t, rec).IsAdmin)

	rec = serve(t, h.Protected, call{method: http.MethodGet, target: "/test/protected"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
