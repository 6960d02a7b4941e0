package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"TOURMAP_BACK-END/internal/dto"
	"TOURMAP_BACK-END/internal/memstore"
	"TOURMAP_BACK-END/internal/middleware"
)

func TestUpdateUsername(t *testing.T) {
	store := memstore.New()
	h := NewDashboardHandler(store.Users(), testJWT, nopLogger())
	user := seedUser(t, store, "a@b.com", "password123", false, true)

	rec := serve(t, h.UpdateUsername, call{
		method: http.MethodPost, target: "/userDashboard/update-username",
		body: map[string]any{"username": "  wanderer "}, claims: claimsFor(user),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[dto.UpdateUsernameResponse](t, rec)
	claims, err := middleware.ValidateToken(resp.Token, testJWT)
	require.NoError(t, err)
	assert.Equal(t, "wanderer", claims.Username)
	assert.True(t, claims.Verified)

	stored, err := store.Users().FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "wanderer", stored.Username)
}

func TestUpdateUsername_UnknownUser(t *testing.T) {
	store := memstore.New()
	h := NewDashboardHandler(store.Users(), testJWT, nopLogger())

	rec := serve(t, h.UpdateUsername, call{
		method: http.MethodPost, target: "/userDashboard/update-username",
		body: map[string]any{"username": "wanderer"}, claims: strangerClaims(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdatePassword(t *testing.T) {
	store := memstore.New()
	h := NewDashboardHandler(store.Users(), testJWT, nopLogger())
	user := seedUser(t, store, "a@b.com", "password123", false, false)

	tests := []struct {
		name    string
		current string
		next    string
		want    int
	}{
		{name: "wrong current password", current: "password999", next: "newpassword1", want: http.StatusUnauthorized},
		{name: "new password too short", current: "password123", next: "short", want: http.StatusBadRequest},
		{name: "success", current: "password123", next: "newpassword1", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, h.UpdatePassword, call{
				method: http.MethodPost, target: "/userDashboard/update-password",
				body:   map[string]any{"currentPassword": tt.current, "newPassword": tt.next},
				claims: claimsFor(user),
			})
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	stored, err := store.Users().FindByID(t.Context(), user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newpassword1")))
}
