package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"TOURMAP_BACK-END/internal/config"
	"TOURMAP_BACK-END/internal/memstore"
	"TOURMAP_BACK-END/internal/middleware"
	"TOURMAP_BACK-END/internal/models"
	"TOURMAP_BACK-END/internal/utils"
)

var (
	_ UserStore      = (*memstore.Users)(nil)
	_ HighlightStore = (*memstore.Highlights)(nil)
	_ TourStore      = (*memstore.Tours)(nil)
	_ FeedbackStore  = (*memstore.Feedbacks)(nil)
)

var testJWT = &config.JWTConfig{Secret: "test-secret", AccessTokenTTL: time.Hour}

type call struct {
	method string
	target string
	body   any
	claims *middleware.JWTClaims
	params map[string]string
}

func serve(t *testing.T, h http.HandlerFunc, c call) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	switch b := c.body.(type) {
	case nil:
	case string:
		body.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&body).Encode(b))
	}

	req := httptest.NewRequest(c.method, c.target, &body)
	req.Header.Set("Content-Type", "application/json")

	rctx := chi.NewRouteContext()
	for k, v := range c.params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if c.claims != nil {
		ctx = middleware.WithClaims(ctx, c.claims)
	}

	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body := decode[utils.ErrorBody](t, rec)
	require.Equal(t, rec.Code, body.Error.Code)
	return body.Error.Message
}

func seedUser(t *testing.T, store *memstore.Store, email, password string, admin, verified bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	u := &models.User{Username: "u-" + email, Email: email, PasswordHash: string(hash), IsAdmin: admin, Verified: verified}
	require.NoError(t, store.Users().Create(context.Background(), u))
	return u
}

func claimsFor(u *models.User) *middleware.JWTClaims {
	return &middleware.JWTClaims{ID: u.ID, Email: u.Email, IsAdmin: u.IsAdmin, Verified: u.Verified, Username: u.Username}
}

func strangerClaims() *middleware.JWTClaims {
	return &middleware.JWTClaims{ID: uuid.New(), Email: "ghost@example.com"}
}

func seedHighlight(t *testing.T, store *memstore.Store, name string, approved bool, lat, lon *float64) *models.Highlight {
	t.Helper()
	h := &models.Highlight{
		Name:        name,
		Description: name + " description",
		Category:    models.CategoryViewpoint,
		Latitude:    lat,
		Longitude:   lon,
		IsApproved:  approved,
	}
	require.NoError(t, store.Highlights().Create(context.Background(), h, nil))
	return h
}

func ptr[T any](v T) *T { return &v }

func nopLogger() *zap.Logger { return zap.NewNop() }
