package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteErrorResponse(rec, http.StatusConflict, "Email already in use")

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(409), body["error"]["code"])
	assert.Equal(t, "Email already in use", body["error"]["message"])
}

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
}

func TestDecodeJSONRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantErr    bool
		wantSubstr string
	}{
		{name: "valid", body: `{"email":"a@b.com","rating":3}`},
		{name: "malformed", body: `{"email":`, wantErr: true, wantSubstr: "Invalid request body"},
		{name: "unknown field", body: `{"email":"a@b.com","rating":3,"extra":1}`, wantErr: true, wantSubstr: "unknown field"},
		{name: "bad email", body: `{"email":"nope","rating":3}`, wantErr: true, wantSubstr: "email must be a valid email"},
		{name: "rating out of range", body: `{"email":"a@b.com","rating":6}`, wantErr: true, wantSubstr: "rating must be at most 5"},
		{name: "missing", body: `{}`, wantErr: true, wantSubstr: "email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst sampleRequest
			err := DecodeJSONRequest(rec, req, &dst)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, "a@b.com", dst.Email)
				return
			}
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantSubstr)
		})
	}
}

type trimmedRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (r *trimmedRequest) Normalize() { r.Email = strings.TrimSpace(r.Email) }

func TestDecodeJSONRequest_NormalizesBeforeValidating(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"  a@b.com "}`))

	var dst trimmedRequest
	require.NoError(t, DecodeJSONRequest(rec, req, &dst))
	assert.Equal(t, "a@b.com", dst.Email)
}
