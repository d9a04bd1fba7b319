package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClaims struct {
	subject uuid.UUID
}

func (c *stubClaims) GetSubject() uuid.UUID { return c.subject }

type stubValidator struct {
	subject uuid.UUID
	err     error
	token   string
}

func (v *stubValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	v.token = tokenString
	if v.err != nil {
		return nil, v.err
	}
	return &stubClaims{subject: v.subject}, nil
}

func protectedHandler(t *testing.T, wantSubject uuid.UUID, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		subject, err := GetSubject(r)
		require.NoError(t, err)
		assert.Equal(t, wantSubject, subject)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_ValidToken(t *testing.T) {
	subject := uuid.New()
	validator := &stubValidator{subject: subject}
	called := false

	handler := Auth(validator)(protectedHandler(t, subject, &called))

	req := httptest.NewRequest("POST", "/roles/1/match", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, called)
	assert.Equal(t, "good-token", validator.token)
}

func TestAuth_CaseInsensitiveBearer(t *testing.T) {
	subject := uuid.New()
	called := false
	handler := Auth(&stubValidator{subject: subject})(protectedHandler(t, subject, &called))

	req := httptest.NewRequest("POST", "/roles/1/match", nil)
	req.Header.Set("Authorization", "bearer good-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, called)
}

func TestAuth_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic dXNlcjpwYXNz"},
		{"bearer without token", "Bearer"},
		{"too many parts", "Bearer one two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(&stubValidator{subject: uuid.New()})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				called = true
			}))

			req := httptest.NewRequest("POST", "/roles/1/match", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusUnauthorized, recorder.Code)
			assert.False(t, called)
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	validator := &stubValidator{err: errors.New("expired")}
	called := false
	handler := Auth(validator)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("POST", "/roles/1/match", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.False(t, called)
}

func TestGetSubject_MissingFromContext(t *testing.T) {
	req := httptest.NewRequest("GET", "/health", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)
}
