package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionIssuer_RoundTrip(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)

	s, err := issuer.Issue()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(s.ID, "guest_"))

	id, err := issuer.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)

	id, err = issuer.Verify("Bearer " + s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)
}

func TestSessionIssuer_Rejects(t *testing.T) {
	issuer := NewSessionIssuer("secret", time.Hour)
	s, err := issuer.Issue()
	require.NoError(t, err)

	_, err = NewSessionIssuer("other", time.Hour).Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewSessionIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = expired.Verify(s.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	admin := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "x", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	signed, err := admin.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = issuer.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	issuer := NewSessionIssuer("secret", time.Hour)
	r := gin.New()
	r.POST("/auth/session", CreateSession(issuer))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/auth/session", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var s Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))
	id, err := issuer.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.ID, id)
}
