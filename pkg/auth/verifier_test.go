package auth_test

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-hr-dashboard-backend/pkg/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-token-with-at-least-32-characters"

func signHS256(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestVerifierHS256(t *testing.T) {
	v := auth.NewVerifier(testSecret, nil)

	t.Run("Should return subject of a valid token", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		}, testSecret)

		sub, err := v.Subject(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", sub)
	})

	t.Run("Should reject an expired token", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		}, testSecret)

		_, err := v.Subject(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"sub": "user-1"}, "another-secret-another-secret-another")

		_, err := v.Subject(token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("Should reject a token without subject", func(t *testing.T) {
		token := signHS256(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}, testSecret)

		_, err := v.Subject(token)
		assert.ErrorIs(t, err, auth.ErrMissingSubject)
	})

	t.Run("Should reject an empty token", func(t *testing.T) {
		_, err := v.Subject("")
		assert.ErrorIs(t, err, auth.ErrMissingToken)
	})

	t.Run("Should reject garbage", func(t *testing.T) {
		_, err := v.Subject("not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}

func TestVerifierRejectsHS256WithoutSecret(t *testing.T) {
	v := auth.NewVerifier("", nil)
	token := signHS256(t, jwt.MapClaims{"sub": "user-1"}, testSecret)

	_, err := v.Subject(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestVerifierRS256ViaJWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(auth.JWKS{Keys: []auth.JSONWebKey{{
			Kid: "key-1",
			Kty: "RSA",
			Alg: "RS256",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(key.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.E)).Bytes()),
		}}})
	}))
	defer srv.Close()

	v := auth.NewVerifier("", auth.NewProvider(srv.URL))

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "admin-7",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = "key-1"
	signed, err := token.SignedString(key)
	require.NoError(t, err)

	sub, err := v.Subject(signed)
	require.NoError(t, err)
	assert.Equal(t, "admin-7", sub)

	unknown := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{"sub": "admin-7"})
	unknown.Header["kid"] = "key-2"
	signedUnknown, err := unknown.SignedString(key)
	require.NoError(t, err)

	_, err = v.Subject(signedUnknown)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
