package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func memberClaims(ttl time.Duration) *Claims {
	return &Claims{
		UserID: 7,
		Email:  "ada@shecodes.id",
		Name:   "Ada Lovelace",
		Role:   "member",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shecodes.id",
			ExpiresAt: TokenExpiry(ttl),
		},
	}
}

func TestValidateAndExtractClaims(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret, TokenIssuer: "shecodes.id"})
	token := signToken(t, memberClaims(time.Hour), testSecret)

	claims, err := svc.ValidateAndExtractClaims(token)
	require.NoError(t, err)
	require.Equal(t, int64(7), claims.UserID)
	require.Equal(t, "ada@shecodes.id", claims.Email)
	require.Equal(t, "member", claims.Role)
}

func TestValidateAndExtractClaims_Expired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret})
	token := signToken(t, memberClaims(-time.Hour), testSecret)

	_, err := svc.ValidateAndExtractClaims(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAndExtractClaims_WrongSecret(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret})
	token := signToken(t, memberClaims(time.Hour), "some-other-secret")

	_, err := svc.ValidateAndExtractClaims(token)
	require.Error(t, err)
}

func TestValidateAndExtractClaims_WrongIssuer(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret, TokenIssuer: "shecodes.id"})

	claims := memberClaims(time.Hour)
	claims.Issuer = "someone-else"
	token := signToken(t, claims, testSecret)

	_, err := svc.ValidateAndExtractClaims(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_IncompleteIdentity(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret})

	claims := memberClaims(time.Hour)
	claims.UserID = 0
	token := signToken(t, claims, testSecret)

	_, err := svc.ValidateAndExtractClaims(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAndExtractClaims_EmptyToken(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: testSecret})

	_, err := svc.ValidateAndExtractClaims("")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	// A raw token without the scheme prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	require.ErrorIs(t, err, ErrInvalidFormat)
}
