package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/shecodes/community-api/internal/app/models/dto"
	"github.com/shecodes/community-api/internal/pkg/auth"
)

const testSecret = "test-secret"

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret, TokenIssuer: "shecodes.id"})
}

func mintToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	claims := &auth.Claims{
		UserID: 7,
		Email:  "ada@shecodes.id",
		Name:   "Ada Lovelace",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shecodes.id",
			ExpiresAt: auth.TokenExpiry(ttl),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authTestRouter(extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := NewAuthMiddleware(newTestJWTService())

	router := gin.New()
	handlers := append([]gin.HandlerFunc{m.JWTAuth()}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{
			"userID": id,
			"role":   c.GetString(ContextRole),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func decodeErrorCode(t *testing.T, body []byte) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Error)
	return resp.Error.Code
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, dto.ErrorCodeUnauthorized, decodeErrorCode(t, w.Body.Bytes()))
}

func TestJWTAuth_ValidToken(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "member", time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 7, resp["userID"])
	require.Equal(t, "member", resp["role"])
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "member", -time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, dto.ErrorCodeExpiredToken, decodeErrorCode(t, w.Body.Bytes()))
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, dto.ErrorCodeInvalidToken, decodeErrorCode(t, w.Body.Bytes()))
}

func TestJWTAuth_TokenFromQueryParameter(t *testing.T) {
	router := authTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+mintToken(t, "member", time.Hour), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired_AllowsMatchingRole(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService())
	router := authTestRouter(m.RoleRequired("admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "admin", time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRoleRequired_RejectsOtherRoles(t *testing.T) {
	m := NewAuthMiddleware(newTestJWTService())
	router := authTestRouter(m.RoleRequired("admin"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, "member", time.Hour))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, dto.ErrorCodeForbidden, decodeErrorCode(t, w.Body.Bytes()))
}
