package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"molecule-ledger/internal/handler"
	"molecule-ledger/internal/middleware"
	"molecule-ledger/internal/repository"
	"molecule-ledger/internal/services"
	"molecule-ledger/pkg/password"
	"molecule-ledger/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := token.NewIssuer([]byte("handler-test-signing-secret"))
	require.NoError(t, err)

	svc := services.NewAuthService(
		repository.NewMemoryAccountRepository(),
		password.NewBcryptHasher(bcrypt.MinCost),
		issuer,
	)
	h := handler.NewAuthHandler(svc)

	r := gin.New()
	auth := r.Group("/v1/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.GET("/me", middleware.AuthMiddleware(svc), h.Me)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestRegister_Created(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)

	require.Equal(t, http.StatusCreated, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var acc struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &acc))
	assert.EqualValues(t, 1, acc.ID)
	assert.Equal(t, "a@x.com", acc.Email)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRegister_Duplicate(t *testing.T) {
	r := setupRouter(t)

	first := doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)
	require.Equal(t, http.StatusConflict, second.Code)

	env := decodeEnvelope(t, second)
	assert.False(t, env.Success)
	assert.Equal(t, "DUPLICATE_ACCOUNT", env.Code)
}

func TestRegister_MissingFields(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com"}, nil)

	require.Equal(t, http.StatusBadRequest, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, "INVALID_REQUEST", env.Code)
}

func TestLogin_ReturnsBearerToken(t *testing.T) {
	r := setupRouter(t)

	doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)

	w := doJSON(t, r, http.MethodPost, "/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))
	assert.NotEmpty(t, tok.AccessToken)
	assert.Equal(t, "bearer", tok.TokenType)
	assert.Positive(t, tok.ExpiresIn)
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	r := setupRouter(t)

	doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)

	unknown := doJSON(t, r, http.MethodPost, "/v1/auth/login",
		gin.H{"email": "ghost@x.com", "password": "password1"}, nil)
	wrongPw := doJSON(t, r, http.MethodPost, "/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "wrong-password"}, nil)

	require.Equal(t, http.StatusUnauthorized, unknown.Code)
	require.Equal(t, http.StatusUnauthorized, wrongPw.Code)
	// Same status, same body: no account-existence oracle.
	assert.Equal(t, unknown.Body.String(), wrongPw.Body.String())
}

func TestMe_WithValidToken(t *testing.T) {
	r := setupRouter(t)

	doJSON(t, r, http.MethodPost, "/v1/auth/register",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)

	login := doJSON(t, r, http.MethodPost, "/v1/auth/login",
		gin.H{"email": "a@x.com", "password": "password1"}, nil)
	env := decodeEnvelope(t, login)

	var tok struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &tok))

	w := doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", tok.AccessToken),
	})
	require.Equal(t, http.StatusOK, w.Code)

	me := decodeEnvelope(t, w)
	var acc struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(me.Data, &acc))
	assert.EqualValues(t, 1, acc.ID)
	assert.Equal(t, "a@x.com", acc.Email)
}

func TestMe_RejectsMissingAndTamperedTokens(t *testing.T) {
	r := setupRouter(t)

	noToken := doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, noToken.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, noToken).Code)

	badToken := doJSON(t, r, http.MethodGet, "/v1/auth/me", nil, map[string]string{
		"Authorization": "Bearer not.a.jwt",
	})
	require.Equal(t, http.StatusUnauthorized, badToken.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, badToken).Code)
}
