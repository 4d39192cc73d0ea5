package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventcal/calendar-api/internal/application"
	"github.com/eventcal/calendar-api/internal/domain/entity"
	repo "github.com/eventcal/calendar-api/internal/domain/repository"
	"github.com/eventcal/calendar-api/internal/infrastructure/revocation"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/helpers"
	"github.com/eventcal/calendar-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	validation.Init()
}

// memUserRepo mirrors the uniqueness guarantees of the real database-backed
// repository for handler tests.
type memUserRepo struct {
	mu     sync.Mutex
	byID   map[string]*entity.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: make(map[string]*entity.User)}
}

func (m *memUserRepo) Create(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return repo.ErrDuplicateEmail
		}
		if existing.Username == u.Username {
			return repo.ErrDuplicateUsername
		}
	}
	m.nextID++
	u.ID = fmt.Sprintf("user-%d", m.nextID)
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserRepo) GetByID(id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (m *memUserRepo) GetAll() ([]*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entity.User, 0, len(m.byID))
	for _, u := range m.byID {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (m *memUserRepo) Update(u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUserRepo) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

var _ repo.UserRepository = (*memUserRepo)(nil)

func newAuthTestRouter() *gin.Engine {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	jwt := helpers.NewJWTManager("test-secret", 4*time.Hour)
	store := revocation.NewMemoryStore()
	authSvc := application.NewAuthService(newMemUserRepo(), helpers.NewPasswordHasher(bcrypt.MinCost), jwt, store, logger)
	userSvc := application.NewUserService(authSvc.Repo, logger)

	authH := NewAuthHandler(authSvc, logger)
	userH := NewUserHandler(authSvc, userSvc, logger)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/users", userH.Register)
	api.GET("/users/:userId", userH.Get)
	api.POST("/auth/login", authH.Login)

	guarded := api.Group("")
	guarded.Use(middleware.Auth(jwt, store))
	guarded.POST("/auth/logout", authH.Logout)
	guarded.PUT("/users/:userId", userH.Update)

	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			panic(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.HeaderAuthorization, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func tokenFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Data struct {
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.Data.AccessToken)
	return body.Data.AccessToken
}

func TestAuthFlow_RegisterLoginLogout(t *testing.T) {
	r := newAuthTestRouter()

	// Register issues a token right away.
	w := doJSON(r, http.MethodPost, "/api/users", "", gin.H{
		"username": "alice_01",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	regToken := tokenFrom(t, w)

	// Same email again is rejected.
	w = doJSON(r, http.MethodPost, "/api/users", "", gin.H{
		"username": "alice_02",
		"email":    "a@x.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "This email already exists!")

	// Wrong password is indistinguishable from an unknown email.
	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "wrong1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong email or password!")

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "b@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Wrong email or password!")

	// Login issues a second, distinct token.
	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	loginToken := tokenFrom(t, w)
	assert.NotEqual(t, regToken, loginToken)

	jwt := helpers.DefaultJWT()
	claims, err := jwt.ParseToken(loginToken)
	require.NoError(t, err)

	// The login token opens guarded routes.
	update := gin.H{"username": "alice_01", "address": "Main Street 5"}
	w = doJSON(r, http.MethodPut, "/api/users/"+claims.UserID, loginToken, update)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Logout returns 204 and revokes only the presented token.
	w = doJSON(r, http.MethodPost, "/api/auth/logout", loginToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doJSON(r, http.MethodPut, "/api/users/"+claims.UserID, loginToken, update)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid token!")

	// The registration token was not revoked and still works.
	w = doJSON(r, http.MethodPut, "/api/users/"+claims.UserID, regToken, update)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// Logging out twice is fine.
	w = doJSON(r, http.MethodPost, "/api/auth/logout", regToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = doJSON(r, http.MethodPost, "/api/auth/logout", regToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "a revoked token no longer passes the guard")
}

func TestRegister_ValidationErrors(t *testing.T) {
	r := newAuthTestRouter()

	// Password below the minimum length.
	w := doJSON(r, http.MethodPost, "/api/users", "", gin.H{
		"username": "alice_01",
		"email":    "a@x.com",
		"password": "abc",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "password")

	// Not an email address.
	w = doJSON(r, http.MethodPost, "/api/users", "", gin.H{
		"username": "alice_01",
		"email":    "not-an-email",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")

	// Missing fields.
	w = doJSON(r, http.MethodPost, "/api/users", "", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_ValidationErrors(t *testing.T) {
	r := newAuthTestRouter()

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
