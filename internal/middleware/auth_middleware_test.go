package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fitbook/fitbook/internal/models"
	"github.com/fitbook/fitbook/internal/repository"
	"github.com/fitbook/fitbook/internal/testutil"
	"github.com/fitbook/fitbook/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const authTestSecret = "auth-middleware-test-secret"

func setupAuthRouter(t *testing.T) (*gin.Engine, *testutil.TestDatabase) {
	gin.SetMode(gin.TestMode)

	testDB := testutil.SetupTestDatabase(t)
	userRepo := repository.NewUserRepository(testDB.DB)

	router := gin.New()
	router.GET("/protected", AuthMiddleware(authTestSecret, userRepo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})
	router.GET("/coach-only", AuthMiddleware(authTestSecret, userRepo), CoachMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success"})
	})

	return router, testDB
}

func seedAuthUser(t *testing.T, testDB *testutil.TestDatabase, role models.Role) *models.User {
	user, err := testutil.CreateTestUser("authuser", uuid.New().String()+"@example.com", "Test1234", role)
	require.NoError(t, err)
	require.NoError(t, testDB.DB.Create(user).Error)
	return user
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "請先登入")
}

func TestAuthMiddleware_NotBearerFormat(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "無效的 token")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	user := seedAuthUser(t, testDB, models.RoleUser)
	token, err := utils.GenerateToken(user.ID, authTestSecret, -1*time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token 已過期")
}

func TestAuthMiddleware_UserNoLongerExists(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	// Valid token for an id with no user row behind it
	token, err := utils.GenerateToken(uuid.New(), authTestSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "無效的 token")
}

func TestAuthMiddleware_Success(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	user := seedAuthUser(t, testDB, models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", testutil.BearerToken(t, user.ID, authTestSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCoachMiddleware_RejectsRegularUser(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	user := seedAuthUser(t, testDB, models.RoleUser)

	req := httptest.NewRequest(http.MethodGet, "/coach-only", nil)
	req.Header.Set("Authorization", testutil.BearerToken(t, user.ID, authTestSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "使用者尚未成為教練")
}

func TestCoachMiddleware_AllowsCoach(t *testing.T) {
	router, testDB := setupAuthRouter(t)
	defer testDB.Teardown(t)

	coach := seedAuthUser(t, testDB, models.RoleCoach)

	req := httptest.NewRequest(http.MethodGet, "/coach-only", nil)
	req.Header.Set("Authorization", testutil.BearerToken(t, coach.ID, authTestSecret))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
