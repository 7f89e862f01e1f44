package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shubham7227/ecommerce/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-secret")

func newAuthRouter() *gin.Engine {
	r := gin.New()
	r.GET("/private", Auth(testSecret), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id.Hex()})
	})
	r.GET("/admin", Auth(testSecret), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func request(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	token, err := IssueToken(testSecret, user, time.Hour)
	require.NoError(t, err)

	w := request(newAuthRouter(), "/private", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), user.ID.Hex())
}

func TestAuthRejectsMissingAndMalformedTokens(t *testing.T) {
	r := newAuthRouter()

	assert.Equal(t, http.StatusUnauthorized, request(r, "/private", "").Code)
	assert.Equal(t, http.StatusUnauthorized, request(r, "/private", "not-a-jwt").Code)
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	token, err := IssueToken(testSecret, user, -time.Minute)
	require.NoError(t, err)

	w := request(newAuthRouter(), "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}
	token, err := IssueToken([]byte("other-secret"), user, time.Hour)
	require.NoError(t, err)

	w := request(newAuthRouter(), "/private", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	r := newAuthRouter()

	admin, err := IssueToken(testSecret, &models.User{ID: primitive.NewObjectID(), Role: models.RoleAdmin}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, request(r, "/admin", admin).Code)

	user, err := IssueToken(testSecret, &models.User{ID: primitive.NewObjectID(), Role: models.RoleUser}, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, request(r, "/admin", user).Code)
}
