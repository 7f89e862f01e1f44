package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/shubham7227/ecommerce/apperrors"
	"github.com/shubham7227/ecommerce/middleware"
	"github.com/shubham7227/ecommerce/models"
	"github.com/shubham7227/ecommerce/repository"
)

const tokenTTL = 24 * time.Hour

type AuthController struct {
	users     repository.UserRepository
	jwtSecret []byte
}

func NewAuthController(users repository.UserRepository, jwtSecret []byte) *AuthController {
	return &AuthController{
		users:     users,
		jwtSecret: jwtSecret,
	}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user, err := ac.users.Create(c.Request.Context(), &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     models.RoleUser,
	})
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

// Login verifies credentials and responds with the user and a signed access
// token the client persists.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	user, err := ac.users.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": apperrors.ErrInvalidCredentials.Message})
		return
	}

	token, err := middleware.IssueToken(ac.jwtSecret, user, tokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user, "accessToken": token})
}

// Me resolves the authenticated user from the bearer token.
func (ac *AuthController) Me(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := ac.users.FindByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(apperrors.StatusOf(err), gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}
