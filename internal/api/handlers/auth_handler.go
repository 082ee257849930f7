package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propside/portal-go/internal/api/middleware"
	"github.com/propside/portal-go/internal/api/response"
	"github.com/propside/portal-go/internal/application"
	"github.com/propside/portal-go/internal/domain/user"
)

const tokenLifetime = 24 * time.Hour

type AuthHandler struct {
	users *application.UserService
}

func NewAuthHandler(users *application.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

// POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var input user.RegisterDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	u, err := h.users.Register(input)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var input user.LoginDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "Invalid input: " + err.Error()})
		return
	}

	u, err := h.users.Authenticate(input)
	if err != nil {
		writeError(c, err)
		return
	}

	token, err := middleware.GenerateToken(u, tokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.SetCookie("token", token, int(tokenLifetime.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, response.TokenResponse{
		Token:    token,
		UID:      u.UID,
		Username: u.Username,
		Role:     string(u.Role),
	})
}

// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, response.MessageResponse{Message: "Logged out"})
}
