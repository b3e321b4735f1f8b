package handler

import (
	"Admin-Console/internal/app/console"
	"Admin-Console/internal/app/ds"
	"Admin-Console/internal/app/middleware"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type UserHandler struct {
	app *console.Console
}

func NewUserHandler(app *console.Console) *UserHandler {
	return &UserHandler{
		app: app,
	}
}

// Login godoc
// @Summary User login
// @Description Authenticate at the auth provider and return its access token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ds.LoginRequest true "Login credentials"
// @Success 200 {object} ds.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *UserHandler) Login(ctx *gin.Context) {
	var req ds.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	tokens, err := h.app.SignIn(ctx.Request.Context(), req)
	if err != nil {
		logrus.Error(err)
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	ctx.JSON(http.StatusOK, tokens)
}

// Logout godoc
// @Summary User logout
// @Description Sign out at the auth provider and invalidate the token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /auth/logout [post]
func (h *UserHandler) Logout(ctx *gin.Context) {
	token, exists := middleware.GetToken(ctx)
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	if err := h.app.SignOut(ctx.Request.Context(), token); err != nil {
		logrus.Error("Failed to invalidate token: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
