package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/middleware"
	"github.com/LangApex/alumni-platform/internal/session"
)

const dashboardPath = "/admin/dashboard"

type AuthHandler struct {
	sessions     Sessions
	cookieSecure bool
	logger       *zap.Logger
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

func NewAuthHandler(sessions Sessions, cookieSecure bool, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:     sessions,
		cookieSecure: cookieSecure,
		logger:       logger.Named("auth_handler"),
	}
}

// LoginPage shows the login form, or sends an already authenticated
// operator to the dashboard.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if token := middleware.Token(c); token != "" {
		claims, err := h.sessions.Validate(c.Request.Context(), token)
		if err == nil && claims.Role == session.RoleAdmin {
			c.Redirect(http.StatusSeeOther, dashboardPath)
			return
		}
	}
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log in", "Username": ""})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	token, claims, err := h.sessions.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		status, message := http.StatusUnauthorized, "Invalid username or password"
		if !errors.Is(err, session.ErrInvalidCredentials) {
			h.logger.Error("Login failed", zap.Error(err))
			status, message = http.StatusInternalServerError, "Login failed. Please try again."
		}
		render(c, status, "login.html", gin.H{"Title": "Log in", "Username": username, "Error": message})
		return
	}

	h.setCookie(c, token, claims)
	c.Redirect(http.StatusSeeOther, dashboardPath)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if token := middleware.Token(c); token != "" {
		if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
			h.logger.Error("Logout failed", zap.Error(err))
		}
	}
	h.clearCookie(c)
	c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}

func (h *AuthHandler) APILogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, claims, err := h.sessions.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time})
}

func (h *AuthHandler) APILogout(c *gin.Context) {
	token := middleware.Token(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	if err := h.sessions.Logout(c.Request.Context(), token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}
	h.clearCookie(c)
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) setCookie(c *gin.Context, token string, claims *session.Claims) {
	maxAge := int(time.Until(claims.ExpiresAt.Time).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, token, maxAge, "/", "", h.cookieSecure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.CookieName, "", -1, "/", "", h.cookieSecure, true)
}
