package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/LangApex/alumni-platform/internal/clients"
	"github.com/LangApex/alumni-platform/internal/middleware"
	"github.com/LangApex/alumni-platform/internal/models"
	"github.com/LangApex/alumni-platform/internal/preview"
	"github.com/LangApex/alumni-platform/internal/session"
)

// Sessions is the session manager as the handlers use it.
type Sessions interface {
	Login(ctx context.Context, username, password string) (string, *session.Claims, error)
	Validate(ctx context.Context, token string) (*session.Claims, error)
	Logout(ctx context.Context, token string) error
}

// ImageChecker sniffs gallery image URLs for the live preview.
type ImageChecker interface {
	Check(ctx context.Context, rawURL string) (preview.Result, error)
}

// banner returns the list page message for the status query parameter.
func banner(status, noun string) string {
	switch status {
	case "created", "updated", "deleted":
		return noun + " " + status
	case "duplicate":
		return "That submission was already saved"
	}
	return ""
}

// render executes a page template with the fields every page expects.
func render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = "Admin"
	}
	if claims, ok := middleware.Claims(c); ok {
		data["User"] = claims.Subject
	}
	c.HTML(status, name, data)
}

// renderMessage shows a standalone message page.
func renderMessage(c *gin.Context, status int, title, message, back string) {
	render(c, status, "message.html", gin.H{
		"Title":   title,
		"Message": message,
		"Back":    back,
	})
}

func validationMessage(err error) (string, bool) {
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	return "", false
}

func isNotFound(err error) bool {
	return errors.Is(err, clients.ErrNotFound)
}
