package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/models"
)

// PublicEvent is an event as the public site sees it. The zoom link is not
// part of it.
type PublicEvent struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Guest     string             `json:"guest"`
	Type      string             `json:"type"`
	Attendees int                `json:"attendees"`
	Format    models.EventFormat `json:"format"`
	Time      time.Time          `json:"time"`
	Details   string             `json:"details"`
	Location  string             `json:"location"`
}

func publicEvents(events []models.Event) []PublicEvent {
	out := make([]PublicEvent, 0, len(events))
	for _, e := range events {
		out = append(out, PublicEvent{
			ID:        e.ID,
			Name:      e.Name,
			Guest:     e.Guest,
			Type:      e.Type,
			Attendees: e.Attendees,
			Format:    e.Format,
			Time:      e.Time,
			Details:   e.Details,
			Location:  e.LocationLabel(),
		})
	}
	return out
}

// PublicHandler serves the read-only feeds of the public site.
type PublicHandler struct {
	service *admin.Service
	logger  *zap.Logger
}

func NewPublicHandler(service *admin.Service, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{service: service, logger: logger.Named("public_handler")}
}

func (h *PublicHandler) Events(c *gin.Context) {
	upcoming, past, err := h.service.PublicEvents(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load public events", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"upcoming": publicEvents(upcoming),
		"past":     publicEvents(past),
	})
}

func (h *PublicHandler) Gallery(c *gin.Context) {
	items, err := h.service.ListGallery(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve gallery items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gallery": items})
}
