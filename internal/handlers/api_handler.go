package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/guard"
	"github.com/LangApex/alumni-platform/internal/models"
)

// IdempotencyHeader carries the submission key of API creates.
const IdempotencyHeader = "Idempotency-Key"

// APIHandler serves the admin JSON API.
type APIHandler struct {
	service *admin.Service
	logger  *zap.Logger
}

func NewAPIHandler(service *admin.Service, logger *zap.Logger) *APIHandler {
	return &APIHandler{service: service, logger: logger.Named("api_handler")}
}

func (h *APIHandler) ListEvents(c *gin.Context) {
	events, err := h.service.ListEvents(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (h *APIHandler) CreateEvent(c *gin.Context) {
	var in models.EventInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.CreateEvent(c.Request.Context(), c.GetHeader(IdempotencyHeader), in)
	if err != nil {
		h.writeError(c, err, "Failed to create event", "Event not found")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *APIHandler) GetEvent(c *gin.Context) {
	event, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to retrieve event", "Event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateEvent applies a partial update: fields absent from the body keep
// their stored values and the merged record is validated as a whole.
func (h *APIHandler) UpdateEvent(c *gin.Context) {
	id := c.Param("id")
	current, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to retrieve event", "Event not found")
		return
	}

	in := current.Input()
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.service.UpdateEvent(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err, "Failed to update event", "Event not found")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *APIHandler) DeleteEvent(c *gin.Context) {
	if err := h.service.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete event", "Event not found")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *APIHandler) ListGallery(c *gin.Context) {
	items, err := h.service.ListGallery(c.Request.Context(), "")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve gallery items"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"gallery": items})
}

func (h *APIHandler) CreateGalleryItem(c *gin.Context) {
	var in models.GalleryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.CreateGalleryItem(c.Request.Context(), c.GetHeader(IdempotencyHeader), in)
	if err != nil {
		h.writeError(c, err, "Failed to create gallery item", "Gallery item not found")
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *APIHandler) GetGalleryItem(c *gin.Context) {
	item, err := h.service.GetGalleryItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to retrieve gallery item", "Gallery item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) UpdateGalleryItem(c *gin.Context) {
	id := c.Param("id")
	current, err := h.service.GetGalleryItem(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to retrieve gallery item", "Gallery item not found")
		return
	}

	in := current.Input()
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.service.UpdateGalleryItem(c.Request.Context(), id, in)
	if err != nil {
		h.writeError(c, err, "Failed to update gallery item", "Gallery item not found")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *APIHandler) DeleteGalleryItem(c *gin.Context) {
	if err := h.service.DeleteGalleryItem(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err, "Failed to delete gallery item", "Gallery item not found")
		return
	}
	c.Status(http.StatusNoContent)
}

// writeError maps service errors onto API responses. Store failures get a
// generic message.
func (h *APIHandler) writeError(c *gin.Context, err error, failure, notFound string) {
	if msg, ok := validationMessage(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	switch {
	case errors.Is(err, guard.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate submission"})
	case isNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
	default:
		h.logger.Warn("Record store request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": failure})
	}
}
