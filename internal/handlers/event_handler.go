package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/guard"
)

const eventsPath = "/admin/events"

// EventHandler serves the event screens.
type EventHandler struct {
	service *admin.Service
	loc     *time.Location
	logger  *zap.Logger
}

func NewEventHandler(service *admin.Service, loc *time.Location, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		loc:     loc,
		logger:  logger.Named("event_handler"),
	}
}

func (h *EventHandler) List(c *gin.Context) {
	data := gin.H{"Title": "Events", "Banner": banner(c.Query("status"), "Event")}

	events, err := h.service.ListEvents(c.Request.Context(), c.Query("deleted"))
	if err != nil {
		data["Error"] = "Failed to load events. Please try again."
		render(c, http.StatusBadGateway, "events_list.html", data)
		return
	}

	data["Events"] = events
	render(c, http.StatusOK, "events_list.html", data)
}

func (h *EventHandler) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "New event", eventsPath, admin.NewEventForm(uuid.NewString()), "")
}

func (h *EventHandler) Create(c *gin.Context) {
	var form admin.EventForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form submission")
		return
	}

	in, err := form.Input(h.loc)
	if err != nil {
		msg, _ := validationMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, "New event", eventsPath, form, msg)
		return
	}

	_, err = h.service.CreateEvent(c.Request.Context(), form.SubmissionID, in)
	switch {
	case errors.Is(err, guard.ErrDuplicate):
		c.Redirect(http.StatusSeeOther, eventsPath+"?status=duplicate")
	case err != nil:
		if msg, ok := validationMessage(err); ok {
			h.renderForm(c, http.StatusUnprocessableEntity, "New event", eventsPath, form, msg)
			return
		}
		h.renderForm(c, http.StatusBadGateway, "New event", eventsPath, form, "Failed to create event. Please try again.")
	default:
		c.Redirect(http.StatusSeeOther, eventsPath+"?status=created")
	}
}

func (h *EventHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	event, err := h.service.GetEvent(c.Request.Context(), id)
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, "Edit event", eventsPath+"/"+id, admin.EventFormFrom(event, h.loc), "")
}

func (h *EventHandler) Update(c *gin.Context) {
	id := c.Param("id")
	action := eventsPath + "/" + id

	var form admin.EventForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form submission")
		return
	}

	in, err := form.Input(h.loc)
	if err != nil {
		msg, _ := validationMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, "Edit event", action, form, msg)
		return
	}

	if _, err := h.service.UpdateEvent(c.Request.Context(), id, in); err != nil {
		if isNotFound(err) {
			renderMessage(c, http.StatusNotFound, "Event not found", "This event no longer exists.", eventsPath)
			return
		}
		h.renderForm(c, http.StatusBadGateway, "Edit event", action, form, "Failed to update event. Please try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, eventsPath+"?status=updated")
}

// ConfirmDelete asks the operator to confirm before anything is removed.
func (h *EventHandler) ConfirmDelete(c *gin.Context) {
	event, err := h.service.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	render(c, http.StatusOK, "event_delete.html", gin.H{"Title": "Delete event", "Event": event})
}

// Delete removes the event once confirmed and sends the operator back to a
// list that no longer shows it.
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if c.PostForm("confirm") != "yes" {
		c.Redirect(http.StatusSeeOther, eventsPath+"/"+url.PathEscape(id)+"/delete")
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		renderMessage(c, http.StatusBadGateway, "Delete failed", "Failed to delete event. Please try again.", eventsPath)
		return
	}

	c.Redirect(http.StatusSeeOther, eventsPath+"?deleted="+url.QueryEscape(id)+"&status=deleted")
}

func (h *EventHandler) loadFailed(c *gin.Context, err error) {
	if isNotFound(err) {
		renderMessage(c, http.StatusNotFound, "Event not found", "This event no longer exists.", eventsPath)
		return
	}
	renderMessage(c, http.StatusBadGateway, "Something went wrong", "Failed to load event. Please try again.", eventsPath)
}

func (h *EventHandler) renderForm(c *gin.Context, status int, title, action string, form admin.EventForm, errMsg string) {
	render(c, status, "event_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Error":  errMsg,
	})
}
