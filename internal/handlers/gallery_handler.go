package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/LangApex/alumni-platform/internal/admin"
	"github.com/LangApex/alumni-platform/internal/guard"
)

const galleryPath = "/admin/gallery"

// GalleryHandler serves the gallery screens and the image preview.
type GalleryHandler struct {
	service *admin.Service
	preview ImageChecker
	logger  *zap.Logger
}

func NewGalleryHandler(service *admin.Service, preview ImageChecker, logger *zap.Logger) *GalleryHandler {
	return &GalleryHandler{
		service: service,
		preview: preview,
		logger:  logger.Named("gallery_handler"),
	}
}

func (h *GalleryHandler) List(c *gin.Context) {
	data := gin.H{"Title": "Gallery", "Banner": banner(c.Query("status"), "Gallery item")}

	items, err := h.service.ListGallery(c.Request.Context(), c.Query("deleted"))
	if err != nil {
		data["Error"] = "Failed to load gallery items. Please try again."
		render(c, http.StatusBadGateway, "gallery_list.html", data)
		return
	}

	data["Items"] = items
	render(c, http.StatusOK, "gallery_list.html", data)
}

func (h *GalleryHandler) New(c *gin.Context) {
	h.renderForm(c, http.StatusOK, "New gallery item", galleryPath, admin.GalleryForm{SubmissionID: uuid.NewString()}, "")
}

func (h *GalleryHandler) Create(c *gin.Context) {
	var form admin.GalleryForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form submission")
		return
	}

	in, err := form.Input()
	if err != nil {
		msg, _ := validationMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, "New gallery item", galleryPath, form, msg)
		return
	}

	_, err = h.service.CreateGalleryItem(c.Request.Context(), form.SubmissionID, in)
	switch {
	case errors.Is(err, guard.ErrDuplicate):
		c.Redirect(http.StatusSeeOther, galleryPath+"?status=duplicate")
	case err != nil:
		h.renderForm(c, http.StatusBadGateway, "New gallery item", galleryPath, form, "Failed to create gallery item. Please try again.")
	default:
		c.Redirect(http.StatusSeeOther, galleryPath+"?status=created")
	}
}

func (h *GalleryHandler) Edit(c *gin.Context) {
	id := c.Param("id")
	item, err := h.service.GetGalleryItem(c.Request.Context(), id)
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	h.renderForm(c, http.StatusOK, "Edit gallery item", galleryPath+"/"+id, admin.GalleryFormFrom(item), "")
}

func (h *GalleryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	action := galleryPath + "/" + id

	var form admin.GalleryForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Malformed form submission")
		return
	}

	in, err := form.Input()
	if err != nil {
		msg, _ := validationMessage(err)
		h.renderForm(c, http.StatusUnprocessableEntity, "Edit gallery item", action, form, msg)
		return
	}

	if _, err := h.service.UpdateGalleryItem(c.Request.Context(), id, in); err != nil {
		if isNotFound(err) {
			renderMessage(c, http.StatusNotFound, "Gallery item not found", "This gallery item no longer exists.", galleryPath)
			return
		}
		h.renderForm(c, http.StatusBadGateway, "Edit gallery item", action, form, "Failed to update gallery item. Please try again.")
		return
	}

	c.Redirect(http.StatusSeeOther, galleryPath+"?status=updated")
}

func (h *GalleryHandler) ConfirmDelete(c *gin.Context) {
	item, err := h.service.GetGalleryItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.loadFailed(c, err)
		return
	}
	render(c, http.StatusOK, "gallery_delete.html", gin.H{"Title": "Delete gallery item", "Item": item})
}

func (h *GalleryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if c.PostForm("confirm") != "yes" {
		c.Redirect(http.StatusSeeOther, galleryPath+"/"+url.PathEscape(id)+"/delete")
		return
	}

	if err := h.service.DeleteGalleryItem(c.Request.Context(), id); err != nil {
		renderMessage(c, http.StatusBadGateway, "Delete failed", "Failed to delete gallery item. Please try again.", galleryPath)
		return
	}

	c.Redirect(http.StatusSeeOther, galleryPath+"?deleted="+url.QueryEscape(id)+"&status=deleted")
}

// Preview reports whether the url query parameter is a displayable image.
// Any failure answers an empty object so the page clears the preview.
func (h *GalleryHandler) Preview(c *gin.Context) {
	result, err := h.preview.Check(c.Request.Context(), c.Query("url"))
	if err != nil {
		h.logger.Debug("Image preview unavailable", zap.String("url", c.Query("url")), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *GalleryHandler) loadFailed(c *gin.Context, err error) {
	if isNotFound(err) {
		renderMessage(c, http.StatusNotFound, "Gallery item not found", "This gallery item no longer exists.", galleryPath)
		return
	}
	renderMessage(c, http.StatusBadGateway, "Something went wrong", "Failed to load gallery item. Please try again.", galleryPath)
}

func (h *GalleryHandler) renderForm(c *gin.Context, status int, title, action string, form admin.GalleryForm, errMsg string) {
	render(c, status, "gallery_form.html", gin.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Error":  errMsg,
	})
}
