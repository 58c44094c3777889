package handlers

import (
	"mime/multipart"
	"strconv"

	"github.com/marti-georgiev/camprating/helper"
	"github.com/marti-georgiev/camprating/middleware"
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/services"

	"github.com/gin-gonic/gin"
)

type CampPlaceHandler struct {
	campPlaceService services.CampPlaceService
	Helper           *helper.HTTPHelper
}

func NewCampPlaceHandler(campPlaceService services.CampPlaceService) *CampPlaceHandler {
	return &CampPlaceHandler{
		campPlaceService: campPlaceService,
		Helper:           helper.NewHTTPHelper(),
	}
}

func (h *CampPlaceHandler) List(c *gin.Context) {
	campPlaces, err := h.campPlaceService.List()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", campPlaces)
}

func (h *CampPlaceHandler) Details(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid camp place ID", h.Helper.EmptyJsonMap())
		return
	}

	campPlace, err := h.campPlaceService.Details(id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", campPlace)
}

func (h *CampPlaceHandler) Create(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CampPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	campPlace, err := h.campPlaceService.Create(c.Request.Context(), req, formPhoto(c), ident)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Camp place created successfully", campPlace)
}

func (h *CampPlaceHandler) Update(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid camp place ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CampPlaceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	campPlace, err := h.campPlaceService.Update(c.Request.Context(), id, req, formPhoto(c), ident)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Camp place updated successfully", campPlace)
}

func (h *CampPlaceHandler) Delete(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid camp place ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.campPlaceService.Delete(c.Request.Context(), id, ident); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Camp place deleted successfully", h.Helper.EmptyJsonMap())
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// formPhoto pulls the optional photo file from the multipart form; absence is
// not an error.
func formPhoto(c *gin.Context) *multipart.FileHeader {
	photo, err := c.FormFile("photo")
	if err != nil {
		return nil
	}
	return photo
}
