package handlers

import (
	"github.com/marti-georgiev/camprating/helper"
	"github.com/marti-georgiev/camprating/middleware"
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/services"

	"github.com/gin-gonic/gin"
)

type HomeHandler struct {
	homeService services.HomeService
	Helper      *helper.HTTPHelper
}

func NewHomeHandler(homeService services.HomeService) *HomeHandler {
	return &HomeHandler{
		homeService: homeService,
		Helper:      helper.NewHTTPHelper(),
	}
}

func (h *HomeHandler) Index(c *gin.Context) {
	var ident *models.Identity
	if resolved, ok := middleware.GetIdentity(c); ok {
		ident = &resolved
	}

	view, err := h.homeService.Index(c.Query("search"), ident)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", view)
}

func (h *HomeHandler) Privacy(c *gin.Context) {
	h.Helper.SendSuccess(c, "Privacy policy", gin.H{
		"policy": "Camp place listings and reviews are public. Accounts store only username, email, and name.",
	})
}

func (h *HomeHandler) AccessDenied(c *gin.Context) {
	h.Helper.SendForbiddenError(c, "Access denied", h.Helper.EmptyJsonMap())
}

func (h *HomeHandler) Error(c *gin.Context) {
	h.Helper.SendError(c, "An unexpected error occurred", gin.H{
		"request_id": middleware.GetRequestID(c),
	}, 500, `internalServerError`)
}
