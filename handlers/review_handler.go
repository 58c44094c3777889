package handlers

import (
	"fmt"
	"net/http"

	"github.com/marti-georgiev/camprating/helper"
	"github.com/marti-georgiev/camprating/middleware"
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		Helper:        helper.NewHTTPHelper(),
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.reviewService.List()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", reviews)
}

// Create posts a review against a place. Asynchronous (XHR) callers get
// structured {success, errors/redirect} JSON; everyone else gets the standard
// envelope or a redirect to the place's detail view.
func (h *ReviewHandler) Create(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isXHR(c) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": h.bindingMessages(err)})
			return
		}
		h.Helper.SendBindingError(c, err)
		return
	}

	review, err := h.reviewService.Create(req, ident)
	if err != nil {
		if isXHR(c) {
			c.JSON(h.Helper.GetStatusCode(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		h.Helper.SendServiceError(c, err)
		return
	}

	redirect := campPlaceDetailsPath(review.CampPlaceID)
	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "redirect": redirect})
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid review ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	review, err := h.reviewService.Update(id, req, ident)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	redirect := campPlaceDetailsPath(review.CampPlaceID)
	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "redirect": redirect})
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	ident, ok := middleware.GetIdentity(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "User not found in context", h.Helper.EmptyJsonMap())
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid review ID", h.Helper.EmptyJsonMap())
		return
	}

	campPlaceID, err := h.reviewService.Delete(id, ident)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	redirect := campPlaceDetailsPath(campPlaceID)
	if isXHR(c) {
		c.JSON(http.StatusOK, gin.H{"success": true, "redirect": redirect})
		return
	}
	c.Redirect(http.StatusFound, redirect)
}

func (h *ReviewHandler) bindingMessages(err error) []string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && h.Helper.Translator != nil {
		translated := validationErrors.Translate(h.Helper.Translator)
		messages := make([]string, 0, len(validationErrors))
		for _, verr := range validationErrors {
			messages = append(messages, translated[verr.Namespace()])
		}
		return messages
	}
	return []string{err.Error()}
}

func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func campPlaceDetailsPath(id uint) string {
	return fmt.Sprintf("/api/v1/campplaces/%d", id)
}
