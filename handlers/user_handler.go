package handlers

import (
	"net/http"

	"github.com/marti-georgiev/camprating/helper"
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/services"

	"github.com/gin-gonic/gin"
)

// UserHandler is the admin-only user administration surface.
type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		Helper:      helper.NewHTTPHelper(),
	}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List()
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *UserHandler) Edit(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}

	var req models.EditUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBindingError(c, err)
		return
	}

	view, err := h.userService.Edit(id, req)
	if err != nil {
		// Identity-layer failures re-render the form, role catalog included.
		if h.Helper.GetStatusCode(err) == http.StatusBadRequest {
			allRoles, rolesErr := h.userService.AllRoles()
			if rolesErr != nil {
				h.Helper.SendServiceError(c, rolesErr)
				return
			}
			h.Helper.SendBadRequest(c, err.Error(), gin.H{"all_roles": allRoles})
			return
		}
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User updated successfully", view)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.Helper.SendBadRequest(c, "Invalid user ID", h.Helper.EmptyJsonMap())
		return
	}

	if err := h.userService.Delete(id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User deleted successfully", h.Helper.EmptyJsonMap())
}
