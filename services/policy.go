package services

import (
	"github.com/marti-georgiev/camprating/models"
)

// CanModify is the single ownership predicate for mutating camp places and
// reviews: the caller must be the owner or hold the Admin role. A nil owner
// means the resource has no owner left; only admins may touch it then.
func CanModify(ownerID *uint, ident models.Identity) bool {
	if ident.IsAdmin() {
		return true
	}
	return ownerID != nil && *ownerID == ident.UserID
}
