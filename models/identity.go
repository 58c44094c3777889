package models

// Identity is the authenticated caller, resolved once from the bearer token
// and passed explicitly into every operation that needs it.
type Identity struct {
	UserID   uint
	Username string
	Roles    []string
}

func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i Identity) IsAdmin() bool {
	return i.HasRole(RoleAdmin)
}
