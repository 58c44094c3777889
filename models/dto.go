package models

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"max=50"`
	LastName  string `json:"last_name" binding:"max=50"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// CampPlaceRequest arrives as a multipart form because the photo file rides
// along with the fields. The coordinates are pointers so that 0 (the equator,
// the prime meridian) still satisfies required.
type CampPlaceRequest struct {
	Name        string   `form:"name" binding:"required,max=64"`
	Description string   `form:"description" binding:"required,max=255"`
	Latitude    *float64 `form:"latitude" binding:"required,latitude"`
	Longitude   *float64 `form:"longitude" binding:"required,longitude"`
}

type CreateReviewRequest struct {
	CampPlaceID uint   `json:"camp_place_id" binding:"required"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	Comment     string `json:"comment" binding:"required,min=1,max=500"`
}

// UpdateReviewRequest carries no place or author reference; both are
// immutable after creation.
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required,min=1,max=500"`
}

type EditUserRequest struct {
	FirstName string   `json:"first_name" binding:"required,max=50"`
	LastName  string   `json:"last_name" binding:"required,max=50"`
	Roles     []string `json:"roles"`
}

type UserView struct {
	ID        uint     `json:"id"`
	Username  string   `json:"username"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// EditUserView repopulates the edit form, including the full role catalog.
type EditUserView struct {
	UserView
	AllRoles []string `json:"all_roles"`
}

type HomeView struct {
	CampPlaces      []CampPlace `json:"camp_places"`
	CurrentFilter   string      `json:"current_filter,omitempty"`
	TotalUsers      *int64      `json:"total_users,omitempty"`
	TotalCampPlaces *int64      `json:"total_camp_places,omitempty"`
	TotalReviews    *int64      `json:"total_reviews,omitempty"`
}
