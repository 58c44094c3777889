package config

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/marti-georgiev/camprating/models"
)

// Seed bootstraps roles, two accounts, and two sample camp places. It runs
// only against an empty user table.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	roles := map[string]*models.Role{}
	for _, name := range []string{models.RoleAdmin, models.RoleUser} {
		role := &models.Role{Name: name}
		if err := db.FirstOrCreate(role, models.Role{Name: name}).Error; err != nil {
			return err
		}
		roles[name] = role
	}

	admin, err := seedUser(db, "admin", "admin@example.com", "Admin123!", "Admin", "User", roles[models.RoleAdmin])
	if err != nil {
		return err
	}

	user, err := seedUser(db, "user", "user@example.com", "User123!", "Regular", "User", roles[models.RoleUser])
	if err != nil {
		return err
	}

	campPlaces := []models.CampPlace{
		{
			Name:        "Beautiful Mountain Camp",
			Description: "A stunning campsite with mountain views",
			Latitude:    42.1234,
			Longitude:   23.5678,
			UserID:      &admin.ID,
		},
		{
			Name:        "Lakeside Retreat",
			Description: "Peaceful camping by the lake",
			Latitude:    42.5678,
			Longitude:   23.1234,
			UserID:      &user.ID,
		},
	}
	return db.Create(&campPlaces).Error
}

func seedUser(db *gorm.DB, username, email, password, firstName, lastName string, role *models.Role) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  username,
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
		Roles:     []models.Role{*role},
	}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}
