package models

import (
	"time"

	"gorm.io/gorm"
)

type CampPlace struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	Name         string     `json:"name" gorm:"size:64;not null"`
	Description  string     `json:"description" gorm:"size:255;not null"`
	Latitude     float64    `json:"latitude" gorm:"not null"`
	Longitude    float64    `json:"longitude" gorm:"not null"`
	Photo        *string    `json:"photo" gorm:"size:2000"`
	DateCreated  time.Time  `json:"date_created"`
	DateModified *time.Time `json:"date_modified"`
	// Owner may be cleared without deleting the place, so the key is nullable.
	UserID  *uint    `json:"user_id"`
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:CampPlaceID;constraint:OnDelete:CASCADE"`
}

func (c *CampPlace) BeforeCreate(tx *gorm.DB) error {
	if c.DateCreated.IsZero() {
		c.DateCreated = time.Now()
	}
	return nil
}
