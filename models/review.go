package models

import (
	"time"
)

type Review struct {
	ID           uint       `json:"id" gorm:"primarykey"`
	CampPlaceID  uint       `json:"camp_place_id" gorm:"not null"`
	CampPlace    *CampPlace `json:"camp_place,omitempty" gorm:"foreignKey:CampPlaceID"`
	UserID       uint       `json:"user_id" gorm:"not null"`
	User         *User      `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Rating       int        `json:"rating" gorm:"not null"`
	Comment      string     `json:"comment" gorm:"size:500;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	DateModified *time.Time `json:"date_modified"`
}
