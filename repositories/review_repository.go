package repositories

import (
	"github.com/marti-georgiev/camprating/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	Create(review *models.Review) error
	GetByID(id uint) (*models.Review, error)
	GetAll() ([]models.Review, error)
	Update(review *models.Review) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
	Count() (int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

func (r *reviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("User").Preload("CampPlace").First(&review, id).Error
	return &review, err
}

func (r *reviewRepository) GetAll() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").Preload("CampPlace").Find(&reviews).Error
	return reviews, err
}

// Update reports gorm.ErrRecordNotFound when the row no longer exists, so
// callers can tell a lost row from other save failures.
func (r *reviewRepository) Update(review *models.Review) error {
	result := r.db.Save(review)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) Delete(id uint) error {
	return r.db.Delete(&models.Review{}, id).Error
}

func (r *reviewRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Count(&count).Error
	return count, err
}
