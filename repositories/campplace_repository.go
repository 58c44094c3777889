package repositories

import (
	"github.com/marti-georgiev/camprating/models"

	"gorm.io/gorm"
)

type CampPlaceRepository interface {
	Create(campPlace *models.CampPlace) error
	GetByID(id uint) (*models.CampPlace, error)
	GetByIDWithReviews(id uint) (*models.CampPlace, error)
	GetAll() ([]models.CampPlace, error)
	Search(name string) ([]models.CampPlace, error)
	Update(campPlace *models.CampPlace) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
	Count() (int64, error)
}

type campPlaceRepository struct {
	db *gorm.DB
}

func NewCampPlaceRepository(db *gorm.DB) CampPlaceRepository {
	return &campPlaceRepository{db: db}
}

func (r *campPlaceRepository) Create(campPlace *models.CampPlace) error {
	return r.db.Create(campPlace).Error
}

func (r *campPlaceRepository) GetByID(id uint) (*models.CampPlace, error) {
	var campPlace models.CampPlace
	err := r.db.Preload("User").First(&campPlace, id).Error
	return &campPlace, err
}

func (r *campPlaceRepository) GetByIDWithReviews(id uint) (*models.CampPlace, error) {
	var campPlace models.CampPlace
	err := r.db.Preload("User").
		Preload("Reviews").
		Preload("Reviews.User").
		First(&campPlace, id).Error
	return &campPlace, err
}

func (r *campPlaceRepository) GetAll() ([]models.CampPlace, error) {
	var campPlaces []models.CampPlace
	err := r.db.Preload("User").Find(&campPlaces).Error
	return campPlaces, err
}

// Search filters by substring on name when one is given, otherwise returns
// everything. Results carry their reviews, newest place first. Match case
// behavior is whatever the store's LIKE does.
func (r *campPlaceRepository) Search(name string) ([]models.CampPlace, error) {
	var campPlaces []models.CampPlace
	query := r.db.Preload("Reviews")
	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	err := query.Order("date_created desc").Find(&campPlaces).Error
	return campPlaces, err
}

// Update reports gorm.ErrRecordNotFound when the row no longer exists, so
// callers can tell a lost row from other save failures.
func (r *campPlaceRepository) Update(campPlace *models.CampPlace) error {
	result := r.db.Save(campPlace)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *campPlaceRepository) Delete(id uint) error {
	return r.db.Delete(&models.CampPlace{}, id).Error
}

func (r *campPlaceRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CampPlace{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *campPlaceRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.CampPlace{}).Count(&count).Error
	return count, err
}
