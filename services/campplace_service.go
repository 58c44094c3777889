package services

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"time"

	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"
	"github.com/marti-georgiev/camprating/storage"

	"gorm.io/gorm"
)

type CampPlaceService interface {
	List() ([]models.CampPlace, error)
	Details(id uint) (*models.CampPlace, error)
	Create(ctx context.Context, req models.CampPlaceRequest, photo *multipart.FileHeader, ident models.Identity) (*models.CampPlace, error)
	Update(ctx context.Context, id uint, req models.CampPlaceRequest, photo *multipart.FileHeader, ident models.Identity) (*models.CampPlace, error)
	Delete(ctx context.Context, id uint, ident models.Identity) error
}

type campPlaceService struct {
	campPlaceRepo repositories.CampPlaceRepository
	photoStore    storage.PhotoStore
}

func NewCampPlaceService(campPlaceRepo repositories.CampPlaceRepository, photoStore storage.PhotoStore) CampPlaceService {
	return &campPlaceService{
		campPlaceRepo: campPlaceRepo,
		photoStore:    photoStore,
	}
}

func (s *campPlaceService) List() ([]models.CampPlace, error) {
	return s.campPlaceRepo.GetAll()
}

func (s *campPlaceService) Details(id uint) (*models.CampPlace, error) {
	campPlace, err := s.campPlaceRepo.GetByIDWithReviews(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "camp place not found"}
		}
		return nil, err
	}
	return campPlace, nil
}

// Create persists a new place owned by the caller. Any authenticated user may
// create; there is no ownership check here.
func (s *campPlaceService) Create(ctx context.Context, req models.CampPlaceRequest, photo *multipart.FileHeader, ident models.Identity) (*models.CampPlace, error) {
	photoPath, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}

	campPlace := &models.CampPlace{
		Name:        req.Name,
		Description: req.Description,
		Latitude:    *req.Latitude,
		Longitude:   *req.Longitude,
		Photo:       photoPath,
		UserID:      &ident.UserID,
		DateCreated: time.Now(),
	}

	if err := s.campPlaceRepo.Create(campPlace); err != nil {
		s.discardPhoto(ctx, photoPath)
		return nil, err
	}

	return s.campPlaceRepo.GetByID(campPlace.ID)
}

func (s *campPlaceService) Update(ctx context.Context, id uint, req models.CampPlaceRequest, photo *multipart.FileHeader, ident models.Identity) (*models.CampPlace, error) {
	existing, err := s.campPlaceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "camp place not found"}
		}
		return nil, err
	}

	if !CanModify(existing.UserID, ident) {
		return nil, models.ErrorForbidden{Message: "only the owner or an administrator may edit this camp place"}
	}

	// The replacement photo is written before the row is saved and the old
	// file removed only after, so a crash at any point leaves a valid photo
	// on disk.
	oldPhoto := existing.Photo
	newPhoto, err := s.storePhoto(ctx, photo)
	if err != nil {
		return nil, err
	}
	if newPhoto != nil {
		existing.Photo = newPhoto
	}

	now := time.Now()
	existing.Name = req.Name
	existing.Description = req.Description
	existing.Latitude = *req.Latitude
	existing.Longitude = *req.Longitude
	existing.DateModified = &now

	if err := s.campPlaceRepo.Update(existing); err != nil {
		s.discardPhoto(ctx, newPhoto)
		// A failed save against a vanished row reads as not-found; any other
		// conflict propagates.
		exists, checkErr := s.campPlaceRepo.Exists(id)
		if checkErr == nil && !exists {
			return nil, models.ErrorNotFound{Message: "camp place not found"}
		}
		return nil, err
	}

	if newPhoto != nil && oldPhoto != nil {
		if err := s.photoStore.Delete(ctx, *oldPhoto); err != nil {
			log.Printf("failed to delete replaced photo %s: %v", *oldPhoto, err)
		}
	}

	return s.campPlaceRepo.GetByID(id)
}

func (s *campPlaceService) Delete(ctx context.Context, id uint, ident models.Identity) error {
	existing, err := s.campPlaceRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "camp place not found"}
		}
		return err
	}

	if !CanModify(existing.UserID, ident) {
		return models.ErrorForbidden{Message: "only the owner or an administrator may delete this camp place"}
	}

	if existing.Photo != nil {
		if err := s.photoStore.Delete(ctx, *existing.Photo); err != nil {
			log.Printf("failed to delete photo %s: %v", *existing.Photo, err)
		}
	}

	// Reviews cascade at the storage layer.
	return s.campPlaceRepo.Delete(id)
}

func (s *campPlaceService) storePhoto(ctx context.Context, photo *multipart.FileHeader) (*string, error) {
	if photo == nil || photo.Size == 0 {
		return nil, nil
	}

	f, err := photo.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	path, err := s.photoStore.Save(ctx, photo.Filename, f)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

func (s *campPlaceService) discardPhoto(ctx context.Context, path *string) {
	if path == nil {
		return
	}
	if err := s.photoStore.Delete(ctx, *path); err != nil {
		log.Printf("failed to discard photo %s: %v", *path, err)
	}
}
