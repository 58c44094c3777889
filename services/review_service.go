package services

import (
	"errors"
	"log"
	"time"

	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"

	"gorm.io/gorm"
)

type ReviewService interface {
	List() ([]models.Review, error)
	Create(req models.CreateReviewRequest, ident models.Identity) (*models.Review, error)
	Update(id uint, req models.UpdateReviewRequest, ident models.Identity) (*models.Review, error)
	Delete(id uint, ident models.Identity) (campPlaceID uint, err error)
}

type reviewService struct {
	reviewRepo    repositories.ReviewRepository
	campPlaceRepo repositories.CampPlaceRepository
}

func NewReviewService(reviewRepo repositories.ReviewRepository, campPlaceRepo repositories.CampPlaceRepository) ReviewService {
	return &reviewService{
		reviewRepo:    reviewRepo,
		campPlaceRepo: campPlaceRepo,
	}
}

func (s *reviewService) List() ([]models.Review, error) {
	return s.reviewRepo.GetAll()
}

// Create attaches a review to an existing place. The author is always the
// caller; nothing the request carries can override that.
func (s *reviewService) Create(req models.CreateReviewRequest, ident models.Identity) (*models.Review, error) {
	exists, err := s.campPlaceRepo.Exists(req.CampPlaceID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrorNotFound{Message: "camp place not found"}
	}

	review := &models.Review{
		CampPlaceID: req.CampPlaceID,
		UserID:      ident.UserID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.reviewRepo.Create(review); err != nil {
		log.Printf("failed to create review for camp place %d: %v", req.CampPlaceID, err)
		return nil, models.ErrorInternalServer{Message: "an error occurred while saving the review, please try again"}
	}

	return s.reviewRepo.GetByID(review.ID)
}

// Update changes rating and comment only; author and place are immutable.
func (s *reviewService) Update(id uint, req models.UpdateReviewRequest, ident models.Identity) (*models.Review, error) {
	existing, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "review not found"}
		}
		return nil, err
	}

	if !CanModify(&existing.UserID, ident) {
		return nil, models.ErrorForbidden{Message: "only the author or an administrator may edit this review"}
	}

	now := time.Now().UTC()
	existing.Rating = req.Rating
	existing.Comment = req.Comment
	existing.DateModified = &now

	if err := s.reviewRepo.Update(existing); err != nil {
		exists, checkErr := s.reviewRepo.Exists(id)
		if checkErr == nil && !exists {
			return nil, models.ErrorNotFound{Message: "review not found"}
		}
		return nil, err
	}

	return s.reviewRepo.GetByID(id)
}

// Delete returns the owning place id so callers can redirect back to its
// detail view.
func (s *reviewService) Delete(id uint, ident models.Identity) (uint, error) {
	existing, err := s.reviewRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.ErrorNotFound{Message: "review not found"}
		}
		return 0, err
	}

	if !CanModify(&existing.UserID, ident) {
		return 0, models.ErrorForbidden{Message: "only the author or an administrator may delete this review"}
	}

	if err := s.reviewRepo.Delete(id); err != nil {
		return 0, err
	}
	return existing.CampPlaceID, nil
}
