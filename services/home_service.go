package services

import (
	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"
)

type HomeService interface {
	Index(search string, ident *models.Identity) (*models.HomeView, error)
}

type homeService struct {
	campPlaceRepo repositories.CampPlaceRepository
	reviewRepo    repositories.ReviewRepository
	userRepo      repositories.UserRepository
}

func NewHomeService(campPlaceRepo repositories.CampPlaceRepository, reviewRepo repositories.ReviewRepository, userRepo repositories.UserRepository) HomeService {
	return &homeService{
		campPlaceRepo: campPlaceRepo,
		reviewRepo:    reviewRepo,
		userRepo:      userRepo,
	}
}

// Index lists places newest first, filtered by name when a search string is
// given. Administrators additionally get the aggregate counts.
func (s *homeService) Index(search string, ident *models.Identity) (*models.HomeView, error) {
	campPlaces, err := s.campPlaceRepo.Search(search)
	if err != nil {
		return nil, err
	}

	view := &models.HomeView{
		CampPlaces:    campPlaces,
		CurrentFilter: search,
	}

	if ident != nil && ident.IsAdmin() {
		totalUsers, err := s.userRepo.Count()
		if err != nil {
			return nil, err
		}
		totalCampPlaces, err := s.campPlaceRepo.Count()
		if err != nil {
			return nil, err
		}
		totalReviews, err := s.reviewRepo.Count()
		if err != nil {
			return nil, err
		}
		view.TotalUsers = &totalUsers
		view.TotalCampPlaces = &totalCampPlaces
		view.TotalReviews = &totalReviews
	}

	return view, nil
}
