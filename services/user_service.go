package services

import (
	"errors"
	"log"

	"github.com/marti-georgiev/camprating/models"
	"github.com/marti-georgiev/camprating/repositories"

	"gorm.io/gorm"
)

type UserService interface {
	List() ([]models.UserView, error)
	Edit(id uint, req models.EditUserRequest) (*models.EditUserView, error)
	Delete(id uint) error
	AllRoles() ([]string, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List() ([]models.UserView, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, err
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, userView(&users[i]))
	}
	return views, nil
}

// Edit updates the name fields and replaces the full role-assignment set with
// the submitted selection. The replacement is clear-then-add, not a diff.
func (s *userService) Edit(id uint, req models.EditUserRequest) (*models.EditUserView, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, err
	}

	roles := make([]models.Role, 0, len(req.Roles))
	for _, name := range req.Roles {
		role, err := s.userRepo.GetRoleByName(name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.ErrorValidation{Message: "unknown role: " + name}
			}
			return nil, err
		}
		roles = append(roles, *role)
	}

	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.userRepo.Update(user); err != nil {
		return nil, models.ErrorValidation{Message: err.Error()}
	}

	if err := s.userRepo.ReplaceRoles(user, roles); err != nil {
		return nil, models.ErrorValidation{Message: err.Error()}
	}

	updated, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	allRoles, err := s.AllRoles()
	if err != nil {
		return nil, err
	}
	return &models.EditUserView{UserView: userView(updated), AllRoles: allRoles}, nil
}

// Delete removes a user unless that would leave the system without an Admin.
// Users still owning camp places or reviews are blocked by the restrict
// foreign keys, not checked here.
func (s *userService) Delete(id uint) error {
	_, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrorNotFound{Message: "user not found"}
		}
		return err
	}

	isAdmin, err := s.userRepo.IsInRole(id, models.RoleAdmin)
	if err != nil {
		return err
	}
	if isAdmin {
		adminCount, err := s.userRepo.CountInRole(models.RoleAdmin)
		if err != nil {
			return err
		}
		if adminCount <= 1 {
			return models.ErrorValidation{Message: "cannot delete the last administrator"}
		}
	}

	if err := s.userRepo.Delete(id); err != nil {
		log.Printf("failed to delete user %d: %v", id, err)
		return models.ErrorValidation{Message: "an error occurred while deleting the user"}
	}
	return nil
}

func (s *userService) AllRoles() ([]string, error) {
	roles, err := s.userRepo.GetAllRoles()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names, nil
}

func userView(user *models.User) models.UserView {
	return models.UserView{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Roles:     user.RoleNames(),
	}
}
