package service

import (
	"context"

	"criminaldiaries/internal/models"
	"criminaldiaries/internal/repository"
)

// UserService implements admin user management. The last-admin invariant is
// enforced here, at the delete/role-update boundary, regardless of caller.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateRole sets the target user's role. Demoting the sole admin is rejected
// so the admin count can never reach zero.
func (s *UserService) UpdateRole(ctx context.Context, targetID uint, role models.Role) (*models.User, error) {
	if !models.ValidRole(role) {
		return nil, models.NewValidationError("Please provide a valid role (user or admin)")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.RoleAdmin && role != models.RoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, models.NewConflictError("Cannot demote the last admin account")
		}
	}

	user.Role = role
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user and cascades to their stories and comments.
// Deleting the sole admin is rejected and nothing is removed.
func (s *UserService) DeleteUser(ctx context.Context, targetID uint) error {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if user.Role == models.RoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return models.NewConflictError("Cannot delete the last admin account")
		}
	}

	return s.userRepo.Delete(ctx, targetID)
}
