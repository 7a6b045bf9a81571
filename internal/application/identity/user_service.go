package identity

import (
	"context"

	"github.com/contractmgmt/backend/internal/domain/identity"
	"github.com/contractmgmt/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles user administration operations
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "User with this username already exists")
	}

	user, err := identity.NewUser(req.Username, req.Password, identity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	user.DisplayName = req.DisplayName

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	info := ToUserInfo(user)
	return &info, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// List retrieves all users
func (s *UserService) List(ctx context.Context, filter shared.Filter) ([]UserInfo, error) {
	users, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	infos := make([]UserInfo, len(users))
	for i := range users {
		infos[i] = ToUserInfo(&users[i])
	}
	return infos, nil
}

// SetRole changes a user's role
func (s *UserService) SetRole(ctx context.Context, userID uuid.UUID, role string) (*UserInfo, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := user.SetRole(identity.Role(role)); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	info := ToUserInfo(user)
	return &info, nil
}

// Deactivate disables a user account
func (s *UserService) Deactivate(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}

// Delete removes a user
func (s *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
