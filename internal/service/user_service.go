package service

import (
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/dto"
	"reviewhub/internal/models"
	"reviewhub/internal/repository"
)

// UserService covers admin user administration and the "me"-aliased
// self-service profile. Role changes only take effect on admin-driven
// updates; a self-update quietly keeps the caller's current role.
type UserService interface {
	List(limit, offset int, search string) (*dto.PaginatedResponse, error)
	Create(req dto.CreateUserRequest) (*dto.UserResponse, error)
	Get(username string) (*dto.UserResponse, error)
	Update(username string, req dto.UpdateUserRequest, actorIsSelf bool) (*dto.UserResponse, error)
	Delete(username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(limit, offset int, search string) (*dto.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(limit, offset, search)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}
	return dto.NewPaginatedResponse(responses, total, limit, offset), nil
}

// Create is the admin path: any role may be assigned and no confirmation
// code is involved.
func (s *userService) Create(req dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := ValidateUsername(req.Username); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(req.Username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.FindByEmail(req.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Get(username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// Update applies a partial profile update. On the self path the role field
// is overwritten with the caller's current role before persisting, so a
// user cannot escalate through their own profile.
func (s *userService) Update(username string, req dto.UpdateUserRequest, actorIsSelf bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil {
		if err := ValidateUsername(*req.Username); err != nil {
			return nil, err
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil && !actorIsSelf {
		user.Role = *req.Role
	}

	if err := s.userRepo.Save(user); err != nil {
		if repository.IsUniqueViolation(err) {
			// Constraint tripped outside the pre-check path: generic client
			// error, not a storage error.
			return nil, ErrConflictingUpdate
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(username string) error {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return s.userRepo.Delete(user)
}
