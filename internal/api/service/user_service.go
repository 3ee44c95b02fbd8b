package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedUserResponse, error)
	Create(ctx context.Context, in dto.CreateUserDTO) (*dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	Update(ctx context.Context, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
	GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileDTO) (*dto.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, *dto.FromModelToUserResponse(&users[i]))
	}
	return &dto.PaginatedUserResponse{
		Data:       data,
		Pagination: dto.NewPagination(int(total), page, pageSize),
	}, nil
}

// Create is the admin path: it may assign any valid role.
func (s *userService) Create(ctx context.Context, in dto.CreateUserDTO) (*dto.UserResponse, error) {
	if err := ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
	}
	if err := s.checkUnique(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		Role:      role,
		Bio:       in.Bio,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, classifyUserConflict(ctx, s.userRepo, in.Username, in.Email)
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, username string, in dto.UpdateUserDTO) (*dto.UserResponse, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if in.Role != nil {
		role := models.Role(*in.Role)
		if !role.Valid() {
			return nil, ErrInvalidRole
		}
		user.Role = role
	}
	if err := s.applyProfileFields(ctx, user, in.Email, in.Bio, in.FirstName, in.LastName); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

// UpdateProfile is the self-edit path. Role never changes here regardless of
// input; UpdateProfileDTO cannot even carry one.
func (s *userService) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileDTO) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.applyProfileFields(ctx, user, in.Email, in.Bio, in.FirstName, in.LastName); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailInUse
		}
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) findByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) applyProfileFields(ctx context.Context, user *models.User, email, bio, firstName, lastName *string) error {
	if email != nil && *email != user.Email {
		if existing, err := s.userRepo.FindByEmail(ctx, *email); err == nil && existing.ID != user.ID {
			return ErrEmailInUse
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		user.Email = *email
	}
	if bio != nil {
		user.Bio = *bio
	}
	if firstName != nil {
		user.FirstName = *firstName
	}
	if lastName != nil {
		user.LastName = *lastName
	}
	return nil
}

// classifyUserConflict names the column behind a raced unique violation.
// The pre-checks passed, so the colliding row landed between check and
// insert; a fresh lookup tells which field it took.
func classifyUserConflict(ctx context.Context, users repository.UserRepository, username, email string) error {
	if _, err := users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameInUse
	}
	if _, err := users.FindByEmail(ctx, email); err == nil {
		return ErrEmailInUse
	}
	return ErrUsernameInUse
}

func (s *userService) checkUnique(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		return ErrUsernameInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return ErrEmailInUse
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return nil
}
