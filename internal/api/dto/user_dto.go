package dto

import "reviewhub/internal/api/models"

// CreateUserDTO for admin user creation; role may be set here.
type CreateUserDTO struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Role      string `json:"role" binding:"omitempty"`
	Bio       string `json:"bio" binding:"omitempty,max=300"`
	FirstName string `json:"first_name" binding:"omitempty,max=150"`
	LastName  string `json:"last_name" binding:"omitempty,max=150"`
}

// UpdateUserDTO for admin edits; nil fields are left untouched.
type UpdateUserDTO struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Role      *string `json:"role"`
	Bio       *string `json:"bio" binding:"omitempty,max=300"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

// UpdateProfileDTO for the self-edit path. Deliberately has no role field:
// actors cannot escalate themselves.
type UpdateProfileDTO struct {
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Bio       *string `json:"bio" binding:"omitempty,max=300"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Bio       string `json:"bio,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func FromModelToUserResponse(u *models.User) *UserResponse {
	return &UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		Bio:       u.Bio,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

type PaginatedUserResponse struct {
	Data []UserResponse `json:"data"`
	Pagination
}
