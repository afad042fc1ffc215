package user

import (
	"time"

	domain "user-management-service/internal/domain/user"
)

// User is the user DTO returned by every read path. It carries no password
// field, so cached serializations can never leak the hash.
type User struct {
	ID             int64     `json:"id"`
	UserName       string    `json:"userName"`
	AccountNumber  string    `json:"accountNumber"`
	EmailAddress   string    `json:"emailAddress"`
	IdentityNumber string    `json:"identityNumber"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toDTO(u *domain.User) User {
	return User{
		ID:             u.ID,
		UserName:       u.UserName,
		AccountNumber:  u.AccountNumber,
		EmailAddress:   u.EmailAddress,
		IdentityNumber: u.IdentityNumber,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func toDTOs(users []domain.User) []User {
	out := make([]User, len(users))
	for i := range users {
		out[i] = toDTO(&users[i])
	}
	return out
}

// Pagination describes the shape of one cached/returned list page.
type Pagination struct {
	CurrentPage  int64 `json:"currentPage"`
	TotalPages   int64 `json:"totalPages"`
	TotalItems   int64 `json:"totalItems"`
	ItemsPerPage int64 `json:"itemsPerPage"`
}

// ListUsersRequest represents the request payload for listing users.
type ListUsersRequest struct {
	Page     int64
	Limit    int64
	Paginate bool
}

// ListUsersResponse represents the response payload for user listing.
// This struct is also the cache serialization format for list snapshots.
type ListUsersResponse struct {
	Users      []User      `json:"users"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	UserName       string `validate:"required,min=3,max=100"`
	AccountNumber  string `validate:"required"`
	EmailAddress   string `validate:"required,email"`
	IdentityNumber string `validate:"required"`
	Password       string `validate:"required,min=6"`
}

// CreateUserResponse represents the confirmation returned after creating a user.
type CreateUserResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// UpdateUserRequest represents a partial update. Nil fields are left untouched.
type UpdateUserRequest struct {
	ID             int64   `validate:"required"`
	UserName       *string `validate:"omitempty,min=3,max=100"`
	AccountNumber  *string `validate:"omitempty"`
	EmailAddress   *string `validate:"omitempty,email"`
	IdentityNumber *string `validate:"omitempty"`
}

// DeleteUserResponse represents the confirmation returned after deleting a user.
type DeleteUserResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
