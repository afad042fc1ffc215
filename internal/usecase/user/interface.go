package user

import "context"

// Service defines the interface for user business logic operations.
type Service interface {
	ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error)
	CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*User, error)
	GetByIdentityNumber(ctx context.Context, identityNumber string) (*User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, id int64) (*DeleteUserResponse, error)
}

var _ Service = (*Usecase)(nil)
