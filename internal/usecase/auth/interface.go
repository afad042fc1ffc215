package auth

import "context"

// Service defines the interface for registration and authentication.
type Service interface {
	Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, in LoginRequest) (*LoginResponse, error)
}

var _ Service = (*Usecase)(nil)
