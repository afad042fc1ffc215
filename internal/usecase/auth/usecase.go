package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "user-management-service/internal/domain/user"
	pkgerrors "user-management-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository is the slice of the user store the auth service needs.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindConflicting(ctx context.Context, excludeID int64, accountNumber, emailAddress, identityNumber string) (*domain.User, error)
}

// TokenIssuer issues signed bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID int64, email string) (string, error)
}

// Hasher is the one-way password hashing function.
type Hasher func(password string) (string, error)

// Verifier reports whether a password matches a stored hash.
type Verifier func(password, hash string) bool

// Usecase implements registration and login. Registration writes straight to
// the store with no cache interaction; the user service warms caches lazily.
type Usecase struct {
	repo     Repository
	tokens   TokenIssuer
	hash     Hasher
	verify   Verifier
	log      *zap.Logger
	validate *validator.Validate
}

// New creates a new auth Usecase.
func New(r Repository, tokens TokenIssuer, hash Hasher, verify Verifier, log *zap.Logger) *Usecase {
	return &Usecase{
		repo:     r,
		tokens:   tokens,
		hash:     hash,
		verify:   verify,
		log:      log,
		validate: validator.New(),
	}
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Register validates uniqueness, hashes the password and persists the record.
func (uc *Usecase) Register(ctx context.Context, in RegisterRequest) (*RegisterResponse, error) {
	uc.log.Info("registering user",
		zap.String("userName", in.UserName),
		zap.String("accountNumber", in.AccountNumber),
	)

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	conflict, err := uc.repo.FindConflicting(ctx, 0, in.AccountNumber, in.EmailAddress, in.IdentityNumber)
	if err != nil {
		uc.log.Error("failed to check uniqueness on register", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}
	if conflict != nil {
		uc.log.Warn("duplicate entry on register", zap.Int64("conflicting_id", conflict.ID))
		return nil, pkgerrors.NewAlreadyExistsError("user", "duplicate entry for account number, email address or identity number")
	}

	hashed, err := uc.hash(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	id, err := uc.repo.Create(ctx, &domain.User{
		UserName:       in.UserName,
		AccountNumber:  in.AccountNumber,
		EmailAddress:   in.EmailAddress,
		IdentityNumber: in.IdentityNumber,
		PasswordHash:   hashed,
	})
	if err != nil {
		// Two concurrent registrations can race past the probe; the store
		// constraint settles it.
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, pkgerrors.NewAlreadyExistsError("user", "duplicate entry for account number, email address or identity number")
		}
		uc.log.Error("failed to register user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	return &RegisterResponse{ID: id, Message: "user registered successfully"}, nil
}

// Login verifies credentials and issues a signed token. Absent user and bad
// password produce the same error so the response does not leak which it was.
func (uc *Usecase) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	u, err := uc.repo.GetByEmail(ctx, in.EmailAddress)
	if err != nil {
		uc.log.Error("failed to look up user on login", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}
	if u == nil || !uc.verify(in.Password, u.PasswordHash) {
		uc.log.Warn("invalid credentials", zap.String("emailAddress", in.EmailAddress))
		return nil, pkgerrors.NewUnauthorizedError("invalid email or password")
	}

	tok, err := uc.tokens.Issue(u.ID, u.EmailAddress)
	if err != nil {
		uc.log.Error("failed to issue token", zap.Int64("id", u.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	return &LoginResponse{Token: tok}, nil
}
