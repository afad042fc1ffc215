package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-management-service/internal/adapter/cache"
	domain "user-management-service/internal/domain/user"
	pkgerrors "user-management-service/pkg/errors"

	"github.com/go-playground/validator/v10"
)

// Repository defines the interface for user data access operations.
// Point lookups return (nil, nil) when no record exists.
type Repository interface {
	Create(ctx context.Context, u *domain.User) (int64, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (*domain.User, error)
	GetByIdentityNumber(ctx context.Context, identityNumber string) (*domain.User, error)
	FindConflicting(ctx context.Context, excludeID int64, accountNumber, emailAddress, identityNumber string) (*domain.User, error)
	List(ctx context.Context, page, limit int64) ([]domain.User, int64, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}

// Hasher is the one-way password hashing function used on create.
type Hasher func(password string) (string, error)

// Usecase implements the user management business logic, orchestrating the
// record store and the cache layer. The store is the source of truth; every
// cache failure after a successful store write is logged and swallowed.
type Usecase struct {
	repo     Repository
	cache    cache.Cache
	hash     Hasher
	log      *zap.Logger
	validate *validator.Validate
	listTTL  time.Duration
	group    singleflight.Group
}

// New creates a new instance of Usecase.
func New(r Repository, c cache.Cache, hash Hasher, listTTL time.Duration, log *zap.Logger) *Usecase {
	return &Usecase{
		repo:     r,
		cache:    c,
		hash:     hash,
		log:      log,
		validate: validator.New(),
		listTTL:  listTTL,
	}
}

// formatValidationError converts validator.ValidationErrors into a ValidationError.
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
			case "max":
				messages = append(messages, fmt.Sprintf("%s must be at most %s characters", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return pkgerrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// ListUsers retrieves users through the list cache. With pagination disabled
// the whole collection is returned under one key; otherwise each page/limit
// pair gets its own snapshot. Both expire after the configured list TTL.
func (uc *Usecase) ListUsers(ctx context.Context, in ListUsersRequest) (*ListUsersResponse, error) {
	if in.Page <= 0 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = 10
	}
	if in.Limit > 100 {
		in.Limit = 100
	}

	key := cache.ListAllKey
	if in.Paginate {
		key = cache.ListPageKey(in.Page, in.Limit)
	}

	// A cache error is treated as a miss: the store is the source of truth.
	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var cached ListUsersResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			uc.log.Debug("list served from cache", zap.String("key", key))
			return &cached, nil
		}
		uc.log.Warn("failed to decode cached list, falling back to store", zap.String("key", key), zap.Error(err))
	}

	resp := &ListUsersResponse{}
	if in.Paginate {
		users, total, err := uc.repo.List(ctx, in.Page, in.Limit)
		if err != nil {
			uc.log.Error("failed to list users", zap.Int64("page", in.Page), zap.Int64("limit", in.Limit), zap.Error(err))
			return nil, pkgerrors.NewInternalError("internal server error", nil)
		}
		p := domain.NewPagination(total, in.Page, in.Limit)
		resp.Users = toDTOs(users)
		resp.Pagination = &Pagination{
			CurrentPage:  p.CurrentPage,
			TotalPages:   p.TotalPages,
			TotalItems:   p.TotalItems,
			ItemsPerPage: p.ItemsPerPage,
		}
	} else {
		users, err := uc.repo.ListAll(ctx)
		if err != nil {
			uc.log.Error("failed to list all users", zap.Error(err))
			return nil, pkgerrors.NewInternalError("internal server error", nil)
		}
		resp.Users = toDTOs(users)
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cache.SetWithTTL(ctx, key, data, uc.listTTL); err != nil {
			uc.log.Warn("failed to cache list snapshot", zap.String("key", key), zap.Error(err))
		}
	}

	return resp, nil
}

// CreateUser hashes the password, inserts the record, warms both point-cache
// slots and invalidates every list snapshot.
func (uc *Usecase) CreateUser(ctx context.Context, in CreateUserRequest) (*CreateUserResponse, error) {
	uc.log.Info("creating user",
		zap.String("userName", in.UserName),
		zap.String("accountNumber", in.AccountNumber),
	)

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	hashed, err := uc.hash(in.Password)
	if err != nil {
		uc.log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	u := &domain.User{
		UserName:       in.UserName,
		AccountNumber:  in.AccountNumber,
		EmailAddress:   in.EmailAddress,
		IdentityNumber: in.IdentityNumber,
		PasswordHash:   hashed,
	}

	id, err := uc.repo.Create(ctx, u)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			uc.log.Warn("duplicate entry on create", zap.String("accountNumber", in.AccountNumber))
			return nil, pkgerrors.NewAlreadyExistsError("user", "duplicate entry for account number, email address or identity number")
		}
		uc.log.Error("failed to create user", zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	uc.populatePointCache(ctx, u)

	if err := uc.cache.DeleteByPrefix(ctx, cache.ListKeyPrefix); err != nil {
		uc.log.Warn("failed to invalidate list caches after create", zap.Error(err))
	}

	return &CreateUserResponse{ID: id, Message: "user created successfully"}, nil
}

// GetByAccountNumber looks a user up read-through via the account point key.
func (uc *Usecase) GetByAccountNumber(ctx context.Context, accountNumber string) (*User, error) {
	return uc.getPoint(ctx, cache.AccountKey(accountNumber), func(ctx context.Context) (*domain.User, error) {
		return uc.repo.GetByAccountNumber(ctx, accountNumber)
	})
}

// GetByIdentityNumber looks a user up read-through via the identity point key.
func (uc *Usecase) GetByIdentityNumber(ctx context.Context, identityNumber string) (*User, error) {
	return uc.getPoint(ctx, cache.IdentityKey(identityNumber), func(ctx context.Context) (*domain.User, error) {
		return uc.repo.GetByIdentityNumber(ctx, identityNumber)
	})
}

// getPoint implements the read-through path shared by both alternate-key
// lookups. Misses are collapsed per key with singleflight so concurrent
// requests do a single store fetch.
func (uc *Usecase) getPoint(ctx context.Context, key string, fetch func(ctx context.Context) (*domain.User, error)) (*User, error) {
	if data, err := uc.cache.Get(ctx, key); err == nil && data != nil {
		var cached User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		uc.log.Warn("failed to decode cached user, falling back to store", zap.String("key", key), zap.Error(err))
	}

	result, err, _ := uc.group.Do(key, func() (any, error) {
		u, err := fetch(ctx)
		if err != nil {
			uc.log.Error("failed to get user", zap.String("key", key), zap.Error(err))
			return nil, pkgerrors.NewInternalError("internal server error", nil)
		}
		if u == nil {
			return nil, pkgerrors.NewNotFoundError("user", "user not found")
		}

		// Warm both point slots so a later lookup by the other key hits too.
		uc.populatePointCache(ctx, u)

		dto := toDTO(u)
		return &dto, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*User), nil
}

// populatePointCache writes the password-stripped record under both point
// keys with no expiry. Failures are logged, never surfaced.
func (uc *Usecase) populatePointCache(ctx context.Context, u *domain.User) {
	dto := toDTO(u)
	data, err := json.Marshal(dto)
	if err != nil {
		uc.log.Warn("failed to marshal user for cache", zap.Int64("id", u.ID), zap.Error(err))
		return
	}

	if err := uc.cache.Set(ctx, cache.AccountKey(u.AccountNumber), data); err != nil {
		uc.log.Warn("failed to cache user by account number", zap.Int64("id", u.ID), zap.Error(err))
	}
	if err := uc.cache.Set(ctx, cache.IdentityKey(u.IdentityNumber), data); err != nil {
		uc.log.Warn("failed to cache user by identity number", zap.Int64("id", u.ID), zap.Error(err))
	}
}

// UpdateUser applies a partial field set to an existing record. Uniqueness of
// account number, email address and identity number is checked explicitly so
// the caller gets a conflict error instead of a bare constraint violation.
func (uc *Usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	uc.log.Info("updating user", zap.Int64("id", in.ID))

	if err := uc.validate.Struct(in); err != nil {
		uc.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	existing, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		uc.log.Error("failed to load user for update", zap.Int64("id", in.ID), zap.Error(err))
		return nil, pkgerrors.NewInternalError(fmt.Sprintf("failed to load user: %v", err), nil)
	}
	if existing == nil {
		return nil, pkgerrors.NewNotFoundError("user", "user not found")
	}

	if in.AccountNumber != nil || in.EmailAddress != nil || in.IdentityNumber != nil {
		conflict, err := uc.repo.FindConflicting(ctx, in.ID,
			strValue(in.AccountNumber),
			strValue(in.EmailAddress),
			strValue(in.IdentityNumber),
		)
		if err != nil {
			uc.log.Error("failed to check uniqueness for update", zap.Int64("id", in.ID), zap.Error(err))
			return nil, pkgerrors.NewInternalError(fmt.Sprintf("failed to check uniqueness: %v", err), nil)
		}
		if conflict != nil {
			uc.log.Warn("conflicting record on update",
				zap.Int64("id", in.ID),
				zap.Int64("conflicting_id", conflict.ID),
			)
			// The response deliberately does not say which field conflicted.
			return nil, pkgerrors.NewAlreadyExistsError("user", "account number, email address or identity number already in use")
		}
	}

	oldAccountNumber := existing.AccountNumber
	oldIdentityNumber := existing.IdentityNumber

	if in.UserName != nil {
		existing.UserName = *in.UserName
	}
	if in.AccountNumber != nil {
		existing.AccountNumber = *in.AccountNumber
	}
	if in.EmailAddress != nil {
		existing.EmailAddress = *in.EmailAddress
	}
	if in.IdentityNumber != nil {
		existing.IdentityNumber = *in.IdentityNumber
	}

	if err := uc.repo.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, pkgerrors.NewAlreadyExistsError("user", "account number, email address or identity number already in use")
		}
		uc.log.Error("failed to update user", zap.Int64("id", in.ID), zap.Error(err))
		// This path echoes the underlying failure rather than a generic message.
		return nil, pkgerrors.NewInternalError(err.Error(), nil)
	}

	uc.invalidatePointKeys(ctx,
		oldAccountNumber, existing.AccountNumber,
		oldIdentityNumber, existing.IdentityNumber,
	)

	if err := uc.cache.DeleteByPrefix(ctx, cache.ListKeyPrefix); err != nil {
		uc.log.Warn("failed to invalidate list caches after update", zap.Int64("id", in.ID), zap.Error(err))
	}

	dto := toDTO(existing)
	return &dto, nil
}

// invalidatePointKeys drops the point-cache slots for both the pre-update
// and post-update key values, deduplicated.
func (uc *Usecase) invalidatePointKeys(ctx context.Context, oldAccount, newAccount, oldIdentity, newIdentity string) {
	keySet := map[string]struct{}{
		cache.AccountKey(oldAccount):   {},
		cache.AccountKey(newAccount):   {},
		cache.IdentityKey(oldIdentity): {},
		cache.IdentityKey(newIdentity): {},
	}
	keys := make([]string, 0, len(keySet))
	for k := range keySet {
		keys = append(keys, k)
	}

	if err := uc.cache.Delete(ctx, keys...); err != nil {
		uc.log.Warn("failed to invalidate point caches", zap.Strings("keys", keys), zap.Error(err))
	}
}

// DeleteUser removes a record. Cache invalidation happens before the store
// delete; a crash in between only costs one extra cache miss.
func (uc *Usecase) DeleteUser(ctx context.Context, id int64) (*DeleteUserResponse, error) {
	uc.log.Info("deleting user", zap.Int64("id", id))

	if id <= 0 {
		return nil, pkgerrors.NewValidationError("id", "invalid user id")
	}

	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		uc.log.Error("failed to load user for delete", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}
	if existing == nil {
		return nil, pkgerrors.NewNotFoundError("user", "user not found")
	}

	if err := uc.cache.Delete(ctx,
		cache.AccountKey(existing.AccountNumber),
		cache.IdentityKey(existing.IdentityNumber),
	); err != nil {
		uc.log.Warn("failed to invalidate point caches before delete", zap.Int64("id", id), zap.Error(err))
	}
	if err := uc.cache.DeleteByPrefix(ctx, cache.ListKeyPrefix); err != nil {
		uc.log.Warn("failed to invalidate list caches before delete", zap.Int64("id", id), zap.Error(err))
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.log.Error("failed to delete user", zap.Int64("id", id), zap.Error(err))
		return nil, pkgerrors.NewInternalError("internal server error", nil)
	}

	return &DeleteUserResponse{ID: id, Message: "user deleted successfully"}, nil
}

func strValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
