package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-management-service/internal/domain/user"
)

// UserRepoPG implements the Repository interface using PostgreSQL and GORM.
type UserRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	UserName       string    `gorm:"not null"`
	AccountNumber  string    `gorm:"not null;uniqueIndex"`
	EmailAddress   string    `gorm:"not null;uniqueIndex"`
	IdentityNumber string    `gorm:"not null;uniqueIndex"`
	PasswordHash   string    `gorm:"not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

func toDomain(m *UserSchema) *user.User {
	return &user.User{
		ID:             m.ID,
		UserName:       m.UserName,
		AccountNumber:  m.AccountNumber,
		EmailAddress:   m.EmailAddress,
		IdentityNumber: m.IdentityNumber,
		PasswordHash:   m.PasswordHash,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// Create inserts a new user into the database.
// Returns user.ErrDuplicateKey when a unique constraint is violated.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) (int64, error) {
	if u == nil {
		return 0, errors.New("user cannot be nil")
	}

	model := UserSchema{
		UserName:       u.UserName,
		AccountNumber:  u.AccountNumber,
		EmailAddress:   u.EmailAddress,
		IdentityNumber: u.IdentityNumber,
		PasswordHash:   u.PasswordHash,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate key on user create", zap.String("account_number", u.AccountNumber))
			return 0, user.ErrDuplicateKey
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("account_number", u.AccountNumber))
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	u.UpdatedAt = model.UpdatedAt

	r.log.Info("user created in db", zap.Int64("id", model.ID))
	return model.ID, nil
}

// Update persists the full record. Returns user.ErrDuplicateKey on a
// unique-constraint violation.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := UserSchema{
		ID:             u.ID,
		UserName:       u.UserName,
		AccountNumber:  u.AccountNumber,
		EmailAddress:   u.EmailAddress,
		IdentityNumber: u.IdentityNumber,
		PasswordHash:   u.PasswordHash,
		CreatedAt:      u.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrDuplicateKey
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.Int64("id", u.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}

	u.UpdatedAt = model.UpdatedAt

	r.log.Info("user updated in db", zap.Int64("id", model.ID))
	return nil
}

// Delete removes a user from the database by ID.
func (r *UserRepoPG) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return errors.New("invalid user id")
	}

	if err := r.db.WithContext(ctx).Delete(&UserSchema{}, id).Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.Int64("id", id))
		return fmt.Errorf("failed to delete user: %w", err)
	}

	r.log.Info("user deleted in db", zap.Int64("id", id))
	return nil
}

// GetByID retrieves a user by primary key. Returns (nil, nil) when absent.
func (r *UserRepoPG) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, "id = ?", id)
}

// GetByAccountNumber retrieves a user by account number. Returns (nil, nil) when absent.
func (r *UserRepoPG) GetByAccountNumber(ctx context.Context, accountNumber string) (*user.User, error) {
	return r.getOne(ctx, "account_number = ?", accountNumber)
}

// GetByIdentityNumber retrieves a user by identity number. Returns (nil, nil) when absent.
func (r *UserRepoPG) GetByIdentityNumber(ctx context.Context, identityNumber string) (*user.User, error) {
	return r.getOne(ctx, "identity_number = ?", identityNumber)
}

// GetByEmail retrieves a user by email address. Returns (nil, nil) when absent.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, "email_address = ?", email)
}

func (r *UserRepoPG) getOne(ctx context.Context, query string, arg any) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to get user from db", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomain(&model), nil
}

// FindConflicting looks for a record other than excludeID holding any of the
// given unique values. Empty values are skipped. Returns (nil, nil) when no
// conflict exists.
func (r *UserRepoPG) FindConflicting(ctx context.Context, excludeID int64, accountNumber, emailAddress, identityNumber string) (*user.User, error) {
	var conds []string
	var args []any
	if accountNumber != "" {
		conds = append(conds, "account_number = ?")
		args = append(args, accountNumber)
	}
	if emailAddress != "" {
		conds = append(conds, "email_address = ?")
		args = append(args, emailAddress)
	}
	if identityNumber != "" {
		conds = append(conds, "identity_number = ?")
		args = append(args, identityNumber)
	}
	if len(conds) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Where("id <> ?", excludeID)
	or := r.db.Where(conds[0], args[0])
	for i := 1; i < len(conds); i++ {
		or = or.Or(conds[i], args[i])
	}
	query = query.Where(or)

	var model UserSchema
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.log.Error("failed to probe for conflicting user", zap.Error(err), zap.Int64("exclude_id", excludeID))
		return nil, fmt.Errorf("failed to check uniqueness: %w", err)
	}
	return toDomain(&model), nil
}

// List retrieves one page of users ordered by creation time descending,
// along with the total record count.
func (r *UserRepoPG) List(ctx context.Context, page, limit int64) ([]user.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&UserSchema{}).Count(&total).Error; err != nil {
		r.log.Error("failed to count users in db", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	var models []UserSchema
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list users from db", zap.Error(err), zap.Int64("page", page), zap.Int64("limit", limit))
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, total, nil
}

// ListAll retrieves every user ordered by creation time descending.
func (r *UserRepoPG) ListAll(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		r.log.Error("failed to list all users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, len(models))
	for i := range models {
		users[i] = *toDomain(&models[i])
	}

	return users, nil
}
