package user

import "time"

// User represents a user record in the system.
type User struct {
	ID             int64     // ID is the system-generated, immutable identifier
	UserName       string    // UserName is the display name of the user
	AccountNumber  string    // AccountNumber is the unique account identifier
	EmailAddress   string    // EmailAddress is the unique email address
	IdentityNumber string    // IdentityNumber is the unique identity number
	PasswordHash   string    // PasswordHash is never serialized in any read path
	CreatedAt      time.Time // CreatedAt is set by the store on insert
	UpdatedAt      time.Time // UpdatedAt is set by the store on every write
}
