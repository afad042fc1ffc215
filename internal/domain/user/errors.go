package user

import "errors"

// ErrDuplicateKey is returned by the repository when an insert or update
// violates one of the unique constraints (account number, email address,
// identity number).
var ErrDuplicateKey = errors.New("duplicate key violates unique constraint")
