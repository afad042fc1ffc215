package cache

import "fmt"

// ListKeyPrefix is the common prefix of every cached list snapshot.
const ListKeyPrefix = "users:list:"

// ListAllKey is the cache key for the unpaginated list snapshot.
const ListAllKey = ListKeyPrefix + "all"

// ListPageKey returns the cache key for one page/limit combination.
func ListPageKey(page, limit int64) string {
	return fmt.Sprintf("%s%d:%d", ListKeyPrefix, page, limit)
}

// AccountKey returns the point-lookup cache key for an account number.
func AccountKey(accountNumber string) string {
	return fmt.Sprintf("user:%s", accountNumber)
}

// IdentityKey returns the point-lookup cache key for an identity number.
func IdentityKey(identityNumber string) string {
	return fmt.Sprintf("user:identity:%s", identityNumber)
}
