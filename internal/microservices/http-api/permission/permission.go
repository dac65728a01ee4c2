// Package permission holds the access rules of the API as pure predicates
// over the caller, the HTTP method and, where relevant, the resource author.
// A nil user is an anonymous caller.
package permission

import (
	"errors"
	"net/http"

	"yamdb/internal/microservices/http-api/models"
)

var (
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")
)

// IsSafeMethod reports whether method only reads.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// IsAuthenticated reports whether the caller is a known user.
func IsAuthenticated(user *models.User) bool {
	return user != nil
}

// IsAdminOrSuperuser allows administrators only.
func IsAdminOrSuperuser(user *models.User) bool {
	return user != nil && user.IsAdmin()
}

// IsAdminOrReadOnly allows reads to everyone and writes to administrators.
func IsAdminOrReadOnly(user *models.User, method string) bool {
	return IsSafeMethod(method) || IsAdminOrSuperuser(user)
}

// ReviewCommentPermission guards reviews and comments. Reads are public,
// creation needs an account, and changing an existing entry needs its author
// or a moderator or administrator. authorID is ignored for creation.
func ReviewCommentPermission(user *models.User, method, authorID string) bool {
	if IsSafeMethod(method) {
		return true
	}
	if user == nil {
		return false
	}
	if method == http.MethodPost {
		return true
	}
	return user.ID == authorID || user.IsModerator() || user.IsAdmin()
}

// Check turns a predicate result into an error: anonymous callers get
// ErrNotAuthenticated and known users ErrPermissionDenied.
func Check(user *models.User, allowed bool) error {
	if allowed {
		return nil
	}
	if user == nil {
		return ErrNotAuthenticated
	}
	return ErrPermissionDenied
}
