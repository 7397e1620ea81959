// Package store persists users, profiles and posts in PostgreSQL.
package store

import (
	"database/sql"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const (
	uniqueViolation   = "23505"
	invalidTextSyntax = "22P02"
	usersEmailKey     = "users_email_key"
	profilesHandleKey = "profiles_handle_key"
	profilesUserIDKey = "profiles_user_id_key"
)

// ErrProfileExists is returned by ProfileStore.Create when the user already
// has a profile, typically because a concurrent request created it first.
var ErrProfileExists = errors.New("profile already exists for user")

// ListParams pages and filters a listing. A zero Limit returns every row.
type ListParams struct {
	Limit   int
	Offset  int
	Pattern string
}

func pqCode(err error) (pq.ErrorCode, string) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code, pqErr.Constraint
	}
	return "", ""
}

func isUniqueViolation(err error, constraint string) bool {
	code, name := pqCode(err)
	return code == uniqueViolation && (constraint == "" || name == constraint)
}

// isMissing reports whether err means the addressed row cannot exist: no rows,
// or an id that is not a valid UUID.
func isMissing(err error) bool {
	if errors.Is(err, sql.ErrNoRows) {
		return true
	}
	code, _ := pqCode(err)
	return code == invalidTextSyntax
}
