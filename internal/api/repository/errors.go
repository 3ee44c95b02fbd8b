package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// IsUniqueViolation reports whether err is a uniqueness-constraint failure.
// The business rules pre-check uniqueness before inserting, but two requests
// can race past that check; the constraint is the authoritative guard and its
// violation must surface as a conflict, not a server fault.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// sqlite (local dev and tests) has no typed error here
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
