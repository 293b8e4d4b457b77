package postgres

import (
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainerrors "gatehouse/internal/domain/errors"
	"gatehouse/internal/errors"
)

// PostgreSQL error code for unique_violation.
const uniqueViolationCode = "23505"

// Named unique constraints on the users table. These match the index names in
// the migration, which is what lets a rejected insert be pinned to a field.
const (
	usernameConstraint = "users_username_key"
	emailConstraint    = "users_email_key"
)

// classifyUniqueViolation maps a rejected insert onto the domain duplicate
// errors. The driver reports the violated constraint by name; an unrecognized
// unique constraint still surfaces as a generic duplicate. Returns nil when
// err is not a uniqueness violation at all.
func classifyUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case usernameConstraint:
			return domainerrors.ErrDuplicateUsername
		case emailConstraint:
			return domainerrors.ErrDuplicateEmail
		default:
			return domainerrors.ErrDuplicateKey
		}
	}

	// GORM translates driver errors when TranslateError is enabled; keep this
	// as a fallback so classification does not depend on that setting.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainerrors.ErrDuplicateKey
	}

	return nil
}
