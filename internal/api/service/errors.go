package service

import "errors"

// Sentinel errors returned by the service layer. Handlers translate them to
// HTTP statuses through the Is* class predicates below.
var (
	// validation (bad field values)
	ErrReservedUsername = errors.New("username 'me' is reserved")
	ErrInvalidUsername  = errors.New("username may only contain letters, digits and @/./+/-/_")
	ErrInvalidSlug      = errors.New("slug may only contain letters, digits, hyphens and underscores")
	ErrScoreOutOfRange  = errors.New("score must be between 1 and 10")
	ErrYearOutOfRange   = errors.New("year must be between 0 and the current year")
	ErrInvalidRole      = errors.New("unknown role")
	ErrInvalidCode      = errors.New("invalid or expired confirmation code")
	ErrUnknownCategory  = errors.New("category slug does not exist")
	ErrUnknownGenre     = errors.New("genre slug does not exist")

	// conflicts (uniqueness violations)
	ErrUsernameInUse = errors.New("username already in use")
	ErrEmailInUse    = errors.New("email already in use")
	ErrSlugInUse     = errors.New("slug already in use")
	ErrReviewExists  = errors.New("review already submitted for this title")

	// missing resources
	ErrUserNotFound     = errors.New("user not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrTitleNotFound    = errors.New("title not found")
	ErrReviewNotFound   = errors.New("review not found")
	ErrCommentNotFound  = errors.New("comment not found")

	// access
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

var validationErrors = []error{
	ErrReservedUsername, ErrInvalidUsername, ErrInvalidSlug,
	ErrScoreOutOfRange, ErrYearOutOfRange, ErrInvalidRole,
	ErrInvalidCode, ErrUnknownCategory, ErrUnknownGenre,
}

var conflictErrors = []error{
	ErrUsernameInUse, ErrEmailInUse, ErrSlugInUse, ErrReviewExists,
}

var notFoundErrors = []error{
	ErrUserNotFound, ErrCategoryNotFound, ErrGenreNotFound,
	ErrTitleNotFound, ErrReviewNotFound, ErrCommentNotFound,
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsValidation reports whether err is a malformed or out-of-range field.
func IsValidation(err error) bool { return isAny(err, validationErrors) }

// IsConflict reports whether err is a uniqueness violation.
func IsConflict(err error) bool { return isAny(err, conflictErrors) }

// IsNotFound reports whether err is a missing parent or target resource.
func IsNotFound(err error) bool { return isAny(err, notFoundErrors) }

// IsPermission reports an authenticated actor lacking role or ownership.
func IsPermission(err error) bool { return errors.Is(err, ErrForbidden) }

// IsAuthentication reports missing or invalid credentials.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrInvalidToken)
}
