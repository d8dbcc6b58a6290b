package auth

import "github.com/goliatone/go-errors"

const (
	TextCodeMissingFields      = "auth_missing_fields"
	TextCodeDuplicateEmail     = "auth_email_exists"
	TextCodeDuplicateUsername  = "auth_username_exists"
	TextCodeInvalidToken       = "auth_invalid_verification_token"
	TextCodeInvalidCredentials = "auth_invalid_credentials"
	TextCodeEmailNotVerified   = "auth_email_not_verified"
	TextCodeMissingCredentials = "auth_missing_credentials"
	TextCodeTokenExpired       = "auth_token_expired"
	TextCodeTokenMalformed     = "auth_token_malformed"
)

// ErrMissingFields is returned when a payload fails validation.
var ErrMissingFields = errors.New("missing or malformed fields", errors.CategoryValidation).
	WithTextCode(TextCodeMissingFields).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateEmail is returned when a signup email is already registered.
// Duplicates surface as 400, matching the rest of the validation failures.
var ErrDuplicateEmail = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeBadRequest)

// ErrDuplicateUsername is returned when a signup username is already taken.
var ErrDuplicateUsername = errors.New("username already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateUsername).
	WithCode(errors.CodeBadRequest)

// ErrInvalidToken is returned when a verification token is unknown or was
// already consumed. Both cases are indistinguishable to the caller.
var ErrInvalidToken = errors.New("invalid verification token", errors.CategoryBadInput).
	WithTextCode(TextCodeInvalidToken).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredentials is returned for unknown identifiers and for password
// mismatches alike, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrEmailNotVerified is returned when a user signs in before completing the
// verification handshake.
var ErrEmailNotVerified = errors.New("email not verified", errors.CategoryAuth).
	WithTextCode(TextCodeEmailNotVerified).
	WithCode(errors.CodeForbidden)

// ErrMissingCredentials is returned when no bearer token is presented.
var ErrMissingCredentials = errors.New("missing credentials", errors.CategoryAuth).
	WithTextCode(TextCodeMissingCredentials).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is returned for expired session tokens. The auth gate
// reports it to clients with the same class as a malformed token.
var ErrTokenExpired = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is returned for forged, truncated, or otherwise
// undecodable session tokens.
var ErrTokenMalformed = errors.New("invalid credentials", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrNoEmptyString is returned when an empty password reaches the hasher.
var ErrNoEmptyString = errors.New("cannot hash an empty string", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is the sentinel for a password mismatch.
var ErrMismatchedHashAndPassword = errors.New("mismatched hash and password", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
