package lists

import "github.com/goliatone/go-errors"

const (
	TextCodeMissingFields      = "lists_missing_fields"
	TextCodeProjectNotFound    = "lists_project_not_found"
	TextCodeNotFoundOrNotOwned = "lists_not_found_or_not_owned"
	TextCodeDuplicateEmail     = "lists_email_exists"
	TextCodeEmailNotFound      = "lists_email_not_found"
)

// ErrMissingFields is returned when a payload fails validation.
var ErrMissingFields = errors.New("missing or malformed fields", errors.CategoryValidation).
	WithTextCode(TextCodeMissingFields).
	WithCode(errors.CodeBadRequest)

// ErrProjectNotFound is returned by the public collection endpoint when the
// target project does not exist.
var ErrProjectNotFound = errors.New("project not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProjectNotFound).
	WithCode(errors.CodeNotFound)

// ErrNotFoundOrNotOwned is returned when a project is absent or belongs to
// someone else. The two cases are deliberately indistinguishable so the
// response never confirms that a foreign project exists.
var ErrNotFoundOrNotOwned = errors.New("project not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFoundOrNotOwned).
	WithCode(errors.CodeNotFound)

// ErrDuplicateEmail is returned when an address was already collected for
// the project.
var ErrDuplicateEmail = errors.New("email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeBadRequest)

// ErrEmailNotFound is returned when a collected address is absent under the
// caller's project.
var ErrEmailNotFound = errors.New("email not found", errors.CategoryNotFound).
	WithTextCode(TextCodeEmailNotFound).
	WithCode(errors.CodeNotFound)
