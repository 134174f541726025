package domain

import "errors"

// Sentinel errors returned by the core services. Handlers translate them into
// HTTP responses.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")
	ErrGitHubNotFound     = errors.New("github profile not found")

	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post has not yet been liked")
	ErrNotPostAuthor    = errors.New("user is not the author of the post")
	ErrCommentForbidden = errors.New("user can not delete comments of other users")

	ErrInvalidInput = errors.New("invalid input")
)

// FieldError describes a single rejected request field.
type FieldError struct {
	Field   string
	Message string
	Value   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewFieldError returns an error matching ErrInvalidInput.
func NewFieldError(field, message, value string) error {
	return &FieldError{Field: field, Message: message, Value: value}
}
