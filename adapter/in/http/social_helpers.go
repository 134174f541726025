package http

import (
	"errors"
	"time"

	"social_server/core/domain"
	"social_server/core/port/in"
	"social_server/infra/middleware"
	"social_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GetUserID extracts the authenticated user id set by middleware.JWTAuth.
func GetUserID(c *fiber.Ctx) (primitive.ObjectID, error) {
	userID, ok := c.Locals(middleware.LocalUserID).(primitive.ObjectID)
	if !ok || userID.IsZero() {
		return primitive.NilObjectID, apperr.NoToken()
	}
	return userID, nil
}

// GetTokenRef returns the access token of the current request.
func GetTokenRef(c *fiber.Ctx) *in.TokenRef {
	id, _ := c.Locals(middleware.LocalTokenID).(string)
	exp, _ := c.Locals(middleware.LocalTokenExpiresAt).(time.Time)
	if id == "" {
		return nil
	}
	return &in.TokenRef{ID: id, ExpiresAt: exp}
}

// paramObjectID parses a path parameter. Malformed ids are reported as
// not found, the same as well-formed ids that match nothing.
func paramObjectID(c *fiber.Ctx, name, notFoundMsg string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, apperr.NotFound(notFoundMsg)
	}
	return id, nil
}

// toAppError maps core errors to HTTP errors. Anything unrecognised is a 500.
func toAppError(err error) error {
	var fieldErr *domain.FieldError
	switch {
	case errors.As(err, &fieldErr):
		return apperr.ValidationFailed(apperr.FieldError{
			Msg:      fieldErr.Message,
			Param:    fieldErr.Field,
			Location: "body",
			Value:    fieldErr.Value,
		})

	case errors.Is(err, domain.ErrUserExists):
		return apperr.AlreadyExists("User already exists")
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apperr.ValidationFailed(apperr.FieldError{Msg: "Invalid Credentials"})
	case errors.Is(err, domain.ErrUserNotFound):
		return apperr.NotFound("User not found")

	case errors.Is(err, domain.ErrProfileNotFound):
		return apperr.NotFound("There is no profile for this user")
	case errors.Is(err, domain.ErrExperienceNotFound):
		return apperr.NotFound("Experience not found")
	case errors.Is(err, domain.ErrEducationNotFound):
		return apperr.NotFound("Education not found")
	case errors.Is(err, domain.ErrGitHubNotFound):
		return apperr.NotFound("No Github profile found")

	case errors.Is(err, domain.ErrPostNotFound):
		return apperr.NotFound("Post not found")
	case errors.Is(err, domain.ErrCommentNotFound):
		return apperr.NotFound("Comment not found")
	case errors.Is(err, domain.ErrAlreadyLiked):
		return apperr.BadRequest("Post already liked")
	case errors.Is(err, domain.ErrNotLiked):
		return apperr.BadRequest("Post has not yet been liked")
	case errors.Is(err, domain.ErrNotPostAuthor):
		return apperr.Unauthorized("User not authorized")
	case errors.Is(err, domain.ErrCommentForbidden):
		return apperr.Unauthorized("You can not delete comments of other users.")

	case apperr.IsAppError(err):
		return err
	default:
		return apperr.InternalWithError(err)
	}
}
