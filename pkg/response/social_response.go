// Package response renders the JSON bodies the client action layer consumes.
package response

import (
	"social_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
)

// MessageBody is the `{msg}` body used for confirmations and non-validation errors.
type MessageBody struct {
	Msg       string `json:"msg"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorsBody is the validation failure body; clients alert each `errors[].msg`.
type ErrorsBody struct {
	Errors    []apperr.FieldError `json:"errors"`
	Code      string              `json:"code,omitempty"`
	RequestID string              `json:"request_id,omitempty"`
}

// OK writes data as-is with status 200. Documents are not wrapped in an envelope.
func OK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(data)
}

// Message writes a `{msg}` body.
func Message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(MessageBody{Msg: msg})
}

// Error renders an AppError. Validation errors keep their field list.
func Error(c *fiber.Ctx, e *apperr.AppError) error {
	requestID, _ := c.Locals("request_id").(string)
	if len(e.Fields) > 0 {
		return c.Status(e.HTTPStatus()).JSON(ErrorsBody{
			Errors:    e.Fields,
			Code:      e.Code,
			RequestID: requestID,
		})
	}
	return c.Status(e.HTTPStatus()).JSON(MessageBody{
		Msg:       e.Message,
		Code:      e.Code,
		RequestID: requestID,
	})
}
