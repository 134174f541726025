package middleware

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"social_server/pkg/apperr"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/gofiber/fiber/v2"
)

const localBody = "validated_body"

// secretParams are never echoed back in validation errors.
var secretParams = map[string]bool{"password": true}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	// required accepts whitespace; notblank does not.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// ValidateBody decodes the JSON body into T and validates it. Failures are
// reported as a field list; each message comes from the field's `msg` tag.
// Handlers read the result with Body[T].
func ValidateBody[T any]() fiber.Handler {
	var zero T
	typ := reflect.TypeOf(zero)

	return func(c *fiber.Ctx) error {
		req := new(T)
		if len(c.Body()) > 0 {
			if err := c.BodyParser(req); err != nil {
				return apperr.BadRequest("Invalid request body")
			}
		}

		if err := validate.Struct(req); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return apperr.InternalWithError(fmt.Errorf("validate %s: %w", typ.Name(), err))
			}
			return apperr.ValidationFailed(fieldErrors(typ, verrs)...)
		}

		c.Locals(localBody, req)
		return c.Next()
	}
}

// Body returns the request body validated by ValidateBody[T].
func Body[T any](c *fiber.Ctx) *T {
	req, _ := c.Locals(localBody).(*T)
	return req
}

func fieldErrors(typ reflect.Type, verrs validator.ValidationErrors) []apperr.FieldError {
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		msg := ""
		if sf, ok := typ.FieldByName(fe.StructField()); ok {
			msg = sf.Tag.Get("msg")
		}
		if msg == "" {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}

		entry := apperr.FieldError{
			Msg:      msg,
			Param:    fe.Field(),
			Location: "body",
		}
		if !secretParams[fe.Field()] {
			entry.Value = fe.Value()
		}
		fields = append(fields, entry)
	}
	return fields
}
