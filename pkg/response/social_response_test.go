package response

import (
	"io"
	"net/http/httptest"
	"testing"

	"social_server/pkg/apperr"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, h fiber.Handler) (int, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		c.Locals("request_id", "req-1")
		return h(c)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestOK_NoEnvelope(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return OK(c, []string{"a", "b"})
	})
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `["a","b"]`, body)
}

func TestMessage(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return Message(c, 200, "Post deleted")
	})
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"msg":"Post deleted"}`, body)
}

func TestError(t *testing.T) {
	status, body := render(t, func(c *fiber.Ctx) error {
		return Error(c, apperr.NotFound("Post not found"))
	})
	assert.Equal(t, 404, status)
	assert.JSONEq(t, `{"msg":"Post not found","code":"`+apperr.CodeNotFound+`","request_id":"req-1"}`, body)

	status, body = render(t, func(c *fiber.Ctx) error {
		return Error(c, apperr.ValidationFailed(apperr.FieldError{Msg: "Text is required", Param: "text", Location: "body"}))
	})
	assert.Equal(t, 400, status)
	assert.JSONEq(t, `{"errors":[{"msg":"Text is required","param":"text","location":"body"}],"code":"`+apperr.CodeValidationFailed+`","request_id":"req-1"}`, body)
}
