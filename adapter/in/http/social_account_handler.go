package http

import (
	in "social_server/core/port/in"
	"social_server/infra/middleware"
	"social_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler handles registration, login and the current-user lookup
type AccountHandler struct {
	service in.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(service in.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register registers user and auth routes. limit guards the public
// credential endpoints.
func (h *AccountHandler) Register(router fiber.Router, auth, limit fiber.Handler) {
	router.Post("/users", limit, middleware.ValidateBody[in.RegisterRequest](), h.Signup)

	router.Get("/auth", auth, h.Me)
	router.Post("/auth", limit, middleware.ValidateBody[in.LoginRequest](), h.Login)
}

// Signup registers a user
// @Summary Register user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body in.RegisterRequest true "Registration"
// @Success 200 {object} in.TokenResponse
// @Router /api/users [post]
func (h *AccountHandler) Signup(c *fiber.Ctx) error {
	req := middleware.Body[in.RegisterRequest](c)

	token, err := h.service.Register(c.UserContext(), req)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, token)
}

// Login authenticates a user and returns a token
// @Summary Authenticate user & get token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body in.LoginRequest true "Credentials"
// @Success 200 {object} in.TokenResponse
// @Router /api/auth [post]
func (h *AccountHandler) Login(c *fiber.Ctx) error {
	req := middleware.Body[in.LoginRequest](c)

	token, err := h.service.Login(c.UserContext(), req)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, token)
}

// Me returns the authenticated user without the password hash
// @Summary Get current user
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.User
// @Router /api/auth [get]
func (h *AccountHandler) Me(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	user, err := h.service.CurrentUser(c.UserContext(), userID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, user)
}
