package http

import (
	"errors"

	"social_server/core/domain"
	in "social_server/core/port/in"
	"social_server/infra/middleware"
	"social_server/pkg/apperr"
	"social_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ProfileHandler handles profile, experience, education and GitHub routes
type ProfileHandler struct {
	profiles in.ProfileService
	accounts in.AccountService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles in.ProfileService, accounts in.AccountService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, accounts: accounts}
}

// Register registers profile routes
func (h *ProfileHandler) Register(router fiber.Router, auth fiber.Handler) {
	profile := router.Group("/profile")

	// Public
	profile.Get("/", h.List)
	profile.Get("/user/:user_id", h.GetByUser)
	profile.Get("/github/:username", h.GitHubRepos)

	// Private
	profile.Get("/me", auth, h.Me)
	profile.Post("/", auth, middleware.ValidateBody[in.ProfileRequest](), h.Upsert)
	profile.Delete("/", auth, h.DeleteAccount)

	profile.Put("/experience", auth, middleware.ValidateBody[in.ExperienceRequest](), h.AddExperience)
	profile.Delete("/experience/:exp_id", auth, h.DeleteExperience)
	profile.Put("/education", auth, middleware.ValidateBody[in.EducationRequest](), h.AddEducation)
	profile.Delete("/education/:edu_id", auth, h.DeleteEducation)
}

// =============================================================================
// Profile
// =============================================================================

// Me returns the caller's profile
// @Summary Get current user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Router /api/profile/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profiles.GetByUser(c.UserContext(), userID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// List returns all profiles
// @Summary Get all profiles
// @Tags Profile
// @Produce json
// @Success 200 {array} domain.Profile
// @Router /api/profile [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.profiles.List(c.UserContext())
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, profiles)
}

// GetByUser returns the profile of a user
// @Summary Get profile by user ID
// @Tags Profile
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} domain.Profile
// @Router /api/profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c *fiber.Ctx) error {
	userID, err := paramObjectID(c, "user_id", "Profile not found")
	if err != nil {
		return err
	}

	p, err := h.profiles.GetByUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return apperr.NotFound("Profile not found")
		}
		return toAppError(err)
	}
	return response.OK(c, p)
}

// Upsert creates or updates the caller's profile
// @Summary Create or update user profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body in.ProfileRequest true "Profile"
// @Success 200 {object} domain.Profile
// @Router /api/profile [post]
func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profiles.Upsert(c.UserContext(), userID, middleware.Body[in.ProfileRequest](c))
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// DeleteAccount removes the caller's posts, profile and user
// @Summary Delete profile, user & posts
// @Tags Profile
// @Produce json
// @Success 200 {object} response.MessageBody
// @Router /api/profile [delete]
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteAccount(c.UserContext(), userID, GetTokenRef(c)); err != nil {
		return toAppError(err)
	}
	return response.Message(c, fiber.StatusOK, "User removed")
}

// =============================================================================
// Experience / Education
// =============================================================================

// AddExperience adds an experience entry to the caller's profile
// @Summary Add profile experience
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body in.ExperienceRequest true "Experience"
// @Success 200 {object} domain.Profile
// @Router /api/profile/experience [put]
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profiles.AddExperience(c.UserContext(), userID, middleware.Body[in.ExperienceRequest](c))
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// DeleteExperience removes an experience entry
// @Summary Delete experience from profile
// @Tags Profile
// @Produce json
// @Param exp_id path string true "Experience ID"
// @Success 200 {object} domain.Profile
// @Router /api/profile/experience/{exp_id} [delete]
func (h *ProfileHandler) DeleteExperience(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	expID, err := paramObjectID(c, "exp_id", "Experience not found")
	if err != nil {
		return err
	}

	p, err := h.profiles.DeleteExperience(c.UserContext(), userID, expID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// AddEducation adds an education entry to the caller's profile
// @Summary Add profile education
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body in.EducationRequest true "Education"
// @Success 200 {object} domain.Profile
// @Router /api/profile/education [put]
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	p, err := h.profiles.AddEducation(c.UserContext(), userID, middleware.Body[in.EducationRequest](c))
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// DeleteEducation removes an education entry
// @Summary Delete education from profile
// @Tags Profile
// @Produce json
// @Param edu_id path string true "Education ID"
// @Success 200 {object} domain.Profile
// @Router /api/profile/education/{edu_id} [delete]
func (h *ProfileHandler) DeleteEducation(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	eduID, err := paramObjectID(c, "edu_id", "Education not found")
	if err != nil {
		return err
	}

	p, err := h.profiles.DeleteEducation(c.UserContext(), userID, eduID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, p)
}

// =============================================================================
// GitHub
// =============================================================================

// GitHubRepos lists a GitHub user's latest repositories
// @Summary Get user repos from GitHub
// @Tags Profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} domain.Repository
// @Router /api/profile/github/{username} [get]
func (h *ProfileHandler) GitHubRepos(c *fiber.Ctx) error {
	repos, err := h.profiles.GitHubRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		if errors.Is(err, domain.ErrGitHubNotFound) {
			return toAppError(err)
		}
		return apperr.ExternalError("github", err)
	}
	return response.OK(c, repos)
}
