package http

import (
	"social_server/core/domain"
	in "social_server/core/port/in"
	"social_server/infra/middleware"
	"social_server/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PostHandler handles post, like and comment routes. All routes are private.
type PostHandler struct {
	service in.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(service in.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Register registers post routes
func (h *PostHandler) Register(router fiber.Router, auth fiber.Handler) {
	posts := router.Group("/posts", auth)

	posts.Post("/", middleware.ValidateBody[in.PostRequest](), h.Create)
	posts.Get("/", h.List)
	posts.Get("/:id", h.Get)
	posts.Delete("/:id", h.Delete)

	posts.Put("/like/:id", h.Like)
	posts.Put("/unlike/:id", h.Unlike)

	posts.Post("/comment/:id", middleware.ValidateBody[in.CommentRequest](), h.AddComment)
	posts.Delete("/comment/:id/:comment_id", h.DeleteComment)
}

// Create publishes a post
// @Summary Create a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param request body in.PostRequest true "Post"
// @Success 200 {object} domain.Post
// @Router /api/posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Create(c.UserContext(), userID, middleware.Body[in.PostRequest](c))
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, post)
}

// List returns all posts, newest first
// @Summary Get all posts
// @Tags Posts
// @Produce json
// @Success 200 {array} domain.Post
// @Router /api/posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	posts, err := h.service.List(c.UserContext())
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, posts)
}

// Get returns a post
// @Summary Get post by ID
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} domain.Post
// @Router /api/posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}

	post, err := h.service.Get(c.UserContext(), postID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, post)
}

// Delete removes a post owned by the caller
// @Summary Delete a post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.MessageBody
// @Router /api/posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), userID, postID); err != nil {
		return toAppError(err)
	}
	return response.Message(c, fiber.StatusOK, "Post deleted")
}

// Like likes a post
// @Summary Like a post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} domain.Like
// @Router /api/posts/like/{id} [put]
func (h *PostHandler) Like(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}

	likes, err := h.service.Like(c.UserContext(), userID, postID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, likes)
}

// Unlike removes the caller's like
// @Summary Unlike a post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} domain.Like
// @Router /api/posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}

	likes, err := h.service.Unlike(c.UserContext(), userID, postID)
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, likes)
}

// AddComment comments on a post
// @Summary Comment on a post
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param request body in.CommentRequest true "Comment"
// @Success 200 {array} domain.Comment
// @Router /api/posts/comment/{id} [post]
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}

	comments, err := h.service.AddComment(c.UserContext(), userID, postID, middleware.Body[in.CommentRequest](c))
	if err != nil {
		return toAppError(err)
	}
	return response.OK(c, comments)
}

// DeleteComment removes a comment
// @Summary Delete comment
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Param comment_id path string true "Comment ID"
// @Success 200 {object} response.MessageBody
// @Router /api/posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) DeleteComment(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}
	postID, err := paramObjectID(c, "id", "Post not found")
	if err != nil {
		return err
	}
	commentID, err := paramObjectID(c, "comment_id", "Comment not found")
	if err != nil {
		return err
	}

	by, err := h.service.DeleteComment(c.UserContext(), userID, postID, commentID)
	if err != nil {
		return toAppError(err)
	}

	if by == domain.RemovedByPostAuthor {
		return response.Message(c, fiber.StatusOK, "Comment deleted by author of the post.")
	}
	return response.Message(c, fiber.StatusOK, "Comment deleted.")
}
