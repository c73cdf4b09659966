package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/services"
	"socialdb/internal/validation"
)

// PostHandler handles HTTP requests for posts.
type PostHandler struct {
	service  *services.PostService
	validate *validation.Validator
	log      *logrus.Entry
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(service *services.PostService, v *validation.Validator, log *logrus.Entry) *PostHandler {
	return &PostHandler{
		service:  service,
		validate: v,
		log:      log.WithField("handler", "posts"),
	}
}

// RegisterRoutes registers the post routes with the Fiber app.
func (h *PostHandler) RegisterRoutes(router fiber.Router) {
	postRoutes := router.Group("/posts")
	postRoutes.Get("/", h.HandleGetPosts)
	postRoutes.Get("/:id", h.HandleGetPostByID)
	postRoutes.Post("/", h.HandleCreatePost)
	postRoutes.Patch("/:id", h.HandleChangePost)
	postRoutes.Delete("/:id", h.HandleDeletePost)
}

func (h *PostHandler) HandleGetPosts(c *fiber.Ctx) error {
	posts, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve posts", err)
	}
	return c.JSON(posts)
}

func (h *PostHandler) HandleGetPostByID(c *fiber.Ctx) error {
	post, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve post", err)
	}
	return c.JSON(post)
}

func (h *PostHandler) HandleCreatePost(c *fiber.Ctx) error {
	var dto models.CreatePostDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	post, err := h.service.Create(dto)
	if err != nil {
		return respondError(c, h.log, "Could not create post", err)
	}
	return c.JSON(post)
}

func (h *PostHandler) HandleChangePost(c *fiber.Ctx) error {
	var dto models.ChangePostDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	post, err := h.service.Change(c.Params("id"), dto)
	if err != nil {
		return respondChangeError(c, h.log, "Could not update post", err)
	}
	return c.JSON(post)
}

func (h *PostHandler) HandleDeletePost(c *fiber.Ctx) error {
	post, err := h.service.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not delete post", err)
	}
	return c.JSON(post)
}
