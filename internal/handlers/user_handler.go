package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/services"
	"socialdb/internal/validation"
)

// UserHandler handles HTTP requests for users.
type UserHandler struct {
	users     *services.UserService
	integrity *services.IntegrityService
	validate  *validation.Validator
	log       *logrus.Entry
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users *services.UserService, integrity *services.IntegrityService, v *validation.Validator, log *logrus.Entry) *UserHandler {
	return &UserHandler{
		users:     users,
		integrity: integrity,
		validate:  v,
		log:       log.WithField("handler", "users"),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Get("/:id", h.HandleGetUserByID)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Patch("/:id", h.HandleChangeUser)
	userRoutes.Delete("/:id", h.HandleDeleteUser)
	// :id is the acting user, the body names the target
	userRoutes.Post("/:id/subscribeTo", h.HandleSubscribe)
	userRoutes.Post("/:id/unsubscribeFrom", h.HandleUnsubscribe)
}

// HandleGetUsers retrieves all users.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.users.GetAll()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve users", err)
	}
	return c.JSON(users)
}

// HandleGetUserByID retrieves a single user by its ID.
func (h *UserHandler) HandleGetUserByID(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve user", err)
	}
	return c.JSON(user)
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var dto models.CreateUserDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	user, err := h.users.Create(dto)
	if err != nil {
		return respondError(c, h.log, "Could not create user", err)
	}
	return c.JSON(user)
}

// HandleChangeUser applies a partial update to a user.
func (h *UserHandler) HandleChangeUser(c *fiber.Ctx) error {
	var dto models.ChangeUserDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	user, err := h.users.Change(c.Params("id"), dto)
	if err != nil {
		return respondChangeError(c, h.log, "Could not update user", err)
	}
	return c.JSON(user)
}

// HandleDeleteUser deletes a user together with its posts, profile and
// follow edges.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	user, err := h.integrity.DeleteUser(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not delete user", err)
	}
	return c.JSON(user)
}

// HandleSubscribe makes the user in the path follow the user in the body and
// responds with the user in the path.
func (h *UserHandler) HandleSubscribe(c *fiber.Ctx) error {
	var dto models.SubscriptionDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	actor, _, err := h.integrity.Subscribe(c.Params("id"), dto.UserID)
	if err != nil {
		return respondError(c, h.log, "Could not subscribe", err)
	}
	return c.JSON(actor)
}

// HandleUnsubscribe removes the follow edge from the user in the path to the
// user in the body.
func (h *UserHandler) HandleUnsubscribe(c *fiber.Ctx) error {
	var dto models.SubscriptionDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	target, err := h.integrity.Unsubscribe(c.Params("id"), dto.UserID)
	if err != nil {
		return respondError(c, h.log, "Could not unsubscribe", err)
	}
	return c.JSON(target)
}
