package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/services"
	"socialdb/internal/validation"
)

// ProfileHandler handles HTTP requests for profiles.
type ProfileHandler struct {
	service  *services.ProfileService
	validate *validation.Validator
	log      *logrus.Entry
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(service *services.ProfileService, v *validation.Validator, log *logrus.Entry) *ProfileHandler {
	return &ProfileHandler{
		service:  service,
		validate: v,
		log:      log.WithField("handler", "profiles"),
	}
}

// RegisterRoutes registers the profile routes with the Fiber app.
func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	profileRoutes := router.Group("/profiles")
	profileRoutes.Get("/", h.HandleGetProfiles)
	profileRoutes.Get("/:id", h.HandleGetProfileByID)
	profileRoutes.Post("/", h.HandleCreateProfile)
	profileRoutes.Patch("/:id", h.HandleChangeProfile)
	profileRoutes.Delete("/:id", h.HandleDeleteProfile)
}

func (h *ProfileHandler) HandleGetProfiles(c *fiber.Ctx) error {
	profiles, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve profiles", err)
	}
	return c.JSON(profiles)
}

func (h *ProfileHandler) HandleGetProfileByID(c *fiber.Ctx) error {
	profile, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve profile", err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) HandleCreateProfile(c *fiber.Ctx) error {
	var dto models.CreateProfileDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	profile, err := h.service.Create(dto)
	if err != nil {
		return respondError(c, h.log, "Could not create profile", err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) HandleChangeProfile(c *fiber.Ctx) error {
	var dto models.ChangeProfileDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	profile, err := h.service.Change(c.Params("id"), dto)
	if err != nil {
		return respondChangeError(c, h.log, "Could not update profile", err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) HandleDeleteProfile(c *fiber.Ctx) error {
	profile, err := h.service.Delete(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not delete profile", err)
	}
	return c.JSON(profile)
}
