package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"socialdb/internal/models"
	"socialdb/internal/services"
	"socialdb/internal/validation"
)

// MemberTypeHandler handles HTTP requests for member types. The set of tiers
// is fixed, so there is no create or delete.
type MemberTypeHandler struct {
	service  *services.MemberTypeService
	validate *validation.Validator
	log      *logrus.Entry
}

func NewMemberTypeHandler(service *services.MemberTypeService, v *validation.Validator, log *logrus.Entry) *MemberTypeHandler {
	return &MemberTypeHandler{
		service:  service,
		validate: v,
		log:      log.WithField("handler", "member-types"),
	}
}

func (h *MemberTypeHandler) RegisterRoutes(router fiber.Router) {
	memberTypeRoutes := router.Group("/member-types")
	memberTypeRoutes.Get("/", h.HandleGetMemberTypes)
	memberTypeRoutes.Get("/:id", h.HandleGetMemberTypeByID)
	memberTypeRoutes.Patch("/:id", h.HandleChangeMemberType)
}

func (h *MemberTypeHandler) HandleGetMemberTypes(c *fiber.Ctx) error {
	types, err := h.service.GetAll()
	if err != nil {
		return respondError(c, h.log, "Could not retrieve member types", err)
	}
	return c.JSON(types)
}

func (h *MemberTypeHandler) HandleGetMemberTypeByID(c *fiber.Ctx) error {
	mt, err := h.service.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, h.log, "Could not retrieve member type", err)
	}
	return c.JSON(mt)
}

func (h *MemberTypeHandler) HandleChangeMemberType(c *fiber.Ctx) error {
	var dto models.ChangeMemberTypeDTO
	if handled, err := parseBody(c, h.validate, &dto); handled {
		return err
	}
	mt, err := h.service.Change(c.Params("id"), dto)
	if err != nil {
		return respondChangeError(c, h.log, "Could not update member type", err)
	}
	return c.JSON(mt)
}
