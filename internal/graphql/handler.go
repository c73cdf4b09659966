package graphql

import (
	"github.com/gofiber/fiber/v2"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/sirupsen/logrus"
)

// Handler serves GraphQL requests over Fiber.
type Handler struct {
	schema *graphql.Schema
	log    *logrus.Entry
}

// NewHandler creates a new Handler.
func NewHandler(schema *graphql.Schema, log *logrus.Entry) *Handler {
	return &Handler{
		schema: schema,
		log:    log.WithField("handler", "graphql"),
	}
}

// RegisterRoutes registers the GraphQL endpoint with the Fiber app.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Post("/graphql", h.HandleQuery)
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandleQuery executes one GraphQL request. Field errors are part of a 200
// response; only an unreadable request is rejected with 400.
func (h *Handler) HandleQuery(c *fiber.Ctx) error {
	var req request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Query is required",
		})
	}

	resp := h.schema.Exec(c.UserContext(), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		h.log.WithFields(logrus.Fields{
			"operation": req.OperationName,
			"errors":    len(resp.Errors),
		}).Debug("GraphQL request completed with errors")
	}
	return c.JSON(resp)
}
