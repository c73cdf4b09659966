package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"socialdb/internal/repositories"
)

// HealthHandler reports liveness and the size of each store.
type HealthHandler struct {
	db     *repositories.DB
	events func() string
}

// NewHealthHandler creates a new HealthHandler. events reports the state of
// the event publisher, e.g. "connected", "disconnected" or "disabled".
func NewHealthHandler(db *repositories.DB, events func() string) *HealthHandler {
	return &HealthHandler{db: db, events: events}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	counts := fiber.Map{}
	for name, count := range map[string]func() (int, error){
		"users":       h.db.Users().Count,
		"profiles":    h.db.Profiles().Count,
		"posts":       h.db.Posts().Count,
		"memberTypes": h.db.MemberTypes().Count,
	} {
		n, err := count()
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		counts[name] = n
	}
	events := "disabled"
	if h.events != nil {
		events = h.events()
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
		"events": events,
		"stores": counts,
	})
}
