package middleware_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialdb/internal/middleware"
)

func TestRequestLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	app := fiber.New()
	app.Use(middleware.RequestLogger(logrus.NewEntry(l)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/bad", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusBadRequest) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusServiceUnavailable, "down") })

	tests := []struct {
		path   string
		status int
		level  logrus.Level
	}{
		{"/ok", fiber.StatusOK, logrus.InfoLevel},
		{"/bad", fiber.StatusBadRequest, logrus.WarnLevel},
		{"/boom", fiber.StatusServiceUnavailable, logrus.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			hook.Reset()
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, tt.level, entry.Level)
			assert.Equal(t, tt.path, entry.Data["path"])
			assert.Equal(t, tt.status, entry.Data["status"])
		})
	}
}
