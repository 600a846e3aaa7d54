package controller

import (
	"context"
	"net/http"
	"time"

	"ai-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	db        *gorm.DB
	endpoints map[string]string
	client    *http.Client
}

// NewHealthController checks the database and the named sidecar base URLs on
// every request. Endpoints with an empty URL should not be passed in.
func NewHealthController(db *gorm.DB, endpoints map[string]string) IHealthController {
	return &healthController{
		db:        db,
		endpoints: endpoints,
		client:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *healthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/health/v1")
	h.Get("", c.Check)
}

// Check always answers 200: the process being able to answer is the liveness
// signal, and each dependency reports its own up/down status alongside.
func (c *healthController) Check(ctx *fiber.Ctx) error {
	services := make(map[string]string, len(c.endpoints)+1)
	services["database"] = c.databaseStatus(ctx.Context())
	for name, baseURL := range c.endpoints {
		services[name] = c.endpointStatus(ctx.Context(), baseURL)
	}

	return ctx.JSON(serverutils.SuccessResponse("OK", fiber.Map{
		"status":   "up",
		"services": services,
	}))
}

func (c *healthController) databaseStatus(ctx context.Context) string {
	if c.db == nil {
		return "down"
	}
	sqlDB, err := c.db.DB()
	if err != nil {
		return "down"
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "down"
	}
	return "up"
}

// endpointStatus treats any HTTP answer as reachable; only transport failures
// count as down.
func (c *healthController) endpointStatus(ctx context.Context, baseURL string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "down"
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return "down"
	}
	resp.Body.Close()
	return "up"
}
