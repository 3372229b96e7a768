package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// cacheHealthChecker is nil when no cache is configured.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  status(h.dbHealthChecker, "connected", "disconnected"),
		Cache:     status(h.cacheHealthChecker, "connected", "disconnected"),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if h.cacheHealthChecker == nil {
		response.Cache = "disabled"
	}

	c.JSON(http.StatusOK, response)
}

func status(check func() bool, up, down string) string {
	if check != nil && check() {
		return up
	}
	return down
}
