package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/repository"
)

const healthCheckTimeout = 2 * time.Second

type HealthHandler struct {
	db      repository.Pinger
	version string
	started time.Time
	log     *logrus.Logger
}

func NewHealthHandler(db repository.Pinger, version string, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{db: db, version: version, started: time.Now(), log: log}
}

type CheckResult struct {
	Status    string `json:"status"`
	LatencyMS int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status        string                 `json:"status"`
	Timestamp     time.Time              `json:"timestamp"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Version       string                 `json:"version"`
	Checks        map[string]CheckResult `json:"checks"`
}

// Health reports overall status with per-dependency checks.
func (h *HealthHandler) Health(c *gin.Context) {
	db := h.checkDatabase(c.Request.Context())

	resp := HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		UptimeSeconds: int64(time.Since(h.started).Seconds()),
		Version:       h.version,
		Checks:        map[string]CheckResult{"database": db},
	}
	code := http.StatusOK
	if db.Status != "healthy" {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}

// Live only proves the process serves HTTP.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}

// Ready reports whether the service can take traffic.
func (h *HealthHandler) Ready(c *gin.Context) {
	if db := h.checkDatabase(c.Request.Context()); db.Status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "reason": "Database connectivity issues"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	res := CheckResult{Status: "healthy", LatencyMS: time.Since(start).Milliseconds()}
	if err != nil {
		h.log.WithError(err).Warn("database health check failed")
		res.Status = "unhealthy"
		res.Error = err.Error()
	}
	return res
}
