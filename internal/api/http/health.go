package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HealthResponse reports process liveness plus the state of the Postgres
// dependency. Redis and object storage are optional at runtime, so only
// the database is probed here.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Postgres  string    `json:"postgres"`
}

type HealthHandler struct {
	serviceName string
	version     string
	db          *pgxpool.Pool
}

func NewHealthHandler(serviceName, version string, db *pgxpool.Pool) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, db: db}
}

// HealthCheck always answers 200: the process is up, and the Postgres
// field tells load balancers and dashboards whether reads can succeed.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	dbStatus := "disabled"
	if h.db != nil {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		dbStatus = "up"
		if err := h.db.Ping(pingCtx); err != nil {
			dbStatus = "down"
		}
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		Postgres:  dbStatus,
	})
}

// RegisterRoutes exposes the probe under both common spellings.
func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
