// handlers/health_handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rriehl64/collibra-app-sub009/utils"
)

// Pinger is satisfied by *database.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthCheckResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

var startTime = time.Now()

// Version is set at build time with -ldflags.
var Version = "dev"

func HealthCheck(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := HealthCheckResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
			Database:  "connected",
			Version:   Version,
			Uptime:    time.Since(startTime).Round(time.Second).String(),
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		code := http.StatusOK
		if db == nil || db.Ping(ctx) != nil {
			response.Status = "unhealthy"
			response.Database = "disconnected"
			code = http.StatusServiceUnavailable
		}
		utils.RespondWithJSON(w, code, response)
	}
}
