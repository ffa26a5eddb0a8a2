package controllers

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	ghingestor "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Ingestor"
	logger "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Logger"
)

// HealthController reports the state of the database and the MQTT connection
type HealthController struct {
	db       *sql.DB
	ingestor *ghingestor.Ingestor
	logger   *logger.Logger
}

func NewHealthController(db *sql.DB, ingestor *ghingestor.Ingestor, log *logger.Logger) *HealthController {
	return &HealthController{db: db, ingestor: ingestor, logger: log}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", c.GetHealth)
}

func (c *HealthController) GetHealth(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "connected"
	if err := c.db.PingContext(checkCtx); err != nil {
		dbStatus = "disconnected"
	}

	mqttStatus := "connected"
	if !c.ingestor.IsConnected() {
		mqttStatus = "disconnected"
	}

	status := "healthy"
	code := http.StatusOK
	if dbStatus != "connected" || mqttStatus != "connected" {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"services": gin.H{
			"database": dbStatus,
			"mqtt":     mqttStatus,
		},
	})
}
