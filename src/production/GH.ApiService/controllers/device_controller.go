package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Logger"
	interfaces "gitlab.com/greenhouse1/gh.mqtt_server/src/production/GH.Repository/Interfaces"
)

// DeviceController serves read-only device data to collaborating services
type DeviceController struct {
	deviceRepo    interfaces.DeviceRepository
	telemetryRepo interfaces.TelemetryRepository
	statusRepo    interfaces.StatusRepository
	logger        *logger.Logger
}

func NewDeviceController(deviceRepo interfaces.DeviceRepository, telemetryRepo interfaces.TelemetryRepository, statusRepo interfaces.StatusRepository, log *logger.Logger) *DeviceController {
	return &DeviceController{
		deviceRepo:    deviceRepo,
		telemetryRepo: telemetryRepo,
		statusRepo:    statusRepo,
		logger:        log,
	}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(router *gin.Engine) {
	devices := router.Group("/devices")
	{
		devices.GET("", c.ListDevices)
		devices.GET("/:device_id/telemetry", c.GetDeviceTelemetry)
		devices.GET("/:device_id/status", c.GetDeviceStatus)
	}
}

func (c *DeviceController) ListDevices(ctx *gin.Context) {
	devices, err := c.deviceRepo.ListDevices(ctx)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": devices})
}

func (c *DeviceController) GetDeviceTelemetry(ctx *gin.Context) {
	deviceID := ctx.Param("device_id")
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "100"))

	// Out-of-range limits are clamped by the repository, not rejected
	readings, err := c.telemetryRepo.GetReadingsByDevice(ctx, deviceID, limit)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"items": readings})
}

func (c *DeviceController) GetDeviceStatus(ctx *gin.Context) {
	deviceID := ctx.Param("device_id")

	record, err := c.statusRepo.GetStatus(ctx, deviceID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "no status reported for device"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"device_id":   record.DeviceID,
		"status":      record.Status,
		"reported_at": record.ReportedAt,
		"online":      record.Online(time.Now().UTC()),
	})
}
