package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/models"
	"github.com/relief-grid/api-go/services"
	"gorm.io/gorm"
)

type DisasterController struct {
	DB        *gorm.DB
	Lifecycle *services.LifecycleService
}

func NewDisasterController(db *gorm.DB, lifecycle *services.LifecycleService) *DisasterController {
	return &DisasterController{DB: db, Lifecycle: lifecycle}
}

type VerifyInput struct {
	Approve bool     `json:"approve"`
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
}

// ListPending godoc
// @Summary List disaster reports awaiting verification
// @Tags disasters
// @Produce json
// @Success 200 {array} models.DisasterReport
// @Router /disasters/pending [get]
func (dc *DisasterController) ListPending(c *gin.Context) {
	var reports []models.DisasterReport
	if err := dc.DB.Where("status = ?", models.ReportPending).Order("id ASC").Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list pending reports"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// ListActive godoc
// @Summary List approved disasters with a non-deactivated alert
// @Tags disasters
// @Produce json
// @Success 200 {array} models.DisasterReport
// @Router /disasters/active [get]
func (dc *DisasterController) ListActive(c *gin.Context) {
	var reports []models.DisasterReport
	err := dc.DB.
		Joins("JOIN disaster_alerts ON disaster_alerts.disaster_id = disaster_reports.id").
		Where("disaster_reports.status = ? AND disaster_alerts.deactivated_at IS NULL", models.ReportApproved).
		Order("disaster_reports.id ASC").
		Find(&reports).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list active disasters"})
		return
	}
	c.JSON(http.StatusOK, reports)
}

// Verify godoc
// @Summary Approve or reject a pending report
// @Description Approval activates the alert and fans out geofenced notifications
// @Tags disasters
// @Accept json
// @Produce json
// @Param id path int true "Report ID"
// @Param payload body VerifyInput true "Verification decision"
// @Success 200 {object} map[string]interface{}
// @Router /disasters/{id}/verify [post]
func (dc *DisasterController) Verify(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	var input VerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if (input.Lat == nil) != (input.Lng == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be provided together"})
		return
	}

	report, queued, err := dc.Lifecycle.Verify(uint(reportID), input.Approve, input.Lat, input.Lng)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Report already processed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify report"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": report.Status, "queued_alerts": queued})
}

// Deactivate retires the active alert of an approved disaster. The
// report status stays approved; the disaster just stops fanning out.
func (dc *DisasterController) Deactivate(c *gin.Context) {
	reportID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	report, err := dc.Lifecycle.Deactivate(uint(reportID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		case errors.Is(err, services.ErrInvalidState):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active alert for this report"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate alert"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": report.Status, "active": false})
}
