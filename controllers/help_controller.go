package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/models"
	"gorm.io/gorm"
)

type HelpController struct {
	DB *gorm.DB
}

func NewHelpController(db *gorm.DB) *HelpController {
	return &HelpController{DB: db}
}

// helpRank orders statuses for the forward-only manual progression.
var helpRank = map[models.HelpStatus]int{
	models.HelpOpen:     0,
	models.HelpAck:      1,
	models.HelpResolved: 2,
}

type HelpStatusInput struct {
	Status models.HelpStatus `json:"status" binding:"required"`
}

// ListOpen godoc
// @Summary List open help requests
// @Tags help
// @Produce json
// @Success 200 {array} models.HelpRequest
// @Router /messages/help [get]
func (hc *HelpController) ListOpen(c *gin.Context) {
	var requests []models.HelpRequest
	if err := hc.DB.Where("status = ?", models.HelpOpen).Order("id ASC").Find(&requests).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list help requests"})
		return
	}
	c.JSON(http.StatusOK, requests)
}

// UpdateStatus advances one help request along open -> ack -> resolved.
// Moving backwards is rejected.
func (hc *HelpController) UpdateStatus(c *gin.Context) {
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid help request id"})
		return
	}

	var input HelpStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	targetRank, ok := helpRank[input.Status]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	var request models.HelpRequest
	if err := hc.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Help request not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load help request"})
		return
	}

	if targetRank < helpRank[request.Status] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status cannot move backwards"})
		return
	}

	if err := hc.DB.Model(&request).Update("status", input.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update help request"})
		return
	}
	c.JSON(http.StatusOK, request)
}
