package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/models"
	"github.com/relief-grid/api-go/services"
	"gorm.io/gorm"
)

// GatewayController is the transport boundary: polling relays drain the
// outbound queue here and acknowledge delivery. Both operations are
// idempotent so at-least-once relays can retry freely.
type GatewayController struct {
	DB     *gorm.DB
	Outbox *services.OutboxService
}

func NewGatewayController(db *gorm.DB, outbox *services.OutboxService) *GatewayController {
	return &GatewayController{DB: db, Outbox: outbox}
}

// FetchOutbound godoc
// @Summary Fetch unsent outbound messages, oldest first
// @Tags gateway
// @Produce json
// @Param limit query int false "Maximum messages to return" default(50)
// @Param phone query string false "Restrict to one recipient"
// @Success 200 {array} models.OutboundSMS
// @Router /gateway/outbound [get]
func (gc *GatewayController) FetchOutbound(c *gin.Context) {
	limit := 50
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	msgs, err := gc.Outbox.FetchUnsent(limit, c.Query("phone"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch outbound messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// MarkSent godoc
// @Summary Mark a batch of outbound messages as sent
// @Description Already-sent and unknown ids are ignored; returns the count actually updated
// @Tags gateway
// @Accept json
// @Produce json
// @Param ids body []int true "Outbound message ids"
// @Success 200 {object} map[string]interface{}
// @Router /gateway/mark-sent [post]
func (gc *GatewayController) MarkSent(c *gin.Context) {
	var ids []uint
	if err := c.ShouldBindJSON(&ids); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := gc.Outbox.MarkSent(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark messages sent"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ListRecent returns the latest outbound messages, sent or not, for the
// operator view.
func (gc *GatewayController) ListRecent(c *gin.Context) {
	var msgs []models.OutboundSMS
	if err := gc.DB.Order("id DESC").Limit(200).Find(&msgs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list outbound messages"})
		return
	}
	c.JSON(http.StatusOK, msgs)
}
