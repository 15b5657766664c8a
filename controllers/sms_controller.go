package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/relief-grid/api-go/services"
)

type SMSController struct {
	Lifecycle *services.LifecycleService
}

func NewSMSController(lifecycle *services.LifecycleService) *SMSController {
	return &SMSController{Lifecycle: lifecycle}
}

type InboundSMSInput struct {
	From    string `json:"from" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ReceiveSMS godoc
// @Summary Receive one inbound SMS from the transport relay
// @Description Classifies the text and records its effects; returns the report id when one was created
// @Tags sms
// @Accept json
// @Produce json
// @Param payload body InboundSMSInput true "Inbound SMS"
// @Success 200 {object} map[string]interface{}
// @Router /receive-sms [post]
func (sc *SMSController) ReceiveSMS(c *gin.Context) {
	var input InboundSMSInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := sc.Lifecycle.SubmitReport(input.Message, input.From)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	if result.Report != nil {
		c.JSON(http.StatusOK, gin.H{"message": "report received", "report_id": result.Report.ID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "received"})
}

// ReceiveSMSForm accepts the SMSSync form encoding (fields: from,
// message, secret). The secret field is checked by the gateway
// middleware; here we only translate the shape.
func (sc *SMSController) ReceiveSMSForm(c *gin.Context) {
	from := c.PostForm("from")
	message := c.PostForm("message")
	if from == "" || message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from and message are required"})
		return
	}

	result, err := sc.Lifecycle.SubmitReport(message, from)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process message"})
		return
	}

	if result.Report != nil {
		c.JSON(http.StatusOK, gin.H{"message": "report received", "report_id": result.Report.ID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "received"})
}
