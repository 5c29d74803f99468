package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Abd-ElghanyMohammed/myflash/internal/dto"
	"github.com/Abd-ElghanyMohammed/myflash/internal/worker"
)

type NotificationsHandler struct{ dispatcher *worker.Dispatcher }

func NewNotificationsHandler(dispatcher *worker.Dispatcher) *NotificationsHandler {
	return &NotificationsHandler{dispatcher: dispatcher}
}

// Test enqueues a connectivity-check message. Delivery is async; a 202
// only means the job was queued.
func (h *NotificationsHandler) Test(c *gin.Context) {
	var req dto.TestNotificationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.dispatcher.EnqueueTest(c.Request.Context(), req.Recipient); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"queued": true})
}
