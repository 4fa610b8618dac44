package server

import (
	"net/http"

	"chat-core/services"

	"github.com/gin-gonic/gin"
)

type SignalHandler struct {
	signalService services.ISignalService
}

func NewSignalHandler(signalService services.ISignalService) *SignalHandler {
	return &SignalHandler{signalService: signalService}
}

type sendSignalRequest struct {
	CallID     string `json:"callId" validate:"required"`
	FromUserID string `json:"fromUserId" validate:"required"`
	ToUserID   string `json:"toUserId" validate:"required"`
	Type       string `json:"type" validate:"required"`
	Payload    string `json:"payload" validate:"required"`
}

type ackSignalRequest struct {
	CallID   string `json:"callId" validate:"required"`
	UserID   string `json:"userId" validate:"required"`
	SignalID string `json:"signalId" validate:"required"`
}

func (h *SignalHandler) Send(c *gin.Context) {
	var req sendSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}
	signalType, err := parseSignalType(req.Type)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	signal := h.signalService.SendSignal(req.CallID, req.FromUserID, req.ToUserID, signalType, req.Payload)
	c.JSON(http.StatusCreated, signal)
}

func (h *SignalHandler) Pending(c *gin.Context) {
	c.JSON(http.StatusOK, h.signalService.PendingSignals(c.Param("userId")))
}

// Acknowledge always answers 204: removing a signal that is already gone
// is not an error the client can act on.
func (h *SignalHandler) Acknowledge(c *gin.Context) {
	var req ackSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	h.signalService.AcknowledgeSignal(req.CallID, req.UserID, req.SignalID)
	c.Status(http.StatusNoContent)
}
