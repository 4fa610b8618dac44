package server

import (
	"net/http"
	"time"

	"chat-core/domain"
	"chat-core/services"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type CallHandler struct {
	callService services.ICallService
}

func NewCallHandler(callService services.ICallService) *CallHandler {
	return &CallHandler{callService: callService}
}

type startDirectCallRequest struct {
	CallerID    string `json:"callerId" validate:"required"`
	RecipientID string `json:"recipientId" validate:"required"`
}

type startGroupCallRequest struct {
	CallerID string `json:"callerId" validate:"required"`
	GroupID  string `json:"groupId" validate:"required"`
}

type callActionRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type callResponse struct {
	ID           string    `json:"id"`
	CallerID     string    `json:"callerId"`
	CallerName   string    `json:"callerName"`
	TargetID     string    `json:"targetId"`
	StartedAt    time.Time `json:"startedAt"`
	EndedAt      time.Time `json:"endedAt,omitzero"`
	Status       string    `json:"status"`
	Kind         string    `json:"kind"`
	Participants []string  `json:"participants"`
}

func toCallResponses(calls []domain.VoiceCall) []callResponse {
	return lo.Map(calls, func(item domain.VoiceCall, _ int) callResponse {
		return callResponse{
			ID:           item.ID,
			CallerID:     item.CallerID,
			CallerName:   item.CallerName,
			TargetID:     item.TargetID,
			StartedAt:    item.StartedAt,
			EndedAt:      item.EndedAt,
			Status:       string(item.Status),
			Kind:         string(item.Kind),
			Participants: item.Participants,
		}
	})
}

func (h *CallHandler) StartDirect(c *gin.Context) {
	var req startDirectCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	callID, err := h.callService.StartDirectCall(req.CallerID, req.RecipientID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"callId": callID})
}

func (h *CallHandler) StartGroup(c *gin.Context) {
	var req startGroupCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	callID, err := h.callService.StartGroupCall(req.CallerID, req.GroupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"callId": callID})
}

// action factors the shared shape of every call transition endpoint: bind
// the acting user, run one transition on the call id from the path.
func (h *CallHandler) action(transition func(callID, userID string) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req callActionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBadRequest(c, err)
			return
		}
		if err := validate.Struct(req); err != nil {
			respondBadRequest(c, err)
			return
		}

		if err := transition(c.Param("callId"), req.UserID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func (h *CallHandler) Answer(c *gin.Context) { h.action(h.callService.AnswerDirectCall)(c) }
func (h *CallHandler) Reject(c *gin.Context) { h.action(h.callService.RejectDirectCall)(c) }
func (h *CallHandler) End(c *gin.Context)    { h.action(h.callService.EndDirectCall)(c) }
func (h *CallHandler) Join(c *gin.Context)   { h.action(h.callService.JoinGroupCall)(c) }
func (h *CallHandler) Leave(c *gin.Context)  { h.action(h.callService.LeaveGroupCall)(c) }
func (h *CallHandler) EndGroup(c *gin.Context) {
	h.action(h.callService.EndGroupCall)(c)
}

func (h *CallHandler) Status(c *gin.Context) {
	call, err := h.callService.CallStatus(c.Param("callId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCallResponses([]domain.VoiceCall{call})[0])
}

func (h *CallHandler) ActiveForUser(c *gin.Context) {
	c.JSON(http.StatusOK, toCallResponses(h.callService.ActiveCallsFor(c.Param("userId"))))
}

func (h *CallHandler) ActiveForGroup(c *gin.Context) {
	c.JSON(http.StatusOK, toCallResponses(h.callService.ActiveGroupCalls(c.Param("groupId"))))
}
