package server

import (
	"fmt"
	"net/http"
	"time"

	"chat-core/domain"
	"chat-core/services"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type ChatHandler struct {
	chatService      services.IChatService
	maxContentLength int
}

func NewChatHandler(chatService services.IChatService, maxContentLength int) *ChatHandler {
	return &ChatHandler{chatService: chatService, maxContentLength: maxContentLength}
}

type registerRequest struct {
	UserID      string `json:"userId" validate:"required"`
	DisplayName string `json:"displayName" validate:"required"`
}

type sendDirectMessageRequest struct {
	FromUserID   string `json:"fromUserId" validate:"required"`
	ToUserID     string `json:"toUserId" validate:"required"`
	Content      string `json:"content" validate:"required"`
	PayloadKind  string `json:"payloadKind"`
	AudioSeconds int    `json:"audioDurationSeconds"`
}

type messageResponse struct {
	ID           string    `json:"id"`
	SenderID     string    `json:"senderId"`
	SenderName   string    `json:"senderName"`
	RecipientID  string    `json:"recipientId"`
	Content      string    `json:"content"`
	Timestamp    time.Time `json:"timestamp"`
	Kind         string    `json:"kind"`
	PayloadKind  string    `json:"payloadKind"`
	AudioSeconds int       `json:"audioDurationSeconds"`
}

func toMessageResponses(messages []domain.Message) []messageResponse {
	return lo.Map(messages, func(item domain.Message, _ int) messageResponse {
		return messageResponse{
			ID:           item.ID,
			SenderID:     item.SenderID,
			SenderName:   item.SenderName,
			RecipientID:  item.RecipientID,
			Content:      item.Content,
			Timestamp:    item.Timestamp,
			Kind:         string(item.Kind),
			PayloadKind:  string(item.Payload),
			AudioSeconds: item.AudioSeconds,
		}
	})
}

type summaryResponse struct {
	ChatID        string    `json:"chatId"`
	ChatName      string    `json:"chatName"`
	LastMessage   string    `json:"lastMessage"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	Kind          string    `json:"kind"`
}

func toSummaryResponses(summaries []domain.ChatSummary) []summaryResponse {
	return lo.Map(summaries, func(item domain.ChatSummary, _ int) summaryResponse {
		return summaryResponse{
			ChatID:        item.ChatID,
			ChatName:      item.ChatName,
			LastMessage:   item.LastMessage,
			LastMessageAt: item.LastMessageAt,
			Kind:          string(item.Kind),
		}
	})
}

// Register answers with a flag rather than an error status: losing the id
// race is an expected outcome for the client flow.
func (h *ChatHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	registered := h.chatService.RegisterUser(req.UserID, req.DisplayName)
	c.JSON(http.StatusOK, gin.H{"registered": registered})
}

// ListUsers returns all profiles, or a single match when a displayName
// query is present.
func (h *ChatHandler) ListUsers(c *gin.Context) {
	if name := c.Query("displayName"); name != "" {
		user, ok := h.chatService.FindUserByName(name)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, []domain.User{user})
		return
	}
	c.JSON(http.StatusOK, h.chatService.AllUsers())
}

func (h *ChatHandler) GetUser(c *gin.Context) {
	user, ok := h.chatService.FindUserByID(c.Param("userId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ChatHandler) SendDirectMessage(c *gin.Context) {
	var req sendDirectMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}
	payload, err := h.checkPayload(req.Content, req.PayloadKind, req.AudioSeconds)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	msg, err := h.chatService.SendDirectMessage(req.FromUserID, req.ToUserID, req.Content, payload, req.AudioSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponses([]domain.Message{msg})[0])
}

func (h *ChatHandler) DirectMessages(c *gin.Context) {
	userID := c.Query("userId")
	otherUserID := c.Query("otherUserId")
	if userID == "" || otherUserID == "" {
		respondBadRequest(c, fmt.Errorf("userId and otherUserId are required"))
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(h.chatService.DirectMessages(userID, otherUserID)))
}

func (h *ChatHandler) DirectSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, toSummaryResponses(h.chatService.DirectSummaries(c.Param("userId"))))
}

// checkPayload enforces the transport-level limits the permissive core
// does not: content length and, for audio, that the blob really is audio.
func (h *ChatHandler) checkPayload(content, kind string, audioSeconds int) (domain.PayloadKind, error) {
	payload, err := parsePayloadKind(kind)
	if err != nil {
		return "", err
	}
	if payload == domain.PayloadText && h.maxContentLength > 0 && len(content) > h.maxContentLength {
		return "", fmt.Errorf("content exceeds %d characters", h.maxContentLength)
	}
	if payload == domain.PayloadAudio {
		if err := checkAudioContent(content, audioSeconds); err != nil {
			return "", err
		}
	}
	return payload, nil
}
