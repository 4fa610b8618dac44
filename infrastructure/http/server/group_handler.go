package server

import (
	"fmt"
	"net/http"
	"sort"

	"chat-core/domain"
	"chat-core/services"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

type GroupHandler struct {
	groupService services.IGroupService
	chat         *ChatHandler
}

func NewGroupHandler(groupService services.IGroupService, chat *ChatHandler) *GroupHandler {
	return &GroupHandler{groupService: groupService, chat: chat}
}

type createGroupRequest struct {
	OwnerID   string   `json:"ownerId" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	MemberIDs []string `json:"memberIds"`
}

type addMemberRequest struct {
	UserID string `json:"userId" validate:"required"`
}

type sendGroupMessageRequest struct {
	FromUserID   string `json:"fromUserId" validate:"required"`
	GroupID      string `json:"groupId" validate:"required"`
	Content      string `json:"content" validate:"required"`
	PayloadKind  string `json:"payloadKind"`
	AudioSeconds int    `json:"audioDurationSeconds"`
}

type groupResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	OwnerID string   `json:"ownerId"`
	Members []string `json:"members"`
}

func toGroupResponse(group domain.Group) groupResponse {
	members := lo.Keys(group.Members)
	sort.Strings(members)
	return groupResponse{ID: group.ID, Name: group.Name, OwnerID: group.OwnerID, Members: members}
}

func (h *GroupHandler) Create(c *gin.Context) {
	var req createGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	groupID, err := h.groupService.CreateGroup(req.OwnerID, req.Name, req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"groupId": groupID})
}

func (h *GroupHandler) AddMember(c *gin.Context) {
	var req addMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := h.groupService.AddUserToGroup(c.Param("groupId"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *GroupHandler) Get(c *gin.Context) {
	group, ok := h.groupService.GetGroup(c.Param("groupId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, toGroupResponse(group))
}

func (h *GroupHandler) SendGroupMessage(c *gin.Context) {
	var req sendGroupMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondBadRequest(c, err)
		return
	}
	payload, err := h.chat.checkPayload(req.Content, req.PayloadKind, req.AudioSeconds)
	if err != nil {
		respondBadRequest(c, err)
		return
	}

	msg, err := h.groupService.SendGroupMessage(req.FromUserID, req.GroupID, req.Content, payload, req.AudioSeconds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toMessageResponses([]domain.Message{msg})[0])
}

func (h *GroupHandler) GroupMessages(c *gin.Context) {
	userID := c.Query("userId")
	groupID := c.Query("groupId")
	if userID == "" || groupID == "" {
		respondBadRequest(c, fmt.Errorf("userId and groupId are required"))
		return
	}

	messages, err := h.groupService.GroupMessages(userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toMessageResponses(messages))
}

func (h *GroupHandler) GroupSummaries(c *gin.Context) {
	c.JSON(http.StatusOK, toSummaryResponses(h.groupService.GroupSummaries(c.Param("userId"))))
}
