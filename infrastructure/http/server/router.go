package server

import (
	"log/slog"
	"net/http"

	"chat-core/observability"

	"github.com/gin-gonic/gin"
)

// NewRouter wires all handlers under /api/v1. The caller owns the
// listener lifecycle.
func NewRouter(
	log *slog.Logger,
	chat *ChatHandler,
	groups *GroupHandler,
	calls *CallHandler,
	signals *SignalHandler,
	stats *observability.StatsManager,
) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))

	engine.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/stats", func(c *gin.Context) { c.JSON(http.StatusOK, stats.Snapshot()) })

	v1 := engine.Group("/api/v1")

	v1.POST("/users/register", chat.Register)
	v1.GET("/users", chat.ListUsers)
	v1.GET("/users/:userId", chat.GetUser)
	v1.GET("/users/:userId/chats/direct", chat.DirectSummaries)
	v1.GET("/users/:userId/chats/groups", groups.GroupSummaries)
	v1.GET("/users/:userId/calls", calls.ActiveForUser)
	v1.GET("/users/:userId/signals", signals.Pending)

	v1.POST("/messages/direct", chat.SendDirectMessage)
	v1.GET("/messages/direct", chat.DirectMessages)
	v1.POST("/messages/group", groups.SendGroupMessage)
	v1.GET("/messages/group", groups.GroupMessages)

	v1.POST("/groups", groups.Create)
	v1.GET("/groups/:groupId", groups.Get)
	v1.POST("/groups/:groupId/members", groups.AddMember)
	v1.GET("/groups/:groupId/calls", calls.ActiveForGroup)

	v1.POST("/calls/direct", calls.StartDirect)
	v1.POST("/calls/group", calls.StartGroup)
	v1.GET("/calls/:callId", calls.Status)
	v1.POST("/calls/:callId/answer", calls.Answer)
	v1.POST("/calls/:callId/reject", calls.Reject)
	v1.POST("/calls/:callId/end", calls.End)
	v1.POST("/calls/:callId/end-group", calls.EndGroup)
	v1.POST("/calls/:callId/join", calls.Join)
	v1.POST("/calls/:callId/leave", calls.Leave)

	v1.POST("/signals", signals.Send)
	v1.POST("/signals/ack", signals.Acknowledge)

	return engine
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Debug("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}
