package server

import (
	goerrors "errors"
	"net/http"

	"chat-core/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps the sentinel failures onto HTTP statuses: missing
// entities are 404, relationship violations are 403, anything else is a
// 500 the caller cannot fix.
func respondError(c *gin.Context, err error) {
	switch {
	case goerrors.Is(err, errors.ErrUserNotFound),
		goerrors.Is(err, errors.ErrGroupNotFound),
		goerrors.Is(err, errors.ErrCallNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case goerrors.Is(err, errors.ErrNotGroupMember),
		goerrors.Is(err, errors.ErrNotCallRecipient),
		goerrors.Is(err, errors.ErrNotCallParticipant),
		goerrors.Is(err, errors.ErrNotCallInitiator):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
