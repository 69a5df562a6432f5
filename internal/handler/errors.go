package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lexihub/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized becomes a 500 with a generic body so internals never leak.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEntryNotFound),
		errors.Is(err, service.ErrTranslationNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrSourceNotFound),
		errors.Is(err, service.ErrRelationshipNotFound),
		errors.Is(err, service.ErrVoteNotFound),
		errors.Is(err, service.ErrBackupNotFound),
		errors.Is(err, service.ErrNoEntriesUpdated):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrTooManyLoginRequests):
		c.JSON(http.StatusTooManyRequests, gin.H{"detail": err.Error()})
	case errors.Is(err, service.ErrInvalidCode),
		errors.Is(err, service.ErrTranslationConflict),
		errors.Is(err, service.ErrRelationshipConflict),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidEntryType),
		errors.Is(err, service.ErrInvalidRelationshipType),
		errors.Is(err, service.ErrInvalidParentComment),
		errors.Is(err, service.ErrInvalidBackupFilename):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

// parseSkipLimit reads the skip/limit pagination query parameters. Limit
// defaults to 100, which is also the hard cap; anything out of range keeps
// the default.
func parseSkipLimit(c *gin.Context) (int, int) {
	skip := 0
	limit := 100

	if s := c.Query("skip"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed >= 0 {
			skip = parsed
		}
	}
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	return skip, limit
}
