package dto

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParseLimit reads the limit query parameter, clamped to [1, MaxLimit].
// Missing or malformed values yield DefaultLimit.
func ParseLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}
