package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/middleware"
	"github.com/BruksfildServices01/weekly-availability/internal/validators"
)

// invalidRequest answers a body or query that failed binding.
func invalidRequest(c *gin.Context, err error) {
	c.JSON(400, gin.H{
		"error_code": "invalid_input",
		"message":    "Invalid request.",
		"details":    validators.Describe(err),
	})
}

// pathID reads a positive integer path parameter.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_input", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional positive integer query parameter.
func queryID(c *gin.Context, name string) (*uint, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_input", "Invalid "+name+".")
		return nil, false
	}
	v := uint(id)
	return &v, true
}

func queryWeekday(c *gin.Context, name string) (*clock.Weekday, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := clock.ParseWeekday(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid weekday. Use 0 (Monday) to 6 (Sunday).")
		return nil, false
	}
	return &d, true
}

func queryDate(c *gin.Context, name string) (*clock.Date, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	d, err := clock.ParseDate(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_input", "Invalid date format. Use YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}

// currentUser reads the id set by AuthMiddleware.
func currentUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return 0, false
	}
	return id, true
}
