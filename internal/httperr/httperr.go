package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// FromError writes the response matching err. Business errors become 400,
// missing resources 404, ownership failures 403 and anything else a 500
// with fallbackCode. It returns the status written.
func FromError(c *gin.Context, err error, fallbackCode string) int {
	if be, ok := AsBusiness(err); ok {
		msg := be.Message
		if msg == "" {
			msg = messages[be.Code]
		}
		BadRequest(c, be.Code, msg)
		return http.StatusBadRequest
	}

	var nf NotFoundError
	if errors.As(err, &nf) {
		NotFound(c, nf.Code, messages[nf.Code])
		return http.StatusNotFound
	}

	var fb ForbiddenError
	if errors.As(err, &fb) {
		Forbidden(c, fb.Code, messages[fb.Code])
		return http.StatusForbidden
	}

	Internal(c, fallbackCode, "Internal error.")
	return http.StatusInternalServerError
}

var messages = map[string]string{
	"invalid_range":           "Start time must be before end time.",
	"overlap":                 "The requested time overlaps an existing one.",
	"outside_window":          "Booking must fit within the availability window.",
	"duration_mismatch":       "End time does not match duration.",
	"invalid_input":           "Invalid query parameters.",
	"bookings_outside_window": "Existing bookings would fall outside the updated window.",
	"availability_not_found":  "Availability window not found.",
	"booking_not_found":       "Booking not found.",
	"not_owner":               "Only the owner can change this resource.",
}
