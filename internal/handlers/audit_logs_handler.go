package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/weekly-availability/internal/audit"
	"github.com/BruksfildServices01/weekly-availability/internal/clock"
	"github.com/BruksfildServices01/weekly-availability/internal/httperr"
	"github.com/BruksfildServices01/weekly-availability/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	logs audit.Reader
}

func NewAuditLogsHandler(logs audit.Reader) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs}
}

// List pages through the caller's audit trail. Unparsable filters are
// ignored rather than rejected.
func (h *AuditLogsHandler) List(c *gin.Context) {
	ownerID, ok := currentUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(audit.DefaultLimit)))

	f := audit.Filter{
		OwnerID: ownerID,
		Action:  c.Query("action"),
		Entity:  c.Query("entity"),
		Page:    page,
		Limit:   limit,
	}.Normalize()

	if d, err := clock.ParseDate(c.Query("from")); err == nil {
		from := d.Time()
		f.From = &from
	}
	if d, err := clock.ParseDate(c.Query("to")); err == nil {
		to := d.Time()
		f.To = &to
	}

	logs, total, err := h.logs.List(c.Request.Context(), f)
	if err != nil {
		httperr.Internal(c, "audit_list_failed", "Failed to list audit logs.")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	c.JSON(200, gin.H{
		"page":  f.Page,
		"limit": f.Limit,
		"total": total,
		"logs":  logs,
	})
}
