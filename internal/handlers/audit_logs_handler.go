package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ridgelinemotors/moto-reservations/internal/httperr"
	"github.com/ridgelinemotors/moto-reservations/internal/httpresp"
	"github.com/ridgelinemotors/moto-reservations/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Limit(200)

	if entity := c.Query("entity"); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := q.Find(&logs).Error; err != nil {
		httperr.Internal(c, "internal_error", "failed to list audit logs")
		return
	}
	httpresp.List(c, logs)
}
