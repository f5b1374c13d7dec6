package handlers

import (
	"clinic-booking-server/internal/middleware"
	"clinic-booking-server/internal/models"
	"clinic-booking-server/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// notify records an in-app notification. The triggering operation has
// already committed, so a write failure is logged, not surfaced.
func notify(db *gorm.DB, n *models.Notification) {
	if err := db.Create(n).Error; err != nil {
		log.Error().Err(err).Str("recipientId", n.RecipientID).Msg("failed to record notification")
	}
}

// NotificationHandler serves in-app notifications.
type NotificationHandler struct {
	DB *gorm.DB
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{DB: db}
}

// GetNotifications lists the requesting user's notifications, newest first.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	query := h.DB.Where("recipient_id = ?", userID).Order("created_at desc")
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch notifications: "+err.Error())
		return
	}

	utils.Success(c, "Notifications fetched successfully", notifications)
}

// MarkNotificationRead marks one of the user's notifications as read.
func (h *NotificationHandler) MarkNotificationRead(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	notificationID := c.Param("id")

	var notification models.Notification
	if err := h.DB.First(&notification, "id = ? AND recipient_id = ?", notificationID, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Notification not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	notification.IsRead = true
	if err := h.DB.Save(&notification).Error; err != nil {
		utils.InternalServerError(c, "Failed to mark notification as read: "+err.Error())
		return
	}

	utils.Success(c, "Notification marked as read", notification)
}
