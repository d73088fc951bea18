package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	portssvc "github.com/shoplite/shop_management_app/internal/core/ports/services"
	"github.com/shoplite/shop_management_app/internal/middleware"
)

// notificationHandler handles the client polling surface for notifications.
type notificationHandler struct {
	notificationService portssvc.NotificationSvcFacade
}

func newNotificationHandler(notificationService portssvc.NotificationSvcFacade) *notificationHandler {
	return &notificationHandler{notificationService: notificationService}
}

// listNotifications godoc
// @Summary List recent notifications with the unread count
// @Tags notifications
// @Produce  json
// @Param   shopID path string true "Shop ID"
// @Param   limit query int false "Maximum notifications to return"
// @Success 200 {object} dto.ListNotificationsResponse "Notifications and unread count"
// @Router /shops/{shopID}/notifications [get]
func (h *notificationHandler) listNotifications(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.notificationService.ListNotifications(c.Request.Context(), shopID, userID, limit)
	if err != nil {
		respondError(c, logger, err, "list notifications")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// markNotificationRead godoc
// @Summary Mark a notification as read
// @Description One-way transition; marking an already read notification is a no-op
// @Tags notifications
// @Param   shopID path string true "Shop ID"
// @Param   notificationID path string true "Notification ID"
// @Success 204 "Notification marked read"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /shops/{shopID}/notifications/{notificationID}/read [patch]
func (h *notificationHandler) markNotificationRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	notificationID := c.Param("notificationID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkNotificationRead(c.Request.Context(), shopID, notificationID, userID); err != nil {
		respondError(c, logger, err, "mark notification read")
		return
	}
	c.Status(http.StatusNoContent)
}

// markAllNotificationsRead godoc
// @Summary Mark every unread notification as read
// @Tags notifications
// @Param   shopID path string true "Shop ID"
// @Success 204 "Notifications marked read"
// @Router /shops/{shopID}/notifications/read-all [post]
func (h *notificationHandler) markAllNotificationsRead(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.MarkAllNotificationsRead(c.Request.Context(), shopID, userID); err != nil {
		respondError(c, logger, err, "mark all notifications read")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteNotification godoc
// @Summary Delete a notification
// @Description Permanent; notifications are advisory, not financial records
// @Tags notifications
// @Param   shopID path string true "Shop ID"
// @Param   notificationID path string true "Notification ID"
// @Success 204 "Notification deleted"
// @Failure 404 {object} map[string]string "Notification not found"
// @Router /shops/{shopID}/notifications/{notificationID} [delete]
func (h *notificationHandler) deleteNotification(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	shopID := c.Param("shopID")
	notificationID := c.Param("notificationID")

	userID, ok := middleware.GetUserIDFromCtx(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.notificationService.DeleteNotification(c.Request.Context(), shopID, notificationID, userID); err != nil {
		respondError(c, logger, err, "delete notification")
		return
	}

	logger.Info("Notification deleted", slog.String("notification_id", notificationID))
	c.Status(http.StatusNoContent)
}

func registerNotificationRoutes(shop *gin.RouterGroup, notificationService portssvc.NotificationSvcFacade) {
	h := newNotificationHandler(notificationService)
	shop.GET("/notifications", h.listNotifications)
	shop.PATCH("/notifications/:notificationID/read", h.markNotificationRead)
	shop.POST("/notifications/read-all", h.markAllNotificationsRead)
	shop.DELETE("/notifications/:notificationID", h.deleteNotification)
}
