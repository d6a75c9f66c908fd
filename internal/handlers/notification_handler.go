package handlers

import (
	"net/http"

	"github.com/Dias221467/mindbloom/internal/services"
	"github.com/Dias221467/mindbloom/pkg/logger"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// GET /notifications
func (h *NotificationHandler) GetUserNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	notifications, err := h.Service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

// POST /notifications/{id}/read
func (h *NotificationHandler) MarkAsReadHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	notifID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.MarkNotificationAsRead(r.Context(), userID, notifID); err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, "Notification marked as read")
}

// DELETE /notifications/{id}
func (h *NotificationHandler) DeleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}
	notifID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.Service.DeleteNotification(r.Context(), userID, notifID); err != nil {
		writeError(w, r, err)
		return
	}
	logger.Log.WithField("notification_id", notifID.Hex()).Info("Notification deleted")
	writeMessage(w, http.StatusOK, "Notification deleted")
}
