package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/services"
)

// ---------------- LIST ----------------
func ListNotifications(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Listing re-runs derivation so overdue and upcoming alerts are fresh;
		// the derived keys make this idempotent.
		svc.Derive(c.Request.Context(), time.Now())

		notifications := svc.List()
		if notifications == nil {
			notifications = []models.Notification{}
		}
		c.JSON(http.StatusOK, notifications)
	}
}

// ---------------- MARK READ ----------------
func MarkNotificationRead(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.MarkRead(c.Request.Context(), c.Param("id"), true)
		c.JSON(http.StatusOK, gin.H{"message": "notification marked read", "id": c.Param("id")})
	}
}

// ---------------- DELETE ----------------
func DeleteNotification(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Delete(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, gin.H{"message": "notification deleted", "id": c.Param("id")})
	}
}

// ---------------- CLEAR ----------------
func ClearNotifications(svc *services.NotificationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Clear(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"message": "notifications cleared"})
	}
}
