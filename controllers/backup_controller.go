package controllers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/services"
)

// ---------------- EXPORT ----------------
func ExportBackup(svc *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		backup, err := svc.Export(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not export backup"})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="committee-tracker-backup.json"`)
		c.JSON(http.StatusOK, backup)
	}
}

// ---------------- RESTORE ----------------
func RestoreBackup(svc *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		raw, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not read body"})
			return
		}

		if err := svc.Restore(c.Request.Context(), raw); err != nil {
			if errors.Is(err, services.ErrBackupInvalid) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error": i18n.T(lang, "error.backup_invalid", nil),
				})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "restore failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "backup restored"})
	}
}

// ---------------- RESET ----------------
func ResetData(svc *services.BackupService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Reset(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "data reset"})
	}
}

// ---------------- STATE SNAPSHOT ----------------
// StateSnapshot exposes a read-only view of committees and members for
// external export tooling (spreadsheets and the like).
func StateSnapshot(committees *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"committees": committees.ListCommittees(),
			"members":    committees.ListMembers(),
		})
	}
}
