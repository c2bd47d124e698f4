package routes

import (
	"github.com/gin-gonic/gin"

	config "github.com/faisal/committee-tracker-go/config"
	controllers "github.com/faisal/committee-tracker-go/controllers"
	middleware "github.com/faisal/committee-tracker-go/middleware"
	services "github.com/faisal/committee-tracker-go/services"
)

// Deps carries the constructed services into route registration.
type Deps struct {
	Committees    *services.CommitteeService
	Installments  *services.InstallmentService
	Notifications *services.NotificationService
	Settings      *services.SettingsService
	Backup        *services.BackupService
	Lock          *services.AutoLock
}

func SetupRoutes(r *gin.Engine, cfg *config.Config, d *Deps) {
	// public
	r.POST("/auth/unlock", controllers.Unlock(d.Lock, cfg.JWTSecret))
	r.GET("/auth/status", controllers.LockStatus(d.Lock))

	// protected
	session := middleware.SessionMiddleware(cfg.JWTSecret, d.Lock, d.Settings)

	auth := r.Group("/auth")
	auth.Use(session)
	{
		auth.POST("/lock", controllers.LockSession(d.Lock))
		auth.POST("/change-pin", controllers.ChangePIN(d.Settings))
		auth.POST("/change-password", controllers.ChangePassword(d.Settings))
		auth.POST("/force-pin", controllers.ForcePIN(d.Settings))
	}

	committees := r.Group("/committees")
	committees.Use(session)
	{
		committees.POST("", controllers.CreateCommittee(d.Committees))
		committees.GET("", controllers.ListCommittees(d.Committees))
		committees.GET("/:id", controllers.GetCommittee(d.Committees))
		committees.PUT("/:id", controllers.UpdateCommittee(d.Committees))
		committees.DELETE("/:id", controllers.DeleteCommittee(d.Committees))
		committees.POST("/:id/members", controllers.AddCommitteeMember(d.Committees))
		committees.DELETE("/:id/members/:memberId", controllers.RemoveCommitteeMember(d.Committees))
		committees.POST("/:id/payments", controllers.RecordCommitteePayment(d.Committees))
		committees.GET("/:id/payments", controllers.MemberMonthPayments(d.Committees))
		committees.PATCH("/:id/turns", controllers.UpdatePayoutTurn(d.Committees))
	}

	members := r.Group("/members")
	members.Use(session)
	{
		members.POST("", controllers.CreateMember(d.Committees))
		members.GET("", controllers.ListMembers(d.Committees))
		members.GET("/:id", controllers.GetMember(d.Committees))
		members.PATCH("/:id", controllers.UpdateMember(d.Committees))
		members.DELETE("/:id", controllers.DeleteMember(d.Committees))
		members.POST("/:id/remind", controllers.RemindMember(d.Committees, d.Settings))
	}

	installments := r.Group("/installments")
	installments.Use(session)
	{
		installments.POST("", controllers.CreateInstallment(d.Installments))
		installments.GET("", controllers.ListInstallments(d.Installments))
		installments.GET("/:id", controllers.GetInstallment(d.Installments))
		installments.PUT("/:id", controllers.UpdateInstallment(d.Installments))
		installments.POST("/:id/payments", controllers.AddInstallmentPayment(d.Installments))
		installments.DELETE("/:id", controllers.DeleteInstallment(d.Installments))
	}

	notifs := r.Group("/notifications")
	notifs.Use(session)
	{
		notifs.GET("", controllers.ListNotifications(d.Notifications))
		notifs.PATCH("/:id/read", controllers.MarkNotificationRead(d.Notifications))
		notifs.DELETE("/:id", controllers.DeleteNotification(d.Notifications))
		notifs.DELETE("", controllers.ClearNotifications(d.Notifications))
	}

	settings := r.Group("/settings")
	settings.Use(session)
	{
		settings.GET("", controllers.GetSettings(d.Settings))
		settings.PATCH("", controllers.UpdateSettings(d.Settings))
		settings.PATCH("/profile", controllers.UpdateProfile(d.Settings))
	}

	data := r.Group("")
	data.Use(session)
	{
		data.GET("/backup", controllers.ExportBackup(d.Backup))
		data.POST("/backup/restore", controllers.RestoreBackup(d.Backup))
		data.POST("/reset", controllers.ResetData(d.Backup))
		data.GET("/state", controllers.StateSnapshot(d.Committees))
	}
}
