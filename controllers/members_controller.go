package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/i18n"
	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/services"
	"github.com/faisal/committee-tracker-go/store"
	"github.com/faisal/committee-tracker-go/utils"
)

// ---------------- CREATE ----------------
func CreateMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name        string    `form:"name" binding:"required"`
			Phone       string    `form:"phone"`
			NationalID  string    `form:"national_id"`
			Address     string    `form:"address"`
			JoiningDate time.Time `form:"joining_date" time_format:"2006-01-02"`
			Notes       string    `form:"notes"`
		}
		if err := c.ShouldBind(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Optional profile picture upload.
		var photoURL string
		form, err := c.MultipartForm()
		if err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form data"})
			return
		}
		if form != nil {
			if files := form.File["photo"]; len(files) > 0 {
				file, err := files[0].Open()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
					return
				}
				photoURL, err = utils.UploadMemberPhoto(file, files[0])
				file.Close()
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "photo upload failed"})
					return
				}
			}
		}

		member := models.Member{
			Name:        input.Name,
			Phone:       input.Phone,
			NationalID:  input.NationalID,
			Address:     input.Address,
			JoiningDate: input.JoiningDate,
			Notes:       input.Notes,
			PhotoURL:    photoURL,
		}
		created, err := svc.CreateMember(c.Request.Context(), &member)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create member"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ---------------- LIST ----------------
func ListMembers(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		members := svc.ListMembers()
		if members == nil {
			members = []models.Member{}
		}
		c.JSON(http.StatusOK, members)
	}
}

// ---------------- GET ----------------
func GetMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		member := svc.GetMember(c.Param("id"))
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		c.JSON(http.StatusOK, member)
	}
}

// ---------------- UPDATE ----------------
func UpdateMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Member
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.ID = c.Param("id")

		updated, err := svc.UpdateMember(c.Request.Context(), &input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update member"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := i18n.Match(c.GetHeader("Accept-Language"))
		id := c.Param("id")

		err := svc.DeleteMember(c.Request.Context(), id)
		if errors.Is(err, services.ErrMemberInUse) {
			name := id
			if m := svc.GetMember(id); m != nil {
				name = m.Name
			}
			c.JSON(http.StatusConflict, gin.H{
				"error": i18n.T(lang, "error.member_in_use", map[string]string{"name": name}),
			})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete member"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "member deleted", "id": id})
	}
}

// ---------------- REMINDER ----------------
// RemindMember emails the member a payment reminder for a committee.
func RemindMember(svc *services.CommitteeService, settings *services.SettingsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			CommitteeID string `json:"committee_id" binding:"required"`
			Email       string `json:"email" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		member := svc.GetMember(c.Param("id"))
		if member == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		committee := svc.GetCommittee(input.CommitteeID)
		if committee == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}

		lang := settings.Language()
		body := i18n.T(lang, "payment.reminder", map[string]string{
			"amount": strconvAmount(committee.AmountPerMember),
			"title":  committee.Title,
		})
		if err := utils.SendEmail(input.Email, member.Name, committee.Title, body); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not send reminder"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "reminder sent"})
	}
}
