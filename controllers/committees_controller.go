package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/services"
	"github.com/faisal/committee-tracker-go/store"
	"github.com/faisal/committee-tracker-go/utils"
)

// ---------------- CREATE ----------------
func CreateCommittee(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Committee
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "title is required"})
			return
		}

		created, err := svc.CreateCommittee(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create committee"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ---------------- LIST ----------------
func ListCommittees(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		committees := svc.ListCommittees()
		if len(committees) == 0 {
			c.JSON(http.StatusOK, []models.Committee{})
			return
		}

		latest := committees[0]
		for _, cm := range committees {
			if cm.UpdatedAt.After(latest.UpdatedAt) {
				latest = cm
			}
		}
		etag := utils.GenerateETag(latest.ID, latest.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)
		c.Header("Last-Modified", latest.UpdatedAt.UTC().Format(http.TimeFormat))

		c.JSON(http.StatusOK, committees)
	}
}

// ---------------- GET ----------------
func GetCommittee(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		committee := svc.GetCommittee(c.Param("id"))
		if committee == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}

		etag := utils.GenerateETag(committee.ID, committee.UpdatedAt)
		if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
			c.Status(http.StatusNotModified)
			return
		}
		c.Header("ETag", etag)

		c.JSON(http.StatusOK, committee)
	}
}

// ---------------- UPDATE ----------------
func UpdateCommittee(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Committee
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.ID = c.Param("id")

		updated, err := svc.UpdateCommittee(c.Request.Context(), &input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update committee"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteCommittee(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.DeleteCommittee(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete committee"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "committee deleted", "id": c.Param("id")})
	}
}

// ---------------- MEMBERSHIP ----------------
func AddCommitteeMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			MemberID string `json:"member_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		committee, err := svc.AddMemberToCommittee(c.Request.Context(), c.Param("id"), input.MemberID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add member"})
			return
		}
		c.JSON(http.StatusOK, committee)
	}
}

// RemoveCommitteeMember removes every share by default; ?share=one removes
// only the first occurrence.
func RemoveCommitteeMember(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			committee *models.Committee
			err       error
		)
		if c.Query("share") == "one" {
			committee, err = svc.RemoveOneShareFromCommittee(c.Request.Context(), c.Param("id"), c.Param("memberId"))
		} else {
			committee, err = svc.RemoveMemberFromCommittee(c.Request.Context(), c.Param("id"), c.Param("memberId"))
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not remove member"})
			return
		}
		c.JSON(http.StatusOK, committee)
	}
}

// ---------------- PAYMENTS ----------------
func RecordCommitteePayment(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.CommitteePayment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.MemberID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id is required"})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		committee, err := svc.RecordPayment(c.Request.Context(), c.Param("id"), input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
			return
		}
		c.JSON(http.StatusCreated, committee)
	}
}

// MemberMonthPayments returns the Cleared payments for one member and period,
// plus their sum, so clients can compare collected against the per-member
// amount before recording more.
func MemberMonthPayments(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		period, err := strconv.Atoi(c.Query("period"))
		if err != nil || period < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid period"})
			return
		}
		memberID := c.Query("member_id")
		if memberID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "member_id is required"})
			return
		}

		payments := svc.PaymentsForMemberByMonth(c.Param("id"), memberID, period)
		var total float64
		for _, p := range payments {
			total += p.Amount
		}
		if payments == nil {
			payments = []models.CommitteePayment{}
		}
		c.JSON(http.StatusOK, gin.H{"payments": payments, "total": total})
	}
}

// ---------------- PAYOUT TURNS ----------------
func UpdatePayoutTurn(svc *services.CommitteeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.PayoutTurn
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		committee, err := svc.UpdatePayoutTurn(c.Request.Context(), c.Param("id"), input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "committee not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update payout turn"})
			return
		}
		c.JSON(http.StatusOK, committee)
	}
}
