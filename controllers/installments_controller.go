package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/faisal/committee-tracker-go/models"
	"github.com/faisal/committee-tracker-go/services"
	"github.com/faisal/committee-tracker-go/store"
)

// ---------------- CREATE ----------------
func CreateInstallment(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Installment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.BuyerName == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "buyer_name is required"})
			return
		}
		if input.TotalPayment <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "total_payment must be greater than 0"})
			return
		}

		created, err := svc.AddInstallment(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create installment"})
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// ---------------- LIST ----------------
func ListInstallments(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		installments := svc.ListInstallments()
		if installments == nil {
			installments = []models.Installment{}
		}
		c.JSON(http.StatusOK, installments)
	}
}

// ---------------- GET ----------------
func GetInstallment(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ins := svc.GetInstallment(c.Param("id"))
		if ins == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "installment not found"})
			return
		}
		c.JSON(http.StatusOK, ins)
	}
}

// ---------------- UPDATE ----------------
func UpdateInstallment(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.Installment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		input.ID = c.Param("id")

		updated, err := svc.UpdateInstallment(c.Request.Context(), &input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "installment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update installment"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// ---------------- ADD PAYMENT ----------------
func AddInstallmentPayment(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.InstallmentPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be greater than 0"})
			return
		}

		updated, err := svc.AddPayment(c.Request.Context(), c.Param("id"), input)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "installment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not add payment"})
			return
		}
		c.JSON(http.StatusCreated, updated)
	}
}

// ---------------- DELETE ----------------
func DeleteInstallment(svc *services.InstallmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := svc.DeleteInstallment(c.Request.Context(), c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "installment not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete installment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "installment deleted", "id": c.Param("id")})
	}
}
