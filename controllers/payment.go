package controllers

import (
	"errors"
	"net/http"

	"creditbook-backend/config"
	"creditbook-backend/ledger"
	"creditbook-backend/models"
	"creditbook-backend/services"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreatePaymentInput defines the expected JSON structure for a partial payment
type CreatePaymentInput struct {
	PurchaseID      uuid.UUID `json:"purchaseId" binding:"required"`
	ProductID       uuid.UUID `json:"productId" binding:"required"`
	PaidAmount      float64   `json:"paidAmount" binding:"required,min=0"`
	ProductQuantity int       `json:"productQuantity" binding:"required,min=1"`
	Description     string    `json:"description"`
}

// CreatePayment records a partial payment against one product of a purchase.
// The payment is rejected when the purchase has no line for the product or
// when the quantity exceeds what is still unpaid; nothing is written then.
func CreatePayment(c *gin.Context) {
	var input CreatePaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	payment, err := services.NewPaymentService(config.DB).Create(services.CreatePaymentInput{
		PurchaseID:      input.PurchaseID,
		ProductID:       input.ProductID,
		PaidAmount:      input.PaidAmount,
		ProductQuantity: input.ProductQuantity,
		Description:     input.Description,
	})
	if err != nil {
		var exceeded *ledger.QuantityExceededError
		switch {
		case errors.Is(err, services.ErrPurchaseNotFound),
			errors.Is(err, ledger.ErrLineNotFound):
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		case errors.As(err, &exceeded):
			utils.RespondWithError(c, http.StatusBadRequest, exceeded.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment")
		}
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments retrieves payments page by page, optionally filtered to one purchase
func GetPayments(c *gin.Context) {
	page, limit := paginationParams(c, 30)

	query := config.DB.Preload("Purchase.Customer").Preload("Product").
		Order("created_at DESC")

	if purchaseID := c.Query("purchase_id"); purchaseID != "" {
		purchaseUUID, err := uuid.Parse(purchaseID)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID format")
			return
		}
		query = query.Where("purchase_id = ?", purchaseUUID)
	}

	var payments []models.Payment
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  payments,
		"page":  page,
		"limit": limit,
	})
}

// GetPayment retrieves a specific payment by ID
func GetPayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	var payment models.Payment
	if err := config.DB.Preload("Purchase.Customer").Preload("Product").
		First(&payment, "id = ?", paymentUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, payment)
}

// DeletePayment removes a payment; the owning purchase's cached paid amount
// is recomputed in the same transaction
func DeletePayment(c *gin.Context) {
	paymentUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment ID format")
		return
	}

	if err := services.NewPaymentService(config.DB).Delete(paymentUUID); err != nil {
		if errors.Is(err, services.ErrPaymentNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment deleted successfully"})
}
