package controllers

import (
	"errors"
	"net/http"
	"time"

	"creditbook-backend/config"
	"creditbook-backend/ledger"
	"creditbook-backend/models"
	"creditbook-backend/services"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PurchaseProductInput defines the structure for one purchase line item
type PurchaseProductInput struct {
	ProductID             uuid.UUID `json:"productId" binding:"required"`
	Quantity              int       `json:"quantity" binding:"required,min=1"`
	PurchaseTimeUnitPrice float64   `json:"purchaseTimeUnitPrice" binding:"required,min=0"`
}

// CreatePurchaseInput defines the expected JSON structure for creating a purchase
type CreatePurchaseInput struct {
	CustomerID    uuid.UUID              `json:"customerId" binding:"required"`
	RepaymentDate time.Time              `json:"repaymentDate" binding:"required"`
	BargainPrice  float64                `json:"bargainPrice" binding:"min=0"`
	PaymentMethod string                 `json:"paymentMethod" binding:"omitempty,oneof=cash basak_kart imece_kart kredi_karti cek"`
	Description   string                 `json:"description"`
	Products      []PurchaseProductInput `json:"products" binding:"required,min=1,dive"`
}

// CreatePurchase records a new credit sale with its line items
func CreatePurchase(c *gin.Context) {
	var input CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceInput := services.CreatePurchaseInput{
		CustomerID:    input.CustomerID,
		RepaymentDate: input.RepaymentDate,
		BargainPrice:  input.BargainPrice,
		PaymentMethod: input.PaymentMethod,
		Description:   input.Description,
	}
	for _, line := range input.Products {
		serviceInput.Products = append(serviceInput.Products, services.PurchaseLineInput{
			ProductID:             line.ProductID,
			Quantity:              line.Quantity,
			PurchaseTimeUnitPrice: line.PurchaseTimeUnitPrice,
		})
	}

	purchase, err := services.NewPurchaseService(config.DB).Create(serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrCustomerNotFound),
			errors.Is(err, services.ErrProductNotFound),
			errors.Is(err, services.ErrEmptyPurchase),
			errors.Is(err, services.ErrDuplicateProduct),
			errors.Is(err, services.ErrInvalidQuantity):
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create purchase")
		}
		return
	}

	c.JSON(http.StatusCreated, purchase)
}

// GetPurchases retrieves purchases page by page, newest first
func GetPurchases(c *gin.Context) {
	page, limit := paginationParams(c, 30)

	var purchases []models.Purchase
	if err := config.DB.Preload("Customer").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&purchases).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchases")
		return
	}

	var total int64
	config.DB.Model(&models.Purchase{}).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":  purchases,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetPurchaseDetails returns a purchase with its customer, line items,
// payments and the derived receivable and remaining debt amounts
func GetPurchaseDetails(c *gin.Context) {
	purchaseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid purchase ID format")
		return
	}

	var purchase models.Purchase
	if err := config.DB.Preload("Customer").Preload("Products.Product").
		First(&purchase, "id = ?", purchaseUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Purchase not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var payments []models.Payment
	if err := config.DB.Preload("Product").
		Where("purchase_id = ?", purchaseUUID).
		Order("created_at DESC").
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	purchase.Payments = payments
	snapshot := ledger.FromPurchase(purchase)

	c.JSON(http.StatusOK, gin.H{
		"purchase":        purchase,
		"products":        purchase.Products,
		"payments":        payments,
		"totalReceivable": ledger.TotalReceivable(snapshot),
		"remainingDebt":   ledger.RemainingDebtForPurchase(snapshot),
	})
}
