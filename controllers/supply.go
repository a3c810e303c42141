package controllers

import (
	"errors"
	"net/http"

	"creditbook-backend/config"
	"creditbook-backend/models"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateSupplyInput defines the expected JSON structure for creating a supply
type CreateSupplyInput struct {
	Name        string     `json:"name" binding:"required"`
	Amount      float64    `json:"amount" binding:"required,min=0"`
	PaidAmount  float64    `json:"paidAmount" binding:"min=0"`
	Quantity    float64    `json:"quantity" binding:"required,min=0"`
	Unit        string     `json:"unit" binding:"required"`
	Description string     `json:"description"`
	CustomerID  *uuid.UUID `json:"customerId"`
}

// SupplyPaymentInput defines the expected JSON structure for paying on a supply
type SupplyPaymentInput struct {
	Amount float64 `json:"amount" binding:"required,min=0"`
}

// CreateSupply records raw material bought, optionally from a customer
func CreateSupply(c *gin.Context) {
	var input CreateSupplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.CustomerID != nil {
		var customer models.Customer
		if err := config.DB.First(&customer, "id = ?", *input.CustomerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.RespondWithError(c, http.StatusBadRequest, "Customer not found")
			} else {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			}
			return
		}
	}

	supply := models.Supply{
		Name:        input.Name,
		Slug:        utils.Slugify(input.Name),
		Amount:      input.Amount,
		PaidAmount:  input.PaidAmount,
		Quantity:    input.Quantity,
		Unit:        input.Unit,
		Description: input.Description,
		CustomerID:  input.CustomerID,
	}

	if err := config.DB.Create(&supply).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create supply")
		return
	}

	c.JSON(http.StatusCreated, supply)
}

// GetSupplies retrieves supplies page by page, newest first
func GetSupplies(c *gin.Context) {
	page, limit := paginationParams(c, 30)

	var supplies []models.Supply
	if err := config.DB.Preload("Customer").
		Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&supplies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve supplies")
		return
	}

	var total int64
	config.DB.Model(&models.Supply{}).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":  supplies,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetSupply retrieves a specific supply by ID
func GetSupply(c *gin.Context) {
	supplyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	var supply models.Supply
	if err := config.DB.Preload("Customer").
		First(&supply, "id = ?", supplyUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supply not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, supply)
}

// PaySupply adds a payment to the supply's cumulative paid amount. Supplies
// keep a single running balance, with no per-item allocation.
func PaySupply(c *gin.Context) {
	supplyUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid supply ID format")
		return
	}

	var input SupplyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var supply models.Supply
		if err := tx.First(&supply, "id = ?", supplyUUID).Error; err != nil {
			return err
		}
		return tx.Model(&supply).
			Update("paid_amount", supply.PaidAmount+input.Amount).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Supply not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to record supply payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supply payment recorded"})
}

// GetCustomerSupplyDebt returns what is still owed to the customer across
// their supplies
func GetCustomerSupplyDebt(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var totalAmount, totalPaid float64
	config.DB.Model(&models.Supply{}).
		Where("customer_id = ?", customerUUID).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalAmount)
	config.DB.Model(&models.Supply{}).
		Where("customer_id = ?", customerUUID).
		Select("COALESCE(SUM(paid_amount), 0)").Scan(&totalPaid)

	c.JSON(http.StatusOK, gin.H{"totalDebt": totalAmount - totalPaid})
}
