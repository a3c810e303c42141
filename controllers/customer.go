package controllers

import (
	"errors"
	"net/http"

	"creditbook-backend/config"
	"creditbook-backend/ledger"
	"creditbook-backend/models"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCustomerInput defines the expected JSON structure for creating a customer
type CreateCustomerInput struct {
	Name        string `json:"name" binding:"required"`
	Surname     string `json:"surname" binding:"required"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// purchaseWithDebt decorates a purchase row with the derived amounts the
// customer details view shows next to it.
type purchaseWithDebt struct {
	models.Purchase
	CurrentTotal        float64 `json:"currentTotal"`
	RemainingDebt       float64 `json:"remainingDebt"`
	PaidProductQuantity int     `json:"paidProductQuantity"`
}

// CreateCustomer registers a new customer
func CreateCustomer(c *gin.Context) {
	var input CreateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	customer := models.Customer{
		Name:        input.Name,
		Surname:     input.Surname,
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		Description: input.Description,
	}

	if err := config.DB.Create(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	c.JSON(http.StatusCreated, customer)
}

// GetCustomers retrieves customers page by page
func GetCustomers(c *gin.Context) {
	page, limit := paginationParams(c, 30)

	var customers []models.Customer
	if err := config.DB.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	var total int64
	config.DB.Model(&models.Customer{}).Count(&total)

	c.JSON(http.StatusOK, gin.H{
		"data":  customers,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}

// GetCustomersBasic retrieves all customers as id/fullName rows for pickers
func GetCustomersBasic(c *gin.Context) {
	var customers []struct {
		ID       uuid.UUID `json:"id"`
		FullName string    `json:"fullName"`
	}
	if err := config.DB.Model(&models.Customer{}).
		Select("id", "full_name").
		Scan(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": customers})
}

// GetCustomerDetails returns the customer together with a filtered purchase
// window, the window's debt totals, the per-product sales rollup and the
// customer's supplies. Date and search filters narrow the window, and the
// totals are window-scoped: they change with the filters.
func GetCustomerDetails(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	dateFrom := c.Query("date_from")
	dateTo := c.Query("date_to")
	search := c.Query("search")
	page, limit := paginationParams(c, 20)

	query := config.DB.Preload("Products.Product").Preload("Payments").
		Where("customer_id = ?", customerUUID).
		Order("created_at DESC")

	if dateFrom != "" {
		query = query.Where("created_at >= ?", dateFrom)
	}
	if dateTo != "" {
		query = query.Where("created_at <= ?", dateTo)
	}
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("description LIKE ? OR CAST(id AS TEXT) LIKE ?", pattern, pattern)
	}

	var purchases []models.Purchase
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Find(&purchases).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchases")
		return
	}

	// Per-purchase derived amounts plus the window totals
	snapshots := make([]ledger.Purchase, 0, len(purchases))
	window := make([]purchaseWithDebt, 0, len(purchases))
	for _, purchase := range purchases {
		snap := ledger.FromPurchase(purchase)
		snapshots = append(snapshots, snap)

		paidQty := 0
		for _, payment := range purchase.Payments {
			paidQty += payment.ProductQuantity
		}

		window = append(window, purchaseWithDebt{
			Purchase:            purchase,
			CurrentTotal:        ledger.CurrentTotal(snap),
			RemainingDebt:       ledger.RemainingDebtForPurchase(snap),
			PaidProductQuantity: paidQty,
		})
	}
	totals := ledger.ComputeWindowTotals(snapshots)

	// Product rollup runs over the customer's purchases within the date
	// filter, independent of the search filter and pagination
	rollupQuery := config.DB.Preload("Products.Product").Preload("Payments").
		Where("customer_id = ?", customerUUID)
	if dateFrom != "" {
		rollupQuery = rollupQuery.Where("created_at >= ?", dateFrom)
	}
	if dateTo != "" {
		rollupQuery = rollupQuery.Where("created_at <= ?", dateTo)
	}

	var allPurchases []models.Purchase
	if err := rollupQuery.Order("created_at ASC").Find(&allPurchases).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve purchases")
		return
	}
	productBasedSales := ledger.ProductRollup(ledger.FromPurchases(allPurchases))

	var supplies []models.Supply
	config.DB.Where("customer_id = ?", customerUUID).
		Order("created_at DESC").Limit(10).
		Find(&supplies)

	c.JSON(http.StatusOK, gin.H{
		"customer":             customer,
		"purchases":            gin.H{"data": window, "page": page, "limit": limit},
		"totalDebt":            totals.TotalDebt,
		"totalPaid":            totals.TotalPaid,
		"totalBargainDiscount": totals.TotalBargainDiscount,
		"remainingDebt":        totals.RemainingDebt,
		"productBasedSales":    productBasedSales,
		"supplies":             supplies,
		"filters": gin.H{
			"date_from": dateFrom,
			"date_to":   dateTo,
			"search":    search,
		},
	})
}

// GetCustomerPaymentHistory returns the customer's payments across all of
// their purchases, newest first, with optional date and search filters
func GetCustomerPaymentHistory(c *gin.Context) {
	customerUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.Customer
	if err := config.DB.First(&customer, "id = ?", customerUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	page, limit := paginationParams(c, 20)

	query := config.DB.Preload("Purchase").Preload("Product").
		Joins("JOIN purchases ON purchases.id = payments.purchase_id").
		Where("purchases.customer_id = ?", customerUUID).
		Order("payments.created_at DESC")

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		query = query.Where("payments.created_at >= ?", dateFrom)
	}
	if dateTo := c.Query("date_to"); dateTo != "" {
		query = query.Where("payments.created_at <= ?", dateTo)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("payments.description LIKE ?", "%"+search+"%")
	}

	var payments []models.Payment
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Find(&payments).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payments")
		return
	}

	var totalPaidAmount float64
	for _, payment := range payments {
		totalPaidAmount += payment.PaidAmount
	}

	c.JSON(http.StatusOK, gin.H{
		"payments":        gin.H{"data": payments, "page": page, "limit": limit},
		"totalPaidAmount": totalPaidAmount,
		"customer":        customer,
	})
}
