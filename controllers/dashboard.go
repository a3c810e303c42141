package controllers

import (
	"fmt"
	"net/http"
	"time"

	"creditbook-backend/config"
	"creditbook-backend/ledger"
	"creditbook-backend/models"
	"creditbook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OverduePurchase struct {
	PurchaseID    uuid.UUID `json:"purchaseId"`
	CustomerName  string    `json:"customerName"`
	RemainingDebt float64   `json:"remainingDebt"`
	Due           string    `json:"due"` // e.g. "Today", "3 days overdue"
}

type RecentPayment struct {
	CustomerName string  `json:"customerName"`
	ProductName  string  `json:"productName"`
	PaidAmount   float64 `json:"paidAmount"`
	PaidAt       string  `json:"paidAt"` // e.g. "Today", "Yesterday"
}

// GetDashboardOverview summarizes the book: entity counts, outstanding
// receivable, overdue purchases and the latest payments
func GetDashboardOverview(c *gin.Context) {
	// Entity counts
	var totalCustomers, totalProducts, totalPurchases int64
	config.DB.Model(&models.Customer{}).Count(&totalCustomers)
	config.DB.Model(&models.Product{}).Count(&totalProducts)
	config.DB.Model(&models.Purchase{}).Count(&totalPurchases)

	// This month's collected payments
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	var monthlyCollected float64
	config.DB.Model(&models.Payment{}).
		Where("created_at >= ?", firstOfMonth).
		Select("COALESCE(SUM(paid_amount), 0)").Scan(&monthlyCollected)

	// Outstanding receivable and overdue purchases. Data volumes here are
	// modest; the arithmetic runs over loaded purchases rather than in SQL.
	var purchases []models.Purchase
	config.DB.Preload("Customer").Preload("Products.Product").Preload("Payments").
		Find(&purchases)

	var totalOutstanding float64
	var overdue []OverduePurchase
	today := utils.BeginningOfDay(now)

	for _, purchase := range purchases {
		remaining := ledger.RemainingDebtForPurchase(ledger.FromPurchase(purchase))
		if remaining <= 0 {
			continue
		}
		totalOutstanding += remaining

		if purchase.RepaymentDate.After(today) {
			continue
		}

		daysOver := utils.DaysBetween(purchase.RepaymentDate, now)
		var due string
		switch daysOver {
		case 0:
			due = "Today"
		case 1:
			due = "1 day overdue"
		default:
			due = fmt.Sprintf("%d days overdue", daysOver)
		}

		if len(overdue) < 7 {
			overdue = append(overdue, OverduePurchase{
				PurchaseID:    purchase.ID,
				CustomerName:  purchase.Customer.FullName,
				RemainingDebt: remaining,
				Due:           due,
			})
		}
	}

	// Recent payments (last 5)
	var payments []models.Payment
	config.DB.Preload("Purchase.Customer").Preload("Product").
		Order("created_at DESC").Limit(5).
		Find(&payments)

	recentPayments := make([]RecentPayment, 0, len(payments))
	for _, payment := range payments {
		daysAgo := utils.DaysBetween(payment.CreatedAt, now)
		var paidAt string
		switch daysAgo {
		case 0:
			paidAt = "Today"
		case 1:
			paidAt = "Yesterday"
		default:
			paidAt = fmt.Sprintf("%d days ago", daysAgo)
		}

		recentPayments = append(recentPayments, RecentPayment{
			CustomerName: payment.Purchase.Customer.FullName,
			ProductName:  payment.Product.Name,
			PaidAmount:   payment.PaidAmount,
			PaidAt:       paidAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"totalCustomers":   totalCustomers,
		"totalProducts":    totalProducts,
		"totalPurchases":   totalPurchases,
		"monthlyCollected": monthlyCollected,
		"totalOutstanding": totalOutstanding,
		"overduePurchases": overdue,
		"recentPayments":   recentPayments,
	})
}
