// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"creditbook-backend/ledger"
	"creditbook-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendRepaymentReminders()
	})

	c.Start()
	log.Println("Repayment reminder scheduler started")
}

// SendRepaymentReminders notifies customers whose purchases are overdue or
// due within the next 7 days and still carry an outstanding balance.
func (s *ReminderService) SendRepaymentReminders() {
	log.Println("Starting repayment reminder processing...")

	cutoff := time.Now().AddDate(0, 0, 7)

	var purchases []models.Purchase
	if err := s.db.Preload("Customer").Preload("Products.Product").Preload("Payments").
		Where("repayment_date <= ?", cutoff).
		Find(&purchases).Error; err != nil {
		log.Printf("Failed to fetch due purchases: %v", err)
		return
	}

	for _, purchase := range purchases {
		remaining := ledger.RemainingDebtForPurchase(ledger.FromPurchase(purchase))
		if remaining <= 0 {
			continue
		}
		s.sendReminder(purchase, remaining)
	}

	log.Println("Repayment reminder processing completed")
}

func (s *ReminderService) sendReminder(purchase models.Purchase, remaining float64) {
	customer := purchase.Customer
	if customer.Phone == "" {
		log.Printf("Customer %s has no phone, skipping reminder", customer.ID)
		return
	}

	message := fmt.Sprintf(
		"Hi %s, your purchase from %s has %.2f outstanding, due on %s. Please arrange your repayment.",
		customer.FullName,
		purchase.CreatedAt.Format("02.01.2006"),
		remaining,
		purchase.RepaymentDate.Format("02.01.2006"),
	)

	// Determine channel (WhatsApp if available, else SMS)
	channel := "sms"
	var to string

	// Use WhatsApp if phone is in E.164 format and starts with '+'
	if strings.HasPrefix(customer.Phone, "+") {
		to = "whatsapp:" + customer.Phone
		channel = "whatsapp"
	} else {
		to = customer.Phone
	}

	// Send message via Twilio
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)

	// Use WhatsApp sender if available
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, err := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""

	if err != nil {
		log.Printf("Failed to send reminder to %s: %v", customer.Phone, err)
		status = "failed"
		errorMsg = err.Error()
	} else if resp.Sid != nil {
		log.Printf("Reminder sent to %s, SID: %s", customer.Phone, *resp.Sid)
	} else {
		log.Printf("Reminder sent to %s, but no SID returned", customer.Phone)
	}

	// Log the reminder
	reminderLog := models.ReminderLog{
		CustomerID:   customer.ID,
		PurchaseID:   purchase.ID,
		Message:      message,
		Status:       status,
		ErrorMessage: errorMsg,
		Channel:      channel,
		SentAt:       time.Now(),
	}

	if err := s.db.Create(&reminderLog).Error; err != nil {
		log.Printf("Failed to log reminder for customer %s: %v", customer.ID, err)
	}
}
