package jobs

import (
	"fmt"
	"time"

	"fuelcosmos-api/models"
	"fuelcosmos-api/repositories"
	"fuelcosmos-api/services"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BudgetAlertJob periodically checks every user's monthly spending
// against their budget threshold and raises a notification plus an email
// the first time it is crossed in a given month.
type BudgetAlertJob struct {
	db           *gorm.DB
	fillUpRepo   *repositories.FillUpRepository
	emailService *services.EmailService
	ticker       *time.Ticker
	done         chan bool
}

// NewBudgetAlertJob creates a new budget alert job
func NewBudgetAlertJob(db *gorm.DB, emailService *services.EmailService, interval time.Duration) *BudgetAlertJob {
	return &BudgetAlertJob{
		db:           db,
		fillUpRepo:   repositories.NewFillUpRepository(db),
		emailService: emailService,
		ticker:       time.NewTicker(interval),
		done:         make(chan bool),
	}
}

// Start begins the alert job
func (j *BudgetAlertJob) Start() {
	logrus.Info("Budget alert job started")

	go func() {
		// Run immediately on start
		j.check()

		// Then run on schedule
		for {
			select {
			case <-j.ticker.C:
				j.check()
			case <-j.done:
				logrus.Info("Budget alert job stopped")
				return
			}
		}
	}()
}

// Stop stops the alert job
func (j *BudgetAlertJob) Stop() {
	j.ticker.Stop()
	j.done <- true
}

// check performs one pass over all budgets
func (j *BudgetAlertJob) check() {
	var budgets []models.Budget
	if err := j.db.Preload("User").Find(&budgets).Error; err != nil {
		logrus.Errorf("Budget alert scan failed: %v", err)
		return
	}

	now := time.Now()
	for _, budget := range budgets {
		if budget.MonthlyAmount <= 0 {
			continue
		}

		spent, err := j.fillUpRepo.SumCostForMonth(budget.UserID, now.Year(), now.Month())
		if err != nil {
			logrus.Errorf("Could not sum monthly spend for user %s: %v", budget.UserID, err)
			continue
		}

		percentUsed := spent / budget.MonthlyAmount * 100
		if percentUsed < budget.AlertThresholdPercent {
			continue
		}

		alertType := models.NotificationTypeBudgetThreshold
		if percentUsed >= 100 {
			alertType = models.NotificationTypeBudgetExceeded
		}

		if j.alreadyNotified(budget.UserID, alertType, now) {
			continue
		}

		usage := models.BudgetUsage{
			Month:          now.Format("2006-01"),
			MonthlyAmount:  budget.MonthlyAmount,
			SpentThisMonth: spent,
			PercentUsed:    percentUsed,
		}
		j.notify(budget, alertType, usage)
	}
}

// alreadyNotified checks for an existing alert of this type in the
// current month, so a user gets at most one per month per type.
func (j *BudgetAlertJob) alreadyNotified(userID string, alertType models.NotificationType, now time.Time) bool {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	var count int64
	j.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ? AND created_at >= ?", userID, alertType, monthStart).
		Count(&count)
	return count > 0
}

func (j *BudgetAlertJob) notify(budget models.Budget, alertType models.NotificationType, usage models.BudgetUsage) {
	title := "Fuel budget warning"
	if alertType == models.NotificationTypeBudgetExceeded {
		title = "Fuel budget exceeded"
	}

	notification := models.Notification{
		ID:     uuid.New().String(),
		UserID: budget.UserID,
		Type:   alertType,
		Title:  title,
		Message: fmt.Sprintf("You have used %.1f%% of your %s fuel budget (%.2f of %.2f %s)",
			usage.PercentUsed, usage.Month, usage.SpentThisMonth, usage.MonthlyAmount, budget.Currency),
	}
	if err := j.db.Create(&notification).Error; err != nil {
		logrus.Errorf("Could not create budget notification for user %s: %v", budget.UserID, err)
		return
	}

	if err := j.emailService.SendBudgetAlertEmail(budget.User.Email, budget.User.Name, usage); err != nil {
		// Notification is already stored; the email is best-effort
		logrus.Warnf("Could not send budget alert email to %s: %v", budget.User.Email, err)
	}
}
