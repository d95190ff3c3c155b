package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeBudgetThreshold NotificationType = "budget_threshold"
	NotificationTypeBudgetExceeded  NotificationType = "budget_exceeded"
)

// Notification is an in-app alert for a user, currently only produced by
// the budget alert job when monthly spending crosses the configured
// threshold or exceeds the budget outright.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;size:191"`
	UserID    string           `json:"user_id" gorm:"not null;size:191;index"`
	Type      NotificationType `json:"type" gorm:"not null;size:50"`
	Title     string           `json:"title" gorm:"not null;size:255"`
	Message   string           `json:"message" gorm:"size:500"`
	IsRead    bool             `json:"is_read" gorm:"default:false"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// NotificationStats represents notification statistics
type NotificationStats struct {
	UnreadCount int `json:"unread_count"`
	TotalCount  int `json:"total_count"`
}
