package services

import (
	"fmt"
	"log"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/utils"
)

// NotificationSender delivers a text message to the user.
type NotificationSender interface {
	SendMessage(text string) error
}

type NotificationService struct {
	sender    NotificationSender
	tracker   *TrackerService
	analytics *AnalyticsService
}

func NewNotificationService(sender NotificationSender, tracker *TrackerService, analytics *AnalyticsService) *NotificationService {
	return &NotificationService{
		sender:    sender,
		tracker:   tracker,
		analytics: analytics,
	}
}

// SendDailySummary pushes the full summary.
func (ns *NotificationService) SendDailySummary() {
	log.Printf("🔔 Sending daily summary")
	if err := ns.sender.SendMessage(ns.tracker.Summary()); err != nil {
		log.Printf("⚠️ Failed to send daily summary: %v", err)
	}
}

func (ns *NotificationService) SendWeeklyReport() {
	log.Printf("🔔 Sending weekly report")
	report := FormatWeeklyReport(ns.analytics.GetWeeklyReport())
	if err := ns.sender.SendMessage(report); err != nil {
		log.Printf("⚠️ Failed to send weekly report: %v", err)
	}
}

// SendAchievement is wired as the tracker's AchievementFunc.
func (ns *NotificationService) SendAchievement(name string, goal database.Goal) {
	message := fmt.Sprintf("🏆 Goal achieved: %s (%s/%s)",
		name, utils.FormatNumber(goal.CurrentValue), utils.FormatNumber(goal.TargetValue))
	if err := ns.sender.SendMessage(message); err != nil {
		log.Printf("⚠️ Failed to send achievement for %s: %v", name, err)
	}
}
