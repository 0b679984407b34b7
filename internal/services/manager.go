package services

import (
	"context"

	"fitness-tracker/internal/database"
	"fitness-tracker/internal/social"
	"fitness-tracker/internal/utils"
)

type ServiceManager struct {
	Tracker      *TrackerService
	Analytics    *AnalyticsService
	Share        *ShareService
	Notification *NotificationService
}

func NewServiceManager(ctx context.Context, store database.Store, poster social.Poster, clock utils.Clock) (*ServiceManager, error) {
	tracker, err := NewTrackerService(ctx, store, clock)
	if err != nil {
		return nil, err
	}

	return &ServiceManager{
		Tracker:      tracker,
		Analytics:    NewAnalyticsService(tracker, clock),
		Share:        NewShareService(poster),
		Notification: nil,
	}, nil
}

// SetNotificationSender enables push notifications and routes goal
// achievements through them.
func (sm *ServiceManager) SetNotificationSender(sender NotificationSender) {
	sm.Notification = NewNotificationService(sender, sm.Tracker, sm.Analytics)
	sm.Tracker.OnAchievement(sm.Notification.SendAchievement)
}

// SetPoster replaces the share target, keeping the output writer.
func (sm *ServiceManager) SetPoster(poster social.Poster) {
	sm.Share.poster = poster
}
