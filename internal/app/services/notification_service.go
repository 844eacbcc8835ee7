package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
)

type notificationStore interface {
	BulkCreate(ctx context.Context, userIDs []int64, clubID, eventID *int64, message string) (int64, error)
	ListByUser(ctx context.Context, userID int64, page, limit int) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
}

type followerLookup interface {
	UserIDsByClub(ctx context.Context, clubID int64) ([]int64, error)
}

// NotificationService fans messages out to users and serves their inbox
type NotificationService struct {
	notificationStore notificationStore
	followerStore     followerLookup
	logger            zerolog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationStore notificationStore, followerStore followerLookup, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		notificationStore: notificationStore,
		followerStore:     followerStore,
		logger:            logger,
	}
}

// NotifyFollowers writes one notification row per follower of a club.
// Delivery is best effort for the caller: a returned error means nobody
// was notified, never a partially failed fan-out.
func (s *NotificationService) NotifyFollowers(ctx context.Context, clubID, eventID int64, message string) error {
	userIDs, err := s.followerStore.UserIDsByClub(ctx, clubID)
	if err != nil {
		return fmt.Errorf("failed to resolve followers: %w", err)
	}
	if len(userIDs) == 0 {
		return nil
	}

	created, err := s.notificationStore.BulkCreate(ctx, userIDs, &clubID, &eventID, message)
	if err != nil {
		return err
	}

	s.logger.Info().Int64("clubID", clubID).Int64("count", created).Msg("Followers notified")
	return nil
}

// ListMine returns the caller's notifications, unread ones first and
// newest first inside each group.
func (s *NotificationService) ListMine(ctx context.Context, userID int64, page, limit int) (*dto.NotificationListResponse, error) {
	notifications, _, err := s.notificationStore.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	unread, err := s.notificationStore.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
	}
	for _, n := range notifications {
		resp.Notifications = append(resp.Notifications, dto.NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			ClubID:    n.ClubID,
			EventID:   n.EventID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt,
		})
	}
	return resp, nil
}

// MarkRead marks one of the caller's notifications as read. Another
// user's notification is reported as not found, not as forbidden.
func (s *NotificationService) MarkRead(ctx context.Context, notificationID, userID int64) error {
	return s.notificationStore.MarkRead(ctx, notificationID, userID)
}

// MarkAllRead marks every unread notification of the caller as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	return s.notificationStore.MarkAllRead(ctx, userID)
}

// CountUnread returns the caller's unread notification count.
func (s *NotificationService) CountUnread(ctx context.Context, userID int64) (int, error) {
	return s.notificationStore.CountUnread(ctx, userID)
}
