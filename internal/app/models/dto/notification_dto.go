package dto

import "time"

// NotificationResponse is the public representation of a notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	ClubID    *int64    `json:"clubId,omitempty"`
	EventID   *int64    `json:"eventId,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationListResponse carries a user's notifications, unread first
type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unreadCount"`
}
