package dto

import "time"

// CreateCommentRequest defines the payload for adding a comment to an event
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// CommentResponse is the public representation of a comment
type CommentResponse struct {
	ID         int64     `json:"id"`
	EventID    int64     `json:"eventId"`
	UserID     int64     `json:"userId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}
