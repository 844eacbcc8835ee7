package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dyilmaz/campushub/internal/app/models"
	"github.com/dyilmaz/campushub/internal/app/models/dto"
	"github.com/dyilmaz/campushub/internal/pkg/apperrors"
)

type commentStore interface {
	Create(ctx context.Context, comment *models.EventComment) error
	GetByID(ctx context.Context, id int64) (*models.EventComment, error)
	ListByEvent(ctx context.Context, eventID int64) ([]models.EventComment, error)
	SoftDelete(ctx context.Context, id int64) error
}

type commentEventStore interface {
	GetByID(ctx context.Context, id int64) (*models.Event, error)
}

type commentUserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
}

// CommentService handles event comments
type CommentService struct {
	commentStore commentStore
	eventStore   commentEventStore
	userStore    commentUserStore
	logger       zerolog.Logger
}

// NewCommentService creates a new CommentService
func NewCommentService(commentStore commentStore, eventStore commentEventStore, userStore commentUserStore, logger zerolog.Logger) *CommentService {
	return &CommentService{
		commentStore: commentStore,
		eventStore:   eventStore,
		userStore:    userStore,
		logger:       logger,
	}
}

// Add attaches a comment to a live event.
func (s *CommentService) Add(ctx context.Context, eventID, userID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperrors.NewBadRequestError("comment content cannot be empty")
	}

	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsDeleted {
		return nil, apperrors.ErrEventNotFound
	}

	comment := &models.EventComment{
		EventID: eventID,
		UserID:  userID,
		Content: content,
	}
	if err := s.commentStore.Create(ctx, comment); err != nil {
		return nil, err
	}

	resp := toCommentResponse(comment)
	if user, err := s.userStore.FindByID(ctx, userID); err == nil {
		resp.AuthorName = user.FullName()
	}

	s.logger.Info().Int64("eventID", eventID).Int64("userID", userID).Msg("Comment added")
	return &resp, nil
}

// List returns an event's visible comments, newest first.
func (s *CommentService) List(ctx context.Context, eventID int64) ([]dto.CommentResponse, error) {
	event, err := s.eventStore.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.IsDeleted {
		return nil, apperrors.ErrEventNotFound
	}

	comments, err := s.commentStore.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	resp := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		entry := toCommentResponse(&comments[i])
		if comments[i].User != nil {
			entry.AuthorName = comments[i].User.FullName()
		}
		resp = append(resp, entry)
	}
	return resp, nil
}

// Delete soft-deletes a comment. Only its author or an admin may do so.
func (s *CommentService) Delete(ctx context.Context, commentID, actorID int64, actorRole models.Role) error {
	comment, err := s.commentStore.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if actorRole != models.RoleAdmin && comment.UserID != actorID {
		return apperrors.ErrPermissionDenied
	}

	if err := s.commentStore.SoftDelete(ctx, commentID); err != nil {
		return err
	}

	s.logger.Info().Int64("commentID", commentID).Int64("actorID", actorID).Msg("Comment deleted")
	return nil
}

func toCommentResponse(comment *models.EventComment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		EventID:   comment.EventID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}
