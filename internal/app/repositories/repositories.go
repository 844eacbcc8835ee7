package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	UserRepository         *UserRepository
	ClubRepository         *ClubRepository
	ClubFollowerRepository *ClubFollowerRepository
	EventRepository        *EventRepository
	ParticipantRepository  *ParticipantRepository
	CommentRepository      *CommentRepository
	NotificationRepository *NotificationRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		ClubRepository:         NewClubRepository(db),
		ClubFollowerRepository: NewClubFollowerRepository(db),
		EventRepository:        NewEventRepository(db),
		ParticipantRepository:  NewParticipantRepository(db),
		CommentRepository:      NewCommentRepository(db),
		NotificationRepository: NewNotificationRepository(db),
	}
}
