package repositories

import (
	"github.com/shecodes/community-api/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository        *UserRepository
	MentorRepository      *MentorRepository
	EventRepository       *EventRepository
	ParticipantRepository *ParticipantRepository
	CommentRepository     *CommentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(pg *db.PostgresDB) *Repositories {
	return &Repositories{
		UserRepository:        NewUserRepository(pg.Pool),
		MentorRepository:      NewMentorRepository(pg.Pool),
		EventRepository:       NewEventRepository(pg),
		ParticipantRepository: NewParticipantRepository(pg.Pool),
		CommentRepository:     NewCommentRepository(pg),
	}
}
