package repository

import "github.com/Daksh-T/Civil-Debate/internal/storage"

type Repositories struct {
	User        UserRepository
	Topic       TopicRepository
	Participant ParticipantRepository
	Message     MessageRepository
}

func NewRepositories(db *storage.PostgresDB) *Repositories {
	return &Repositories{
		User:        NewUserRepository(db),
		Topic:       NewTopicRepository(db),
		Participant: NewParticipantRepository(db),
		Message:     NewMessageRepository(db),
	}
}
