package service

import (
	"github.com/Daksh-T/Civil-Debate/internal/moderation"
	"github.com/Daksh-T/Civil-Debate/internal/repository"
	"github.com/Daksh-T/Civil-Debate/pkg/config"
)

type Services struct {
	User      *UserService
	Topic     *TopicService
	Debate    *DebateService
	WebSocket *WebSocketManager
}

func NewServices(repos *repository.Repositories, cfg *config.Config) *Services {
	wsManager := NewWebSocketManager()
	moderator := moderation.NewGroqClient(cfg.Groq.APIKey, cfg.Groq.Model)

	return &Services{
		User:      NewUserService(repos.User),
		Topic:     NewTopicService(repos.Topic, repos.Participant, repos.Message, wsManager),
		Debate:    NewDebateService(repos.Topic, repos.Participant, repos.Message, wsManager, moderator),
		WebSocket: wsManager,
	}
}
