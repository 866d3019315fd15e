package repository

import (
	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/storage"
)

type MessageRepository interface {
	Create(message *models.Message) error
	FindByTopicID(topicID string) ([]models.Message, error)
	FindRecent(topicID string, limit int) ([]models.Message, error)
}

type messageRepository struct {
	db *storage.PostgresDB
}

func NewMessageRepository(db *storage.PostgresDB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

// FindByTopicID 依創建順序（舊到新）回傳主題的所有訊息
func (r *messageRepository) FindByTopicID(topicID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("topic_id = ?", topicID).Order("id asc").Find(&messages).Error
	return messages, err
}

// FindRecent 回傳主題最近的 limit 條訊息，新到舊
func (r *messageRepository) FindRecent(topicID string, limit int) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("topic_id = ?", topicID).Order("id desc").Limit(limit).Find(&messages).Error
	return messages, err
}
