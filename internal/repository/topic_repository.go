package repository

import (
	"gorm.io/gorm"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/storage"
)

type TopicRepository interface {
	Create(topic *models.Topic) error
	FindByID(id string) (*models.Topic, error)
	FindAll() ([]models.Topic, error)
	Delete(id string) error
}

type topicRepository struct {
	db *storage.PostgresDB
}

func NewTopicRepository(db *storage.PostgresDB) TopicRepository {
	return &topicRepository{db: db}
}

func (r *topicRepository) Create(topic *models.Topic) error {
	return r.db.Create(topic).Error
}

// FindByID 查詢主題並預載其參與者列表
func (r *topicRepository) FindByID(id string) (*models.Topic, error) {
	var topic models.Topic
	err := r.db.Preload("Participants").First(&topic, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepository) FindAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := r.db.Preload("Participants").Order("created_at DESC").Find(&topics).Error
	return topics, err
}

// Delete 以單一交易刪除主題及其所有參與者和訊息
func (r *topicRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.Participant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{ID: id}).Error
	})
}
