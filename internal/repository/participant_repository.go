package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/storage"
)

type ParticipantRepository interface {
	Create(participant *models.Participant) error
	Update(participant *models.Participant) error
	Delete(participant *models.Participant) error
	FindByTopicAndUsername(topicID, username string) (*models.Participant, error)
	FindByTopicID(topicID string) ([]models.Participant, error)
	CountBySide(topicID string, side models.Side) (int64, error)
}

type participantRepository struct {
	db *storage.PostgresDB
}

func NewParticipantRepository(db *storage.PostgresDB) ParticipantRepository {
	return &participantRepository{db: db}
}

func (r *participantRepository) Create(participant *models.Participant) error {
	return r.db.Create(participant).Error
}

func (r *participantRepository) Update(participant *models.Participant) error {
	return r.db.Save(participant).Error
}

func (r *participantRepository) Delete(participant *models.Participant) error {
	return r.db.Delete(participant).Error
}

// FindByTopicAndUsername 查詢特定用戶在主題中的參與記錄
// 不存在時回傳 (nil, nil)，讓呼叫端區分「沒加入」和查詢錯誤
func (r *participantRepository) FindByTopicAndUsername(topicID, username string) (*models.Participant, error) {
	var participant models.Participant
	err := r.db.Where("topic_id = ? AND username = ?", topicID, username).First(&participant).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *participantRepository) FindByTopicID(topicID string) ([]models.Participant, error) {
	var participants []models.Participant
	err := r.db.Where("topic_id = ?", topicID).Find(&participants).Error
	return participants, err
}

// CountBySide 統計主題中特定立場的參與者人數
func (r *participantRepository) CountBySide(topicID string, side models.Side) (int64, error) {
	var count int64
	err := r.db.Model(&models.Participant{}).
		Where("topic_id = ? AND side = ?", topicID, side).
		Count(&count).Error
	return count, err
}
