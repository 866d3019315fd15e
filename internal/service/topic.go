package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/repository"
)

// 會員管理邊界對呼叫端的明確拒絕，處理器據此對應 HTTP 狀態碼
var (
	ErrTopicNotFound  = errors.New("Topic not found.")
	ErrInvalidSide    = errors.New("Invalid side. Choose 'for' or 'against'.")
	ErrNotParticipant = errors.New("User not part of this debate.")
	ErrNotCreator     = errors.New("Only the creator can delete this debate.")
)

// noticeDebatePaused 一方沒有參與者時向主題廣播的暫停通知
const noticeDebatePaused = "Debate is paused. Waiting for participants on the opposing side."

// TopicResponse 是主題查詢的回應格式，附帶雙方參與者名單
type TopicResponse struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Creator string   `json:"creator"`
	For     []string `json:"for"`
	Against []string `json:"against"`
}

// TopicService 管理辯論主題與參與者
type TopicService struct {
	topicRepo       repository.TopicRepository
	participantRepo repository.ParticipantRepository
	messageRepo     repository.MessageRepository
	wsManager       *WebSocketManager
}

func NewTopicService(
	topicRepo repository.TopicRepository,
	participantRepo repository.ParticipantRepository,
	messageRepo repository.MessageRepository,
	wsManager *WebSocketManager,
) *TopicService {
	return &TopicService{
		topicRepo:       topicRepo,
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
		wsManager:       wsManager,
	}
}

// CreateTopic 創建新的辯論主題
func (s *TopicService) CreateTopic(title, creator string) (*TopicResponse, error) {
	topic := &models.Topic{
		ID:      uuid.NewString(),
		Title:   title,
		Creator: creator,
	}
	if err := s.topicRepo.Create(topic); err != nil {
		return nil, err
	}
	return s.toResponse(topic), nil
}

// GetTopic 查詢單一主題
func (s *TopicService) GetTopic(topicID string) (*TopicResponse, error) {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil {
		return nil, ErrTopicNotFound
	}
	return s.toResponse(topic), nil
}

// ListTopics 查詢所有主題
func (s *TopicService) ListTopics() ([]TopicResponse, error) {
	topics, err := s.topicRepo.FindAll()
	if err != nil {
		return nil, err
	}

	responses := make([]TopicResponse, 0, len(topics))
	for i := range topics {
		responses = append(responses, *s.toResponse(&topics[i]))
	}
	return responses, nil
}

// JoinTopic 讓用戶以指定立場加入主題
// 同一用戶重複加入不會產生重複記錄，改變立場時只更新現有記錄
// 回傳的訊息說明辯論是否可以開始
func (s *TopicService) JoinTopic(topicID, username string, side models.Side) (string, error) {
	if !side.Valid() {
		return "", ErrInvalidSide
	}
	if _, err := s.topicRepo.FindByID(topicID); err != nil {
		return "", ErrTopicNotFound
	}

	existing, err := s.participantRepo.FindByTopicAndUsername(topicID, username)
	if err != nil {
		return "", err
	}
	if existing != nil {
		if existing.Side != side {
			existing.Side = side
			if err := s.participantRepo.Update(existing); err != nil {
				return "", err
			}
		}
	} else {
		participant := &models.Participant{
			TopicID:  topicID,
			Username: username,
			Side:     side,
		}
		if err := s.participantRepo.Create(participant); err != nil {
			return "", err
		}
	}

	ready, err := s.bothSidesPresent(topicID)
	if err != nil {
		return "", err
	}
	if ready {
		return fmt.Sprintf("%s joined %s. Debate can begin.", username, side), nil
	}
	return fmt.Sprintf("%s joined %s. Waiting for participants on the other side.", username, side), nil
}

// LeaveTopic 讓用戶離開主題
// 若一方因此沒有參與者，向主題廣播暫停通知
func (s *TopicService) LeaveTopic(topicID, username string) error {
	if _, err := s.topicRepo.FindByID(topicID); err != nil {
		return ErrTopicNotFound
	}

	participant, err := s.participantRepo.FindByTopicAndUsername(topicID, username)
	if err != nil {
		return err
	}
	if participant == nil {
		return ErrNotParticipant
	}

	if err := s.participantRepo.Delete(participant); err != nil {
		return err
	}

	ready, err := s.bothSidesPresent(topicID)
	if err != nil {
		return err
	}
	if !ready {
		s.wsManager.BroadcastSystemMessage(topicID, noticeDebatePaused)
	}
	return nil
}

// DeleteTopic 刪除主題，只有創建者可以執行
// 先強制關閉主題的所有連接，再級聯刪除參與者和訊息
func (s *TopicService) DeleteTopic(topicID, username string) error {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil {
		return ErrTopicNotFound
	}
	if topic.Creator != username {
		return ErrNotCreator
	}

	s.wsManager.CloseTopic(topicID)
	return s.topicRepo.Delete(topicID)
}

// GetMessages 回傳主題的歷史訊息，舊到新
func (s *TopicService) GetMessages(topicID string) ([]models.ChatMessage, error) {
	messages, err := s.messageRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, err
	}
	return lo.Map(messages, func(m models.Message, _ int) models.ChatMessage {
		return models.ChatMessage{Username: m.Username, Message: m.Content}
	}), nil
}

// bothSidesPresent 檢查主題雙方是否都至少有一位參與者
func (s *TopicService) bothSidesPresent(topicID string) (bool, error) {
	forCount, err := s.participantRepo.CountBySide(topicID, models.SideFor)
	if err != nil {
		return false, err
	}
	againstCount, err := s.participantRepo.CountBySide(topicID, models.SideAgainst)
	if err != nil {
		return false, err
	}
	return forCount >= 1 && againstCount >= 1, nil
}

// toResponse 組裝主題回應，依立場整理參與者名單
func (s *TopicService) toResponse(topic *models.Topic) *TopicResponse {
	return &TopicResponse{
		ID:      topic.ID,
		Title:   topic.Title,
		Creator: topic.Creator,
		For: lo.FilterMap(topic.Participants, func(p models.Participant, _ int) (string, bool) {
			return p.Username, p.Side == models.SideFor
		}),
		Against: lo.FilterMap(topic.Participants, func(p models.Participant, _ int) (string, bool) {
			return p.Username, p.Side == models.SideAgainst
		}),
	}
}
