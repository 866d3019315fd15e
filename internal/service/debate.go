package service

import (
	"context"
	"fmt"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/moderation"
	"github.com/Daksh-T/Civil-Debate/internal/repository"
)

// 對發言者的系統通知文字，屬於對外行為契約的一部分
const (
	noticeBothSidesRequired = "Debate cannot proceed until there are participants on both sides."
	noticeHostileMessage    = "Your message contains only personal attacks or hate speech. Please adhere to respectful discourse."
)

// historyWindow 送交審核的最近訊息條數上限；實際不足時有多少取多少
const historyWindow = 2

// DebateService 負責單條訊息的守門、審核協調與副作用排序
type DebateService struct {
	topicRepo       repository.TopicRepository
	participantRepo repository.ParticipantRepository
	messageRepo     repository.MessageRepository
	wsManager       *WebSocketManager
	moderator       moderation.Moderator
}

func NewDebateService(
	topicRepo repository.TopicRepository,
	participantRepo repository.ParticipantRepository,
	messageRepo repository.MessageRepository,
	wsManager *WebSocketManager,
	moderator moderation.Moderator,
) *DebateService {
	return &DebateService{
		topicRepo:       topicRepo,
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
		wsManager:       wsManager,
		moderator:       moderator,
	}
}

// HandleIncoming 處理一條傳入的辯論訊息
//
// 每條訊息是獨立的處理單元，WebSocket 層以獨立 goroutine 呼叫本方法，
// 審核期間不阻塞任何其他訊息。同一發言者的多條訊息若審核完成順序
// 不同，廣播順序可能不同。
//
// 副作用順序固定：先入庫，後廣播；任何失敗只私下通知發言者。
// 發言者的立場一律從當前參與者狀態讀取，傳入的 side 僅來自協議欄位。
func (s *DebateService) HandleIncoming(topicID, username, side, text string) {
	// 雙方都要有參與者，辯論才能進行
	forCount, err := s.participantRepo.CountBySide(topicID, models.SideFor)
	if err != nil {
		s.reportFailure(topicID, username, err)
		return
	}
	againstCount, err := s.participantRepo.CountBySide(topicID, models.SideAgainst)
	if err != nil {
		s.reportFailure(topicID, username, err)
		return
	}
	if forCount < 1 || againstCount < 1 {
		s.wsManager.SendSystemMessage(topicID, username, noticeBothSidesRequired)
		return
	}

	input, err := s.buildModerationInput(topicID, username, text)
	if err != nil {
		s.reportFailure(topicID, username, err)
		return
	}

	paraphrase, err := s.moderator.Moderate(context.Background(), *input)
	if err != nil {
		s.reportFailure(topicID, username, err)
		return
	}

	// 空轉述表示訊息只含人身攻擊：不入庫，只私下通知發言者
	if paraphrase == "" {
		s.wsManager.SendSystemMessage(topicID, username, noticeHostileMessage)
		return
	}

	// 先入庫再廣播，入庫失敗就不廣播
	message := &models.Message{
		TopicID:  topicID,
		Username: username,
		Content:  paraphrase,
	}
	if err := s.messageRepo.Create(message); err != nil {
		s.reportFailure(topicID, username, err)
		return
	}

	s.wsManager.Broadcast(topicID, models.ChatMessage{
		Username: username,
		Message:  paraphrase,
	})
}

// buildModerationInput 組裝審核所需的上下文：主題標題、最近兩條訊息
// （舊到新，以各發言者當前立場標註）以及發言者自己的當前立場
func (s *DebateService) buildModerationInput(topicID, username, text string) (*moderation.Input, error) {
	topic, err := s.topicRepo.FindByID(topicID)
	if err != nil {
		return nil, err
	}

	recent, err := s.messageRepo.FindRecent(topicID, historyWindow)
	if err != nil {
		return nil, err
	}

	participants, err := s.participantRepo.FindByTopicID(topicID)
	if err != nil {
		return nil, err
	}

	// 立場一律以當前參與者狀態為準，不使用發言當時的快照
	sides := make(map[string]models.Side, len(participants))
	for _, p := range participants {
		sides[p.Username] = p.Side
	}

	// FindRecent 回傳新到舊，反轉成舊到新
	history := make([]string, 0, len(recent))
	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		history = append(history, fmt.Sprintf("%s (%s): %s", msg.Username, sides[msg.Username].Label(), msg.Content))
	}

	return &moderation.Input{
		TopicTitle: topic.Title,
		History:    history,
		Side:       sides[username].Label(),
		Username:   username,
		Message:    text,
	}, nil
}

// reportFailure 將處理失敗轉為對發言者的私人通知，不影響其他用戶
func (s *DebateService) reportFailure(topicID, username string, err error) {
	s.wsManager.SendSystemMessage(topicID, username,
		fmt.Sprintf("An error occurred while processing your message: %v", err))
}
