package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Daksh-T/Civil-Debate/internal/models"
	"github.com/Daksh-T/Civil-Debate/internal/moderation"
)

// in-memory repository fakes shared by the service tests

type fakeTopicRepo struct {
	topics  map[string]*models.Topic
	deleted []string
}

func newFakeTopicRepo() *fakeTopicRepo {
	return &fakeTopicRepo{topics: make(map[string]*models.Topic)}
}

func (r *fakeTopicRepo) Create(topic *models.Topic) error {
	r.topics[topic.ID] = topic
	return nil
}

func (r *fakeTopicRepo) FindByID(id string) (*models.Topic, error) {
	topic, ok := r.topics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return topic, nil
}

func (r *fakeTopicRepo) FindAll() ([]models.Topic, error) {
	topics := make([]models.Topic, 0, len(r.topics))
	for _, t := range r.topics {
		topics = append(topics, *t)
	}
	return topics, nil
}

func (r *fakeTopicRepo) Delete(id string) error {
	delete(r.topics, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeParticipantRepo struct {
	participants []*models.Participant
	nextID       uint
}

func (r *fakeParticipantRepo) Create(p *models.Participant) error {
	r.nextID++
	p.ID = r.nextID
	clone := *p
	r.participants = append(r.participants, &clone)
	return nil
}

func (r *fakeParticipantRepo) Update(p *models.Participant) error {
	for _, existing := range r.participants {
		if existing.ID == p.ID {
			existing.Side = p.Side
			return nil
		}
	}
	return errors.New("participant not found")
}

func (r *fakeParticipantRepo) Delete(p *models.Participant) error {
	for i, existing := range r.participants {
		if existing.ID == p.ID {
			r.participants = append(r.participants[:i], r.participants[i+1:]...)
			return nil
		}
	}
	return errors.New("participant not found")
}

func (r *fakeParticipantRepo) FindByTopicAndUsername(topicID, username string) (*models.Participant, error) {
	for _, p := range r.participants {
		if p.TopicID == topicID && p.Username == username {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeParticipantRepo) FindByTopicID(topicID string) ([]models.Participant, error) {
	var out []models.Participant
	for _, p := range r.participants {
		if p.TopicID == topicID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeParticipantRepo) CountBySide(topicID string, side models.Side) (int64, error) {
	var count int64
	for _, p := range r.participants {
		if p.TopicID == topicID && p.Side == side {
			count++
		}
	}
	return count, nil
}

type fakeMessageRepo struct {
	messages []models.Message
	nextID   uint
}

func (r *fakeMessageRepo) Create(message *models.Message) error {
	r.nextID++
	message.ID = r.nextID
	r.messages = append(r.messages, *message)
	return nil
}

func (r *fakeMessageRepo) FindByTopicID(topicID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.TopicID == topicID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) FindRecent(topicID string, limit int) ([]models.Message, error) {
	all, _ := r.FindByTopicID(topicID)
	var out []models.Message
	for i := len(all) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, all[i])
	}
	return out, nil
}

// fakeModerator records its inputs and returns a canned outcome
type fakeModerator struct {
	paraphrase string
	err        error
	inputs     []moderation.Input
}

func (m *fakeModerator) Moderate(_ context.Context, input moderation.Input) (string, error) {
	m.inputs = append(m.inputs, input)
	return m.paraphrase, m.err
}

func newTestClient(topicID, username string) *Client {
	return &Client{
		TopicID:  topicID,
		Username: username,
		Send:     make(chan models.ChatMessage, 8),
	}
}
