package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Daksh-T/Civil-Debate/internal/models"
)

type debateFixture struct {
	topics       *fakeTopicRepo
	participants *fakeParticipantRepo
	messages     *fakeMessageRepo
	manager      *WebSocketManager
	moderator    *fakeModerator
	service      *DebateService
}

func newDebateFixture() *debateFixture {
	f := &debateFixture{
		topics:       newFakeTopicRepo(),
		participants: &fakeParticipantRepo{},
		messages:     &fakeMessageRepo{},
		manager:      NewWebSocketManager(),
		moderator:    &fakeModerator{},
	}
	f.topics.Create(&models.Topic{ID: "topic-1", Title: "Pineapple on pizza", Creator: "alice"})
	f.service = NewDebateService(f.topics, f.participants, f.messages, f.manager, f.moderator)
	return f
}

func (f *debateFixture) join(topicID, username string, side models.Side) {
	f.participants.Create(&models.Participant{TopicID: topicID, Username: username, Side: side})
}

func TestHandleIncoming_Blocks_When_One_Side_Empty(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	f.manager.Register(alice)
	f.manager.Register(bob)

	f.service.HandleIncoming("topic-1", "alice", "for", "hello")

	// nothing persisted, moderation never called
	req.Empty(f.messages.messages)
	req.Empty(f.moderator.inputs)

	// exactly one private notice to the sender
	req.Len(alice.Send, 1)
	notice := <-alice.Send
	req.Equal(models.SystemUsername, notice.Username)
	req.Equal("Debate cannot proceed until there are participants on both sides.", notice.Message)
	req.Empty(bob.Send)
}

func TestHandleIncoming_Accept_Persists_Then_Broadcasts(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.paraphrase = "I believe pineapple has merit."

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	eve := newTestClient("topic-2", "eve")
	f.manager.Register(alice)
	f.manager.Register(bob)
	f.manager.Register(eve)

	f.service.HandleIncoming("topic-1", "alice", "for", "pineapple rules, you fools")

	// the paraphrase is persisted, never the raw text
	req.Len(f.messages.messages, 1)
	req.Equal("alice", f.messages.messages[0].Username)
	req.Equal("I believe pineapple has merit.", f.messages.messages[0].Content)

	want := models.ChatMessage{Username: "alice", Message: "I believe pineapple has merit."}
	req.Equal(want, <-alice.Send)
	req.Equal(want, <-bob.Send)
	req.Empty(eve.Send)
}

func TestHandleIncoming_Reject_Notifies_Only_Sender(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.paraphrase = ""

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	f.manager.Register(alice)
	f.manager.Register(bob)

	f.service.HandleIncoming("topic-1", "alice", "for", "you are all idiots")

	req.Empty(f.messages.messages)
	req.Len(alice.Send, 1)
	notice := <-alice.Send
	req.Equal(models.SystemUsername, notice.Username)
	req.Equal("Your message contains only personal attacks or hate speech. Please adhere to respectful discourse.", notice.Message)
	req.Empty(bob.Send)
}

func TestHandleIncoming_Moderation_Failure_Notifies_Sender(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.err = errors.New("request timed out")

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	f.manager.Register(alice)
	f.manager.Register(bob)

	f.service.HandleIncoming("topic-1", "alice", "for", "hello")

	req.Empty(f.messages.messages)
	req.Len(alice.Send, 1)
	notice := <-alice.Send
	req.Equal(models.SystemUsername, notice.Username)
	req.Equal("An error occurred while processing your message: request timed out", notice.Message)
	req.Empty(bob.Send)
}

func TestHandleIncoming_History_Window(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.paraphrase = "ok"

	f.messages.Create(&models.Message{TopicID: "topic-1", Username: "alice", Content: "one"})
	f.messages.Create(&models.Message{TopicID: "topic-1", Username: "bob", Content: "two"})
	f.messages.Create(&models.Message{TopicID: "topic-1", Username: "alice", Content: "three"})

	f.service.HandleIncoming("topic-1", "bob", "against", "next point")

	req.Len(f.moderator.inputs, 1)
	input := f.moderator.inputs[0]
	req.Equal("Pineapple on pizza", input.TopicTitle)
	// only the two most recent messages, oldest first, tagged with current sides
	req.Equal([]string{"bob (Against): two", "alice (For): three"}, input.History)
	req.Equal("Against", input.Side)
	req.Equal("bob", input.Username)
	req.Equal("next point", input.Message)
}

func TestHandleIncoming_History_Shorter_Than_Window(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.paraphrase = "ok"

	f.messages.Create(&models.Message{TopicID: "topic-1", Username: "alice", Content: "only one"})

	f.service.HandleIncoming("topic-1", "bob", "against", "reply")

	req.Len(f.moderator.inputs, 1)
	req.Equal([]string{"alice (For): only one"}, f.moderator.inputs[0].History)
}

func TestHandleIncoming_History_Tags_Unknown_For_Departed_Authors(t *testing.T) {
	req := require.New(t)
	f := newDebateFixture()
	f.join("topic-1", "alice", models.SideFor)
	f.join("topic-1", "bob", models.SideAgainst)
	f.moderator.paraphrase = "ok"

	// carol spoke earlier but has since left the debate
	f.messages.Create(&models.Message{TopicID: "topic-1", Username: "carol", Content: "drive-by point"})

	f.service.HandleIncoming("topic-1", "alice", "for", "responding")

	req.Len(f.moderator.inputs, 1)
	req.Equal([]string{"carol (Unknown): drive-by point"}, f.moderator.inputs[0].History)
}
