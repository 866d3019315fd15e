package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Daksh-T/Civil-Debate/internal/models"
)

func TestRegister_Overwrites_Same_User(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	first := newTestClient("topic-1", "alice")
	second := newTestClient("topic-1", "alice")

	manager.Register(first)
	manager.Register(second)

	// only the latest connection for a (topic, username) pair survives
	req.Len(manager.LookupAll("topic-1"), 1)
	got, ok := manager.LookupOne("topic-1", "alice")
	req.True(ok)
	req.Same(second, got)
}

func TestRegistry_Topic_Isolation(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	manager.Register(newTestClient("topic-a", "alice"))

	req.Len(manager.LookupAll("topic-a"), 1)
	req.Empty(manager.LookupAll("topic-b"))
	_, ok := manager.LookupOne("topic-b", "alice")
	req.False(ok)
}

func TestUnregister_Removes_Empty_Topic(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	manager.Register(newTestClient("topic-1", "alice"))
	manager.Register(newTestClient("topic-1", "bob"))

	manager.Unregister("topic-1", "alice")
	req.Len(manager.LookupAll("topic-1"), 1)

	manager.Unregister("topic-1", "bob")
	req.Empty(manager.LookupAll("topic-1"))

	// unregistering an absent entry is a no-op
	manager.Unregister("topic-1", "bob")
	manager.Unregister("unknown-topic", "alice")
}

func TestBroadcast_Reaches_Only_Topic_Members(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	eve := newTestClient("topic-2", "eve")
	manager.Register(alice)
	manager.Register(bob)
	manager.Register(eve)

	msg := models.ChatMessage{Username: "alice", Message: "hello"}
	manager.Broadcast("topic-1", msg)

	req.Equal(msg, <-alice.Send)
	req.Equal(msg, <-bob.Send)
	req.Empty(eve.Send)
}

func TestBroadcast_Drops_Stalled_Client_And_Continues(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	// unbuffered channel with no reader simulates a dead peer
	stalled := &Client{TopicID: "topic-1", Username: "alice", Send: make(chan models.ChatMessage)}
	healthy := newTestClient("topic-1", "bob")
	manager.Register(stalled)
	manager.Register(healthy)

	manager.Broadcast("topic-1", models.NewSystemMessage("ping"))

	// the stalled client is evicted, the healthy one still got the message
	req.Len(manager.LookupAll("topic-1"), 1)
	req.Len(healthy.Send, 1)
}

func TestSendPrivate_Targets_One_User(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	alice := newTestClient("topic-1", "alice")
	bob := newTestClient("topic-1", "bob")
	manager.Register(alice)
	manager.Register(bob)

	manager.SendPrivate("topic-1", "alice", models.NewSystemMessage("for your eyes only"))

	req.Len(alice.Send, 1)
	req.Empty(bob.Send)

	// absent recipient is a silent no-op
	manager.SendPrivate("topic-1", "carol", models.NewSystemMessage("nobody home"))
}

func TestCloseTopic_Empties_Registry(t *testing.T) {
	req := require.New(t)
	manager := NewWebSocketManager()

	manager.Register(newTestClient("topic-1", "alice"))
	manager.Register(newTestClient("topic-1", "bob"))
	manager.Register(newTestClient("topic-2", "eve"))

	manager.CloseTopic("topic-1")

	req.Empty(manager.LookupAll("topic-1"))
	req.Len(manager.LookupAll("topic-2"), 1)
}
