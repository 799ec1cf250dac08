package handlers_test

import (
	"net/http"
	"testing"

	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
)

func seedMessage(t *testing.T, sender, recipient models.User, content string, isRead bool) models.Message {
	t.Helper()
	message := models.Message{
		SenderID:    sender.ID,
		RecipientID: recipient.ID,
		Content:     content,
		IsRead:      isRead,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		t.Fatalf("failed to seed message: %v", err)
	}
	return message
}

func TestSendMessagePersists(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)
	bob := createUser(t, "Bob", "bob@test.test", models.RoleEmployer)

	payload := map[string]any{"recipientId": bob.ID.String(), "content": "Hello Bob"}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/chat", payload, authCookies(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp))
	}

	var message models.Message
	if err := database.DB.First(&message, "sender_id = ?", alice.ID).Error; err != nil {
		t.Fatalf("expected message row: %v", err)
	}
	if message.RecipientID != bob.ID || message.Content != "Hello Bob" {
		t.Errorf("unexpected message row: %+v", message)
	}
	if message.IsRead {
		t.Error("new messages must start unread")
	}
}

func TestSendMessageRejectsUnknownRecipient(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)

	payload := map[string]any{
		"recipientId": "00000000-0000-0000-0000-000000000000",
		"content":     "Hello",
	}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/chat", payload, authCookies(t, alice))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if n := countRows(t, &models.Message{}); n != 0 {
		t.Errorf("expected no message rows, got %d", n)
	}
}

func TestGetMessagesReturnsAscendingAndMarksRead(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)
	bob := createUser(t, "Bob", "bob@test.test", models.RoleEmployer)
	carol := createUser(t, "Carol", "carol@test.test", models.RoleJobSeeker)

	seedMessage(t, alice, bob, "first", false)
	seedMessage(t, bob, alice, "second", false)
	seedMessage(t, carol, alice, "unrelated", false)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/chat?recipientId="+bob.ID.String(), nil, authCookies(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	messages := body["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages in the thread, got %d", len(messages))
	}
	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	if first["content"] != "first" || second["content"] != "second" {
		t.Errorf("expected ascending order, got %v then %v", first["content"], second["content"])
	}

	// Bob's message to Alice is now read; Carol's untouched.
	var bobMessage models.Message
	database.DB.First(&bobMessage, "sender_id = ?", bob.ID)
	if !bobMessage.IsRead {
		t.Error("expected peer's message marked read after fetch")
	}
	var carolMessage models.Message
	database.DB.First(&carolMessage, "sender_id = ?", carol.ID)
	if carolMessage.IsRead {
		t.Error("unrelated thread must stay unread")
	}

	// Fetching again changes nothing.
	resp2 := doRequest(t, app, http.MethodGet, "/api/v1/chat?recipientId="+bob.ID.String(), nil, authCookies(t, alice))
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on refetch, got %d", resp2.StatusCode)
	}
	resp2.Body.Close()
	var unread int64
	database.DB.Model(&models.Message{}).
		Where("recipient_id = ? AND sender_id = ? AND is_read = ?", alice.ID, bob.ID, false).
		Count(&unread)
	if unread != 0 {
		t.Errorf("expected 0 unread after refetch, got %d", unread)
	}
}

func TestGetConversationsAggregatesPeers(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)
	bob := createUser(t, "Bob", "bob@test.test", models.RoleEmployer)
	carol := createUser(t, "Carol", "carol@test.test", models.RoleJobSeeker)
	createUser(t, "Dave", "dave@test.test", models.RoleJobSeeker)

	seedMessage(t, bob, alice, "hi alice", false)
	seedMessage(t, bob, alice, "are you there?", false)
	seedMessage(t, alice, carol, "hi carol", false)

	resp := doRequest(t, app, http.MethodGet, "/api/v1/chat/conversations", nil, authCookies(t, alice))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	conversations := body["conversations"].([]any)
	if len(conversations) != 2 {
		t.Fatalf("expected conversations with bob and carol, got %d", len(conversations))
	}

	byEmail := map[string]map[string]any{}
	for _, raw := range conversations {
		conversation := raw.(map[string]any)
		byEmail[conversation["email"].(string)] = conversation
	}
	bobConversation, ok := byEmail["bob@test.test"]
	if !ok {
		t.Fatalf("missing conversation with bob: %v", byEmail)
	}
	if bobConversation["unreadCount"].(float64) != 2 {
		t.Errorf("expected 2 unread from bob, got %v", bobConversation["unreadCount"])
	}
	if bobConversation["lastMessage"] != "are you there?" {
		t.Errorf("expected latest message preview, got %v", bobConversation["lastMessage"])
	}
	carolConversation, ok := byEmail["carol@test.test"]
	if !ok {
		t.Fatalf("missing conversation with carol: %v", byEmail)
	}
	if carolConversation["unreadCount"].(float64) != 0 {
		t.Errorf("expected 0 unread from carol, got %v", carolConversation["unreadCount"])
	}
}

func TestCreateConversationStatusReflectsHistory(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)
	bob := createUser(t, "Bob", "bob@test.test", models.RoleEmployer)

	payload := map[string]any{"recipientId": bob.ID.String()}

	resp := doRequest(t, app, http.MethodPost, "/api/v1/chat/conversations", payload, authCookies(t, alice))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 for a fresh conversation, got %d", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	conversation := body["conversation"].(map[string]any)
	if conversation["email"] != "bob@test.test" {
		t.Errorf("unexpected conversation peer: %v", conversation)
	}

	// Nothing is persisted until the first message.
	if n := countRows(t, &models.Message{}); n != 0 {
		t.Errorf("conversation creation must not persist messages, got %d", n)
	}

	seedMessage(t, alice, bob, "hello", false)
	resp2 := doRequest(t, app, http.MethodPost, "/api/v1/chat/conversations", payload, authCookies(t, alice))
	if resp2.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 once messages exist, got %d", resp2.StatusCode)
	}
	resp2.Body.Close()
}

func TestCreateConversationRejectsUnknownPeer(t *testing.T) {
	app := setupApp(t)
	alice := createUser(t, "Alice", "alice@test.test", models.RoleJobSeeker)

	payload := map[string]any{"recipientId": "00000000-0000-0000-0000-000000000000"}
	resp := doRequest(t, app, http.MethodPost, "/api/v1/chat/conversations", payload, authCookies(t, alice))
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
