package handlers

import (
	"errors"
	"fmt"
	"log"

	websocketcontrib "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	configs "github.com/nyagah254/job_board/configs"
	"github.com/nyagah254/job_board/database"
	"github.com/nyagah254/job_board/models"
	"github.com/nyagah254/job_board/websocket"
)

// GetMessages returns the two-way message history with one peer in
// ascending creation order, and marks the peer's messages to the caller
// as read. Marking is idempotent; re-fetching changes nothing.
func GetMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	recipientID, err := uuid.Parse(c.Query("recipientId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing parameters"})
	}

	var messages []models.Message
	if err := database.DB.
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, recipientID, recipientID, userID).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
	}

	if err := database.DB.Model(&models.Message{}).
		Where("sender_id = ? AND recipient_id = ? AND is_read = ?", recipientID, userID, false).
		Update("is_read", true).Error; err != nil {
		log.Printf("Failed to mark messages read for %s: %v", userID, err)
	}

	return c.JSON(fiber.Map{"messages": messages})
}

func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		RecipientID string `json:"recipientId" validate:"required,uuid"`
		Content     string `json:"content" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	recipientID, _ := uuid.Parse(req.RecipientID)

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	message := models.Message{
		SenderID:    userID,
		RecipientID: recipientID,
		Content:     req.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	websocket.Push(&message)

	return c.JSON(fiber.Map{"success": true})
}

type ConversationView struct {
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	UnreadCount int       `json:"unreadCount"`
	LastMessage *string   `json:"lastMessage"`
}

func GetConversations(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var conversations []ConversationView
	err := database.DB.Raw(`
		SELECT
			u.id AS user_id,
			u.name,
			u.email,
			(SELECT COUNT(*) FROM messages
			 WHERE recipient_id = ? AND sender_id = u.id AND is_read = ?) AS unread_count,
			(SELECT content FROM messages
			 WHERE (sender_id = u.id AND recipient_id = ?)
			    OR (sender_id = ? AND recipient_id = u.id)
			 ORDER BY created_at DESC LIMIT 1) AS last_message
		FROM users u
		WHERE u.id IN (
			SELECT DISTINCT sender_id FROM messages WHERE recipient_id = ?
			UNION
			SELECT DISTINCT recipient_id FROM messages WHERE sender_id = ?
		) AND u.id != ?`,
		userID, false, userID, userID, userID, userID, userID).
		Scan(&conversations).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch conversations"})
	}

	return c.JSON(fiber.Map{"conversations": conversations})
}

// CreateConversation resolves a conversation descriptor for a peer.
// Conversations are derived from messages, so nothing is persisted
// until the first message is sent.
func CreateConversation(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	type Request struct {
		RecipientID string `json:"recipientId" validate:"required,uuid"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	recipientID, _ := uuid.Parse(req.RecipientID)

	var recipient models.User
	if err := database.DB.First(&recipient, "id = ?", recipientID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Recipient not found"})
	}

	var exchanged int64
	database.DB.Model(&models.Message{}).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID, recipientID, recipientID, userID).
		Count(&exchanged)

	status := fiber.StatusOK
	if exchanged == 0 {
		status = fiber.StatusCreated
	}

	return c.Status(status).JSON(fiber.Map{
		"conversation": ConversationView{
			UserID: recipient.ID,
			Name:   recipient.Name,
			Email:  recipient.Email,
		},
	})
}

// ServeWs upgrades the connection and streams new messages to the
// authenticated client. The first frame must be {type:"auth", token}.
func ServeWs(c *websocketcontrib.Conn) {
	type AuthMessage struct {
		Type  string `json:"type"`
		Token string `json:"token"`
	}
	var authMsg AuthMessage
	if err := c.ReadJSON(&authMsg); err != nil || authMsg.Type != "auth" {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid or missing auth message"})
		c.Close()
		return
	}

	claims, err := parseToken(authMsg.Token)
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid token"})
		c.Close()
		return
	}

	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		_ = c.WriteJSON(fiber.Map{"error": "Invalid user ID"})
		c.Close()
		return
	}

	client := &websocket.Client{UserID: userID, Conn: c}
	websocket.Register <- client
	defer func() {
		websocket.Unregister <- client
		c.Close()
	}()

	for {
		var payload websocket.MessagePayload
		if err := c.ReadJSON(&payload); err != nil {
			if !websocketcontrib.IsCloseError(err, websocketcontrib.CloseGoingAway, websocketcontrib.CloseAbnormalClosure) {
				log.Printf("WebSocket read error for client %s: %v", userID, err)
			}
			break
		}

		recipientID, err := uuid.Parse(payload.RecipientID)
		if err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Invalid recipient ID"})
			continue
		}

		message := models.Message{
			SenderID:    userID,
			RecipientID: recipientID,
			Content:     payload.Content,
		}
		if err := database.DB.Create(&message).Error; err != nil {
			_ = c.WriteJSON(fiber.Map{"error": "Failed to save message"})
			continue
		}
		websocket.Push(&message)
	}
}

func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(configs.Config("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
