package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	config "github.com/manelteacher/spanish_classes/configs"
	"github.com/manelteacher/spanish_classes/database"
	"github.com/manelteacher/spanish_classes/models"
	"github.com/manelteacher/spanish_classes/realtime"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMyChats lists the caller's rooms with counterpart info, the latest
// message and the unread count.
func GetMyChats(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	var rooms []models.ChatRoom
	if err := database.DB.Preload("Student").Preload("Teacher").
		Where("student_id = ? OR teacher_id = ?", userID, userID).
		Order("updated_at desc").Find(&rooms).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve chats"})
	}

	out := make([]fiber.Map, 0, len(rooms))
	for i := range rooms {
		room := &rooms[i]

		counterpart := room.Teacher
		if room.TeacherID == userID {
			counterpart = room.Student
		}

		var lastMessage models.Message
		hasLast := database.DB.Where("room_id = ?", room.ID).Order("created_at desc").First(&lastMessage).Error == nil

		var unread int64
		database.DB.Model(&models.Message{}).
			Where("room_id = ? AND sender_id <> ? AND is_read = ?", room.ID, userID, false).
			Count(&unread)

		entry := fiber.Map{
			"id":     room.ID,
			"unread": unread,
			"counterpart": fiber.Map{
				"id":       counterpart.ID,
				"username": counterpart.Username,
				"role":     counterpart.Role,
			},
		}
		if hasLast {
			entry["last_message"] = lastMessage
		}
		out = append(out, entry)
	}

	return c.JSON(out)
}

type StartChatRequest struct {
	TeacherID string `json:"teacher_id" validate:"required,uuid4"`
}

// StartChat opens (or returns) the room between the calling student and a
// teacher. One room exists per pair.
func StartChat(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	studentID, _ := uuid.Parse(claims["user_id"].(string))

	var req StartChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	teacherID, _ := uuid.Parse(req.TeacherID)

	var teacher models.User
	if err := database.DB.First(&teacher, "id = ? AND role = ?", teacherID, models.RoleTeacher).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Teacher not found"})
	}

	var room models.ChatRoom
	err := database.DB.Where("student_id = ? AND teacher_id = ?", studentID, teacherID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		room = models.ChatRoom{StudentID: studentID, TeacherID: teacherID}
		if err := database.DB.Create(&room).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				database.DB.Where("student_id = ? AND teacher_id = ?", studentID, teacherID).First(&room)
			} else {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start chat"})
			}
		}
	} else if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to start chat"})
	}

	database.DB.Preload("Student").Preload("Teacher").First(&room, "id = ?", room.ID)
	return c.Status(fiber.StatusCreated).JSON(room)
}

// GetRoomMessages pages through a room's history, newest first. Only
// participants may read.
func GetRoomMessages(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	var room models.ChatRoom
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat room not found"})
	}
	if !room.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a participant of this chat"})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	var messages []models.Message
	if err := database.DB.Preload("Sender").Where("room_id = ?", roomID).
		Order("created_at desc").Limit(limit).Offset(offset).
		Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve messages"})
	}

	return c.JSON(messages)
}

type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// SendMessage persists a message and fans it out. Persistence is the source of
// truth; the Pusher channel and the websocket hub are both fire-and-forget.
func SendMessage(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var room models.ChatRoom
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat room not found"})
	}
	if !room.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a participant of this chat"})
	}

	message := models.Message{RoomID: roomID, SenderID: userID, Content: req.Content}
	if err := database.DB.Create(&message).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to send message"})
	}
	database.DB.Model(&room).Update("updated_at", message.CreatedAt)
	database.DB.Preload("Sender").First(&message, "id = ?", message.ID)

	go func(msg models.Message, counterpart uuid.UUID) {
		realtime.Publish(fmt.Sprintf("chat-room-%s", msg.RoomID), "new-message", msg)
		realtime.Notify("new-message", msg, counterpart)
	}(message, room.CounterpartOf(userID))

	return c.Status(fiber.StatusCreated).JSON(message)
}

// MarkMessagesRead marks every message the counterpart sent in a room as read.
func MarkMessagesRead(c *fiber.Ctx) error {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))

	roomID, err := uuid.Parse(c.Params("roomId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid room id"})
	}

	var room models.ChatRoom
	if err := database.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Chat room not found"})
	}
	if !room.HasParticipant(userID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "You are not a participant of this chat"})
	}

	result := database.DB.Model(&models.Message{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Update("is_read", true)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update messages"})
	}

	return c.JSON(fiber.Map{"marked_read": result.RowsAffected})
}

type wsAuthMessage struct {
	Token string `json:"token"`
}

// parseWsToken validates the JWT sent as the first websocket frame and
// returns the authenticated user id.
func parseWsToken(raw string) (uuid.UUID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(config.Config("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}
	rawID, _ := claims["user_id"].(string)
	return uuid.Parse(rawID)
}

// ServeWs upgrades a connection and keeps it registered with the hub. The
// first frame must carry a JSON auth message with a valid token; after that
// the connection only receives, all sending goes through the HTTP API.
func ServeWs(conn *websocket.Conn) {
	var auth wsAuthMessage
	if err := conn.ReadJSON(&auth); err != nil {
		conn.WriteJSON(fiber.Map{"error": "Expected auth message"})
		conn.Close()
		return
	}
	userID, err := parseWsToken(auth.Token)
	if err != nil {
		conn.WriteJSON(fiber.Map{"error": "Invalid token"})
		conn.Close()
		return
	}

	client := &realtime.Client{UserID: userID, Conn: conn}
	realtime.Register <- client
	defer func() {
		realtime.Unregister <- client
		conn.Close()
	}()

	// The hub owns the connection from registration on; even the greeting
	// goes through it so no two goroutines write the same conn.
	realtime.Notify("connected", fiber.Map{"user_id": userID}, userID)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			log.Printf("Websocket read ended for %s: %v", userID, err)
			break
		}
	}
}
