package ws

import "github.com/BlackYHawk/react-food-AI-sub000/module/chat/model"

// Outbound event types; every payload carries a "type" discriminator so the
// client can switch on it.
const (
	EventSystem     = "system"
	EventUserJoined = "user_joined"
	EventUserLeft   = "user_left"
	EventNewMessage = "new_message"
	EventTyping     = "typing"
	EventError      = "error"
)

type UserRef struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

// SystemNotice confirms the connection to the user who just joined.
type SystemNotice struct {
	Type        string `json:"type"`
	Message     string `json:"message"`
	RoomID      string `json:"roomId"`
	OnlineCount int    `json:"onlineCount"`
}

func NewSystemNotice(message, roomID string, online int) SystemNotice {
	return SystemNotice{Type: EventSystem, Message: message, RoomID: roomID, OnlineCount: online}
}

type UserJoined struct {
	Type        string  `json:"type"`
	User        UserRef `json:"user"`
	OnlineCount int     `json:"onlineCount"`
}

func NewUserJoined(user UserRef, online int) UserJoined {
	return UserJoined{Type: EventUserJoined, User: user, OnlineCount: online}
}

type UserLeft struct {
	Type        string `json:"type"`
	UserID      string `json:"userId"`
	OnlineCount int    `json:"onlineCount"`
}

func NewUserLeft(userID string, online int) UserLeft {
	return UserLeft{Type: EventUserLeft, UserID: userID, OnlineCount: online}
}

// NewMessage carries the persisted record so the sender's client can replace
// its optimistic local echo with the server copy.
type NewMessage struct {
	Type    string             `json:"type"`
	Message *model.ChatMessage `json:"message"`
}

func NewMessageEvent(msg *model.ChatMessage) NewMessage {
	return NewMessage{Type: EventNewMessage, Message: msg}
}

type Typing struct {
	Type     string `json:"type"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

func NewTyping(userID, username string) Typing {
	return Typing{Type: EventTyping, UserID: userID, Username: username}
}

type ErrorNotice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewErrorNotice(message string) ErrorNotice {
	return ErrorNotice{Type: EventError, Message: message}
}
