package model

const MessageTableName = "chat_messages"

// Message content types, mirroring what the mobile client sends.
const (
	MsgTypeText  = "text"
	MsgTypeImage = "image"
	MsgTypeVideo = "video"
)

// ChatMessage is the persisted message record. Sender name and avatar are
// snapshots taken at send time so history renders without a user lookup.
type ChatMessage struct {
	ID           string   `bson:"_id" json:"id"`
	RoomID       string   `bson:"room_id" json:"roomId"`
	SenderID     string   `bson:"sender_id" json:"senderId"`
	SenderName   string   `bson:"sender_name" json:"senderName"`
	SenderAvatar string   `bson:"sender_avatar" json:"senderAvatar"`
	Content      string   `bson:"content" json:"content"`
	MessageType  string   `bson:"message_type" json:"messageType"`
	Attachments  []string `bson:"attachments,omitempty" json:"attachments,omitempty"`
	ReplyTo      string   `bson:"reply_to,omitempty" json:"replyTo,omitempty"`
	CreateTimeMS int64    `bson:"create_time" json:"createTime"`
}

func (*ChatMessage) TableName() string { return MessageTableName }
