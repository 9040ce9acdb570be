package ws

import (
	"encoding/json"

	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
)

// Inbound frame types the client may send.
const (
	FrameChatMessage = "chat_message"
	FrameTyping      = "typing"
)

// InboundFrame is the client wire shape. Only Type is mandatory; the rest
// depends on the frame type.
type InboundFrame struct {
	Type        string   `json:"type"`
	Content     string   `json:"content,omitempty"`
	MessageType string   `json:"messageType,omitempty"`
	Attachments []string `json:"attachments,omitempty"`
	ReplyTo     string   `json:"replyTo,omitempty"`
}

func ParseFrame(data []byte) (*InboundFrame, error) {
	var f InboundFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, errs.WrapMsg(err, "parse frame")
	}
	if f.Type == "" {
		return nil, errs.New("frame missing type")
	}
	return &f, nil
}
