package ws

import (
	"encoding/json"
	"testing"

	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventWireShapes(t *testing.T) {
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{
			name:    "system notice",
			payload: NewSystemNotice("connected", "room1", 3),
			want:    `{"type":"system","message":"connected","roomId":"room1","onlineCount":3}`,
		},
		{
			name:    "user joined",
			payload: NewUserJoined(UserRef{ID: "u1", Username: "alice", Avatar: "a.png"}, 2),
			want:    `{"type":"user_joined","user":{"id":"u1","username":"alice","avatar":"a.png"},"onlineCount":2}`,
		},
		{
			name:    "user left",
			payload: NewUserLeft("u1", 1),
			want:    `{"type":"user_left","userId":"u1","onlineCount":1}`,
		},
		{
			name:    "error notice",
			payload: NewErrorNotice("boom"),
			want:    `{"type":"error","message":"boom"}`,
		},
		{
			name:    "typing",
			payload: NewTyping("u1", "alice"),
			want:    `{"type":"typing","userId":"u1","username":"alice"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.payload)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestNewMessageEventCarriesRecord(t *testing.T) {
	msg := &model.ChatMessage{
		ID:          "m1",
		RoomID:      "room1",
		SenderID:    "u1",
		Content:     "hi",
		MessageType: model.MsgTypeText,
	}
	got, err := json.Marshal(NewMessageEvent(msg))
	require.NoError(t, err)

	var decoded struct {
		Type    string             `json:"type"`
		Message *model.ChatMessage `json:"message"`
	}
	require.NoError(t, json.Unmarshal(got, &decoded))
	assert.Equal(t, EventNewMessage, decoded.Type)
	require.NotNil(t, decoded.Message)
	assert.Equal(t, "m1", decoded.Message.ID)
	assert.Equal(t, "hi", decoded.Message.Content)
}

func TestParseFrame(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
		want    *InboundFrame
	}{
		{
			name: "chat message",
			data: `{"type":"chat_message","content":"hello","messageType":"text"}`,
			want: &InboundFrame{Type: "chat_message", Content: "hello", MessageType: "text"},
		},
		{
			name: "with reply and attachments",
			data: `{"type":"chat_message","content":"look","attachments":["x.png"],"replyTo":"m9"}`,
			want: &InboundFrame{Type: "chat_message", Content: "look", Attachments: []string{"x.png"}, ReplyTo: "m9"},
		},
		{
			name: "typing",
			data: `{"type":"typing"}`,
			want: &InboundFrame{Type: "typing"},
		},
		{
			name:    "missing type",
			data:    `{"content":"hello"}`,
			wantErr: true,
		},
		{
			name:    "not json",
			data:    `hello there`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrame([]byte(tt.data))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
