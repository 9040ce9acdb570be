package ws

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/BlackYHawk/react-food-AI-sub000/global"
	"github.com/BlackYHawk/react-food-AI-sub000/logger"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/model"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/registry"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/store"
	usermodel "github.com/BlackYHawk/react-food-AI-sub000/module/user/model"
	usersvc "github.com/BlackYHawk/react-food-AI-sub000/module/user/service"
	"github.com/BlackYHawk/react-food-AI-sub000/service/storage"
	toolsec "github.com/BlackYHawk/react-food-AI-sub000/tools/security"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const dbTimeout = 5 * time.Second

// Handler owns the websocket side of chat: it authenticates the upgrade,
// gates on room membership, then wires the connection into the registry.
// The registry never sees a connection that failed authorization.
type Handler struct {
	reg      *registry.Registry
	store    *store.Store
	users    *usersvc.Service
	presence *storage.Presence
}

func NewHandler(reg *registry.Registry, st *store.Store, users *usersvc.Service, presence *storage.Presence) *Handler {
	return &Handler{reg: reg, store: st, users: users, presence: presence}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	// no HTTP auth middleware here: failures must come back as websocket
	// close codes, not JSON bodies
	r.GET("/ws/chat/:roomId", h.HandleWS)
}

func (h *Handler) HandleWS(c *gin.Context) {
	roomID := c.Param("roomId")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Infof("[ws] upgrade failed room=%s err=%v", roomID, err)
		return
	}

	token := midsec.ExtractToken(c, &midsec.Options{
		HeaderToken:               "Authorization",
		EnableAuthorizationBearer: true,
		AllowQueryToken:           true,
	})
	claims, err := toolsec.Verify(
		toolsec.Options{Secret: global.JwtSecret(), TTL: global.Config.Jwt.TokenTTL.D()}, token)
	if err != nil {
		closeWith(conn, websocket.ClosePolicyViolation, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	member, err := h.store.IsMember(ctx, roomID, claims.UserID)
	if err == nil && member {
		// avatar snapshot for the join notice
		var u *usermodel.User
		u, err = h.users.GetByID(ctx, claims.UserID)
		cancel()
		if err != nil {
			closeWith(conn, websocket.CloseInternalServerErr, "internal error")
			return
		}
		h.serve(conn, roomID, u)
		return
	}
	cancel()
	if err != nil {
		logger.Errorf("[ws] membership check failed room=%s user=%s err=%v", roomID, claims.UserID, err)
		closeWith(conn, websocket.CloseInternalServerErr, "internal error")
		return
	}
	closeWith(conn, websocket.ClosePolicyViolation, "not a room member")
}

// serve registers the authorized connection and runs the read loop until the
// peer goes away.
func (h *Handler) serve(conn *websocket.Conn, roomID string, u *usermodel.User) {
	wc := newWSConn(conn, global.Config.Chat.WriteDeadline.D())

	// a reconnecting user replaces their previous registration
	h.reg.RemoveFromRoom(u.ID)
	h.reg.AddToRoom(roomID, u.ID, wc)

	online := h.reg.RoomUserCount(roomID)
	h.reg.SendToUser(u.ID, NewSystemNotice("connected", roomID, online))
	h.reg.BroadcastToRoom(roomID, NewUserJoined(UserRef{
		ID: u.ID, Username: u.Username, Avatar: u.Avatar,
	}, online), u.ID)

	logger.Infof("[ws] joined room=%s user=%s online=%d", roomID, u.ID, online)

	h.readLoop(conn, roomID, u)

	wc.markClosed()
	h.reg.RemoveFromRoom(u.ID)
	h.reg.BroadcastToRoom(roomID, NewUserLeft(u.ID, h.reg.RoomUserCount(roomID)), "")

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	if err := h.presence.TouchLastSeen(ctx, u.ID); err != nil {
		logger.Warnf("[ws] touch last-seen user=%s err=%v", u.ID, err)
	}
	cancel()

	_ = conn.Close()
	logger.Infof("[ws] left room=%s user=%s", roomID, u.ID)
}

func (h *Handler) readLoop(conn *websocket.Conn, roomID string, u *usermodel.User) {
	conn.SetReadLimit(global.Config.Chat.MaxMessageSize)

	for {
		mt, data, rerr := conn.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[ws] peer closed user=%s err=%v", u.ID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[ws] read timeout user=%s err=%v", u.ID, rerr)
			} else {
				logger.Infof("[ws] read err user=%s err=%v", u.ID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		frame, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Infof("[ws] bad frame user=%s err=%v sample=%q", u.ID, perr, sample)
			h.reg.SendToUser(u.ID, NewErrorNotice("malformed frame"))
			continue
		}

		switch frame.Type {
		case FrameChatMessage:
			h.handleChatMessage(roomID, u, frame)
		case FrameTyping:
			h.reg.BroadcastToRoom(roomID, NewTyping(u.ID, u.Username), u.ID)
		default:
			h.reg.SendToUser(u.ID, NewErrorNotice("unknown message type: "+frame.Type))
		}
	}
}

// handleChatMessage persists the record first, then broadcasts the server
// copy to the whole room, sender included.
func (h *Handler) handleChatMessage(roomID string, u *usermodel.User, frame *InboundFrame) {
	if frame.Content == "" && len(frame.Attachments) == 0 {
		h.reg.SendToUser(u.ID, NewErrorNotice("empty message"))
		return
	}
	msgType := frame.MessageType
	if msgType == "" {
		msgType = model.MsgTypeText
	}

	msg := &model.ChatMessage{
		RoomID:       roomID,
		SenderID:     u.ID,
		SenderName:   u.Username,
		SenderAvatar: u.Avatar,
		Content:      frame.Content,
		MessageType:  msgType,
		Attachments:  frame.Attachments,
		ReplyTo:      frame.ReplyTo,
	}

	ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
	err := h.store.SaveMessage(ctx, msg)
	cancel()
	if err != nil {
		logger.Errorf("[ws] save message room=%s user=%s err=%v", roomID, u.ID, err)
		h.reg.SendToUser(u.ID, NewErrorNotice("message could not be saved"))
		return
	}

	h.reg.BroadcastToRoom(roomID, NewMessageEvent(msg), "")
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.SetWriteDeadline(time.Now().Add(2 * time.Second))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason))
	_ = conn.Close()
}
