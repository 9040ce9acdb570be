package chat

import (
	"strconv"

	mid "github.com/BlackYHawk/react-food-AI-sub000/middleware"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/registry"
	"github.com/BlackYHawk/react-food-AI-sub000/module/chat/store"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/resp"
	"github.com/gin-gonic/gin"
)

// Handler covers the REST side of chat: room management and history. Live
// delivery is module/chat/ws.
type Handler struct {
	store *store.Store
	reg   *registry.Registry
}

func NewHandler(st *store.Store, reg *registry.Registry) *Handler {
	return &Handler{store: st, reg: reg}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	auth := mid.RouteOpt{IsAuth: true}
	mid.POST(r, "/api/chat/rooms", h.HandleCreateRoom, auth)
	mid.GET(r, "/api/chat/rooms", h.HandleListRooms, auth)
	mid.POST(r, "/api/chat/rooms/:roomId/join", h.HandleJoinRoom, auth)
	mid.POST(r, "/api/chat/rooms/:roomId/leave", h.HandleLeaveRoom, auth)
	mid.GET(r, "/api/chat/rooms/:roomId/messages", h.HandleHistory, auth)
}

type createRoomReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	CoverURL    string `json:"coverUrl"`
}

func (h *Handler) HandleCreateRoom(c *gin.Context) {
	var req createRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	room, err := h.store.CreateRoom(c.Request.Context(),
		req.Name, req.Description, req.CoverURL, midsec.UserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, room)
}

func (h *Handler) HandleListRooms(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	rooms, err := h.store.ListRooms(c.Request.Context(), limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}

	type roomWithOnline struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		CoverURL    string `json:"coverUrl"`
		OwnerID     string `json:"ownerId"`
		MemberCount int    `json:"memberCount"`
		OnlineCount int    `json:"onlineCount"`
	}
	out := make([]roomWithOnline, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, roomWithOnline{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			CoverURL:    r.CoverURL,
			OwnerID:     r.OwnerID,
			MemberCount: len(r.Members),
			OnlineCount: h.reg.RoomUserCount(r.ID),
		})
	}
	resp.OK(c, out)
}

func (h *Handler) HandleJoinRoom(c *gin.Context) {
	if err := h.store.JoinRoom(c.Request.Context(), c.Param("roomId"), midsec.UserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *Handler) HandleLeaveRoom(c *gin.Context) {
	if err := h.store.LeaveRoom(c.Request.Context(), c.Param("roomId"), midsec.UserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *Handler) HandleHistory(c *gin.Context) {
	roomID := c.Param("roomId")
	userID := midsec.UserID(c)

	member, err := h.store.IsMember(c.Request.Context(), roomID, userID)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	if !member {
		resp.Fail(c, errs.ErrNotRoomMember.WrapMsg("", "roomId", roomID))
		return
	}

	before, _ := strconv.ParseInt(c.DefaultQuery("before", "0"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	msgs, err := h.store.ListMessages(c.Request.Context(), roomID, before, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, msgs)
}
