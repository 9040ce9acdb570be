package stream

import (
	"strconv"

	mid "github.com/BlackYHawk/react-food-AI-sub000/middleware"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/stream/service"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/resp"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	auth := mid.RouteOpt{IsAuth: true}
	mid.POST(r, "/api/streams", h.HandleStart, auth)
	mid.GET(r, "/api/streams", h.HandleListLive, auth)
	mid.POST(r, "/api/streams/:id/end", h.HandleEnd, auth)
	mid.POST(r, "/api/streams/:id/viewers/join", h.HandleViewerJoin, auth)
	mid.POST(r, "/api/streams/:id/viewers/leave", h.HandleViewerLeave, auth)
	mid.GET(r, "/api/streams/:id/viewers", h.HandleViewerCount, auth)
}

type startStreamReq struct {
	Title       string `json:"title" binding:"required"`
	CoverURL    string `json:"coverUrl"`
	PlaybackURL string `json:"playbackUrl"`
}

func (h *Handler) HandleStart(c *gin.Context) {
	var req startStreamReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	st, err := h.svc.Start(c.Request.Context(),
		midsec.UserID(c), midsec.Username(c), req.Title, req.CoverURL, req.PlaybackURL)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, st)
}

func (h *Handler) HandleEnd(c *gin.Context) {
	if err := h.svc.End(c.Request.Context(), c.Param("id"), midsec.UserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *Handler) HandleListLive(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	out, err := h.svc.ListLive(c.Request.Context(), limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

func (h *Handler) HandleViewerJoin(c *gin.Context) {
	n, err := h.svc.ViewerJoin(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"viewers": n})
}

func (h *Handler) HandleViewerLeave(c *gin.Context) {
	n, err := h.svc.ViewerLeave(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"viewers": n})
}

func (h *Handler) HandleViewerCount(c *gin.Context) {
	n, err := h.svc.ViewerCount(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"viewers": n})
}
