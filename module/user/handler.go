package user

import (
	mid "github.com/BlackYHawk/react-food-AI-sub000/middleware"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/user/service"
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
	mid.POST(r, "/api/auth/register", h.HandleRegister, mid.RouteOpt{})
	mid.POST(r, "/api/auth/login", h.HandleLogin, mid.RouteOpt{})
	mid.GET(r, "/api/users/me", h.HandleProfile, mid.RouteOpt{IsAuth: true})
	mid.PUT(r, "/api/users/me", h.HandleUpdateProfile, mid.RouteOpt{IsAuth: true})
}

type credentialsReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) HandleRegister(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	u, err := h.svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *Handler) HandleLogin(c *gin.Context) {
	var req credentialsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	u, token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"token": token, "user": u})
}

func (h *Handler) HandleProfile(c *gin.Context) {
	u, err := h.svc.GetByID(c.Request.Context(), midsec.UserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}

type updateProfileReq struct {
	Avatar *string `json:"avatar"`
	Bio    *string `json:"bio"`
}

func (h *Handler) HandleUpdateProfile(c *gin.Context) {
	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	u, err := h.svc.UpdateProfile(c.Request.Context(), midsec.UserID(c), req.Avatar, req.Bio)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, u)
}
