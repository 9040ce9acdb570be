package scan

import (
	"strconv"

	mid "github.com/BlackYHawk/react-food-AI-sub000/middleware"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/scan/model"
	"github.com/BlackYHawk/react-food-AI-sub000/module/scan/service"
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
	mid.POST(r, "/api/scans", h.HandleRecord, auth)
	mid.GET(r, "/api/scans", h.HandleHistory, auth)
	mid.DELETE(r, "/api/scans/:id", h.HandleDelete, auth)
}

type scanReq struct {
	ImageURL   string          `json:"imageUrl" binding:"required"`
	FoodName   string          `json:"foodName"`
	Confidence float64         `json:"confidence"`
	Nutrition  model.Nutrition `json:"nutrition"`
}

func (h *Handler) HandleRecord(c *gin.Context) {
	var req scanReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	rec, err := h.svc.Record(c.Request.Context(), &model.FoodScan{
		UserID:     midsec.UserID(c),
		ImageURL:   req.ImageURL,
		FoodName:   req.FoodName,
		Confidence: req.Confidence,
		Nutrition:  req.Nutrition,
	})
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, rec)
}

func (h *Handler) HandleHistory(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	out, err := h.svc.History(c.Request.Context(), midsec.UserID(c), page, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), midsec.UserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}
