package recipe

import (
	"strconv"

	mid "github.com/BlackYHawk/react-food-AI-sub000/middleware"
	midsec "github.com/BlackYHawk/react-food-AI-sub000/middleware/security"
	"github.com/BlackYHawk/react-food-AI-sub000/module/recipe/model"
	"github.com/BlackYHawk/react-food-AI-sub000/module/recipe/service"
	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/BlackYHawk/react-food-AI-sub000/tools/resp"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

type Handler struct {
	svc *service.Service
}

func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	auth := mid.RouteOpt{IsAuth: true}
	mid.POST(r, "/api/recipes", h.HandleCreate, auth)
	mid.GET(r, "/api/recipes", h.HandleList, auth)
	mid.GET(r, "/api/recipes/:id", h.HandleGet, auth)
	mid.PUT(r, "/api/recipes/:id", h.HandleUpdate, auth)
	mid.DELETE(r, "/api/recipes/:id", h.HandleDelete, auth)
	mid.POST(r, "/api/recipes/:id/like", h.HandleLike, auth)
}

type recipeReq struct {
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description"`
	CoverURL    string             `json:"coverUrl"`
	Ingredients []model.Ingredient `json:"ingredients"`
	Steps       []string           `json:"steps"`
	CookTimeMin int                `json:"cookTimeMin"`
}

func (h *Handler) HandleCreate(c *gin.Context) {
	var req recipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	r, err := h.svc.Create(c.Request.Context(), &model.Recipe{
		AuthorID:    midsec.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		CoverURL:    req.CoverURL,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		CookTimeMin: req.CookTimeMin,
	})
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

func (h *Handler) HandleList(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	size, _ := strconv.ParseInt(c.DefaultQuery("size", "20"), 10, 64)
	out, err := h.svc.List(c.Request.Context(), c.Query("authorId"), page, size)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

func (h *Handler) HandleGet(c *gin.Context) {
	r, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

func (h *Handler) HandleUpdate(c *gin.Context) {
	var req recipeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, errs.ErrArgs.WrapMsg(err.Error()))
		return
	}
	set := bson.M{
		"title":         req.Title,
		"description":   req.Description,
		"cover_url":     req.CoverURL,
		"ingredients":   req.Ingredients,
		"steps":         req.Steps,
		"cook_time_min": req.CookTimeMin,
	}
	r, err := h.svc.Update(c.Request.Context(), c.Param("id"), midsec.UserID(c), set)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, r)
}

func (h *Handler) HandleDelete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), midsec.UserID(c)); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, nil)
}

func (h *Handler) HandleLike(c *gin.Context) {
	likes, err := h.svc.Like(c.Request.Context(), c.Param("id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"likes": likes})
}
