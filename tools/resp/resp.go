package resp

import (
	"net/http"

	errs "github.com/BlackYHawk/react-food-AI-sub000/tools/errs"
	"github.com/gin-gonic/gin"
)

type Body struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Code: 0, Msg: "ok", Data: data})
}

// Fail maps a CodeError to the response envelope; anything else becomes the
// generic internal error so raw details never leak to the client.
func Fail(c *gin.Context, err error) {
	if ce := errs.Unwrap(err); ce != nil {
		c.JSON(http.StatusOK, Body{Code: ce.Code, Msg: ce.Msg})
		return
	}
	c.JSON(http.StatusOK, Body{Code: errs.ErrInternalServer.Code, Msg: errs.ErrInternalServer.Msg})
}
