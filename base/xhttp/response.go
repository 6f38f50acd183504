package xhttp

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/philipjonsen/cryptopunks/base/errcode"
)

// Response is the uniform API envelope.
type Response struct {
	Code uint32      `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data,omitempty"`
}

func OkJson(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: errcode.CodeOK,
		Msg:  "success",
		Data: data,
	})
}

// Error renders err as a business error. Non-*errcode.Err errors are
// reported as unexpected server errors.
func Error(c *gin.Context, err error) {
	var e *errcode.Err
	if !errors.As(err, &e) {
		e = errcode.ErrUnexpected
	}
	c.JSON(e.HTTPStatus(), Response{
		Code: e.Code(),
		Msg:  e.Msg(),
	})
}
