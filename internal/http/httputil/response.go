package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/fairsplit/internal/common"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, code, err string) {
	c.JSON(status, Response{
		Success: false,
		Error:   err,
		Code:    code,
	})
}

// Fail writes err with the status and code it carries.
func Fail(c *gin.Context, err *common.HttpError) {
	Error(c, err.StatusCode, err.Code, err.Message)
}

// FailFromSplit writes a split engine error with its mapped status.
func FailFromSplit(c *gin.Context, err error) {
	Fail(c, common.HTTPErrorFromSplit(err))
}

func BadRequest(c *gin.Context, err string) {
	Fail(c, common.HTTPErrorBadRequest(err))
}

func NotFound(c *gin.Context, err string) {
	Fail(c, common.HTTPErrorNotFound(err))
}

func InternalError(c *gin.Context, err string) {
	Fail(c, common.HTTPErrorInternalError(err))
}
