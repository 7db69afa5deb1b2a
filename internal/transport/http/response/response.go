package response

import "github.com/gin-gonic/gin"

type MsgResponse struct {
	Msg string `json:"msg"`
}

type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

type ErrorsResponse struct {
	Errors []FieldError `json:"errors"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, data)
}

func Msg(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, MsgResponse{Msg: msg})
}

func Errors(c *gin.Context, httpStatus int, errs ...FieldError) {
	c.JSON(httpStatus, ErrorsResponse{Errors: errs})
}
