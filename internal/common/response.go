package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope standard API response structure: code 0 means success,
// any other code mirrors the HTTP status. Data is null on failure.
type Envelope struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// Auth error codes (mini-program client matches on these)
const (
	CodeMissingOpenID = 40100
)

// OK returns a successful JSON response
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Code: 0,
		Msg:  "success",
		Data: data,
	})
}

// Fail returns an error JSON response whose envelope code equals the HTTP status
func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, Envelope{
		Code: status,
		Msg:  msg,
		Data: nil,
	})
}

// FailWithCode returns an error response with an explicit envelope code
// (used for auth errors where the client expects a dedicated code)
func FailWithCode(c *gin.Context, status, code int, msg string) {
	c.JSON(status, Envelope{
		Code: code,
		Msg:  msg,
		Data: nil,
	})
}
