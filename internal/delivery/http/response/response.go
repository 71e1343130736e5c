package response

import (
	"github.com/gin-gonic/gin"
)

// Response standardizes the API JSON envelope. Failures carry Error and, for
// data store failures, the store's Code.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	Code      string      `json:"code,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success sends a success response
func Success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString("RequestID"),
	})
}

// Error sends a failure response; code may be empty.
func Error(c *gin.Context, status int, message string, code string) {
	c.JSON(status, Response{
		Success:   false,
		Error:     message,
		Code:      code,
		RequestID: c.GetString("RequestID"),
	})
}
