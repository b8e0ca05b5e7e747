package utils

import (
	"github.com/gin-gonic/gin"
)

// JSONResponse is the envelope every endpoint returns. Failures always
// carry success=false and a message; no error crosses the HTTP boundary raw.
type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, JSONResponse{
		Success: false,
		Message: message,
	})
}
