package apierrors

import (
	"github.com/gin-gonic/gin"
)

// Error sends an error response using a registered error code.
// It looks up the code in the registry for HTTP status and wire message.
func Error(c *gin.Context, code string) {
	status := Registry.HTTPStatus(code)
	message := Registry.Message(code)
	c.JSON(status, gin.H{"error": message})
}

// ErrorWithMessage sends an error response with a custom message.
// Used when the message carries dynamic content (e.g., a backend fault).
func ErrorWithMessage(c *gin.Context, code, message string) {
	status := Registry.HTTPStatus(code)
	c.JSON(status, gin.H{"error": message})
}
