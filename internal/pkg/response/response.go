package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire contract is small: reads resolve to {"data": ...}, mutations to
// {"success": true}, and failures to {"error": msg} plus the HTTP status.
// The client SDK relies on these three shapes.

// Data sends a 200 response with the payload wrapped in a data envelope.
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// OK sends a bare 200 response.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Success sends the {"success": true} acknowledgement mutations return.
func Success(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not found"})
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
