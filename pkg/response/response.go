package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/davideme94/sad-proyecto/pkg/errors"
)

// The browser client consumes the flat legacy contract: successful calls get
// the payload as-is, failures get {"error": "<message>"} with the status code.

// JSON sends a success payload.
func JSON(c *gin.Context, status int, data interface{}) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, data)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error sends the error message under the legacy "error" key. Internal details
// stay server-side; only the human-readable message crosses the boundary.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, gin.H{"error": appErr.Message})
}
