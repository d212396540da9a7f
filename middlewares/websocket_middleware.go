package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/order-dashboard/utils"
)

var errUpgradeRequired = errors.New("websocket upgrade required")

// WebSocketOnly rejects plain HTTP requests to streaming routes.
func WebSocketOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !websocket.IsWebSocketUpgrade(c.Request) {
			utils.RespondError(c, http.StatusUpgradeRequired, errUpgradeRequired)
			c.Abort()
			return
		}
		c.Next()
	}
}
