package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/gastro-os/middlewares"
	"github.com/yeremiapane/gastro-os/realtime"
	"github.com/yeremiapane/gastro-os/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are filtered by the CORS middleware
	},
}

// SalonSocketHandler upgrades to a websocket that receives salon_update and
// table_status messages for the caller's restaurant.
func SalonSocketHandler(hub *realtime.Hub) gin.HandlerFunc {
	if hub == nil {
		hub = realtime.Default()
	}
	return func(c *gin.Context) {
		scope := middlewares.Scope(c)
		if scope.Validate() != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.ErrorLogger.WithError(err).Error("websocket upgrade failed")
			return
		}

		hub.Register(ws, middlewares.CurrentRole(c), scope.TenantID)

		// Clients only listen; reading detects the disconnect.
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(ws)
	}
}
