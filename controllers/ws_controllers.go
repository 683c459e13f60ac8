package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/handsome-restaurant/restaurant-app/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSController struct {
	Hub *realtime.Hub
}

func NewWSController(hub *realtime.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Handle -> endpoint WebSocket untuk semua display client. Query param
// `room` (kitchen/waiter/customer) hanyalah pengelompokan logis, bukan
// otorisasi; setiap event tetap disiarkan ke semua client.
func (wc *WSController) Handle(c *gin.Context) {
	room := c.Query("room")
	if room == "" {
		room = "default"
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	wc.Hub.Register(ws, room)

	// Baca pesan sampai client menutup koneksi
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	wc.Hub.Unregister(ws)
}
