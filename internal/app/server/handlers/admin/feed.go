package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"kcstudio/storefront/internal/app/pkg/ginx"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPingPeriod = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 来源由 CORS 配置和令牌共同约束
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Feed 实时订单事件推送
// GET /api/admin/feed?token=
// 浏览器 WebSocket 无法携带 Authorization 头，令牌通过 query 传递
func (h *AdminHandler) Feed(c *gin.Context) {
	claims, err := h.adminService.Authenticate(c.Query("token"))
	if err != nil {
		ginx.Unauthorized(c, "invalid or expired token")
		return
	}

	sub, err := h.adminService.SubscribeFeed(c.Request.Context())
	if err != nil {
		ginx.Fail(c, err)
		return
	}
	defer sub.Close()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.WarnContext(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	h.logger.InfoContext(c.Request.Context(), "admin feed connected", "admin_id", claims.AdminID)

	// 读循环只用于感知断开
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			h.logger.InfoContext(c.Request.Context(), "admin feed disconnected", "admin_id", claims.AdminID)
			return
		case msg, ok := <-sub.Messages():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
