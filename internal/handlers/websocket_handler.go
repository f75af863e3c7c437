package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"pmp/internal/database"
	"pmp/pkg/config"
	"pmp/pkg/jwt"
	"pmp/pkg/logger"
	"pmp/pkg/queue"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// WebSocketHandler 通知实时推送
type WebSocketHandler struct {
	upgrader   websocket.Upgrader
	notifier   *queue.RedisNotifier
	log        *logrus.Logger
	jwtManager *jwt.JWTManager
}

func NewWebSocketHandler() *WebSocketHandler {
	cfg := config.GetConfig()
	allowedOrigins := cfg.CORS.AllowOrigins

	return &WebSocketHandler{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")

				// 同源请求Origin为空，直接放行
				if origin == "" {
					return true
				}

				for _, allowed := range allowedOrigins {
					if allowed == "*" || matchOrigin(origin, allowed) {
						return true
					}
				}

				logger.GetLogger().Warnf("WebSocket连接被拒绝，非法Origin: %s", origin)
				return false
			},
			ReadBufferSize:  1024 * 4,
			WriteBufferSize: 1024 * 4,
		},
		notifier:   database.GetNotifier(),
		log:        logger.GetLogger(),
		jwtManager: jwt.GetJWTManager(),
	}
}

// matchOrigin Origin匹配，支持 *.example.com 形式的通配
func matchOrigin(origin, allowed string) bool {
	if origin == allowed {
		return true
	}
	if strings.HasPrefix(allowed, "*.") {
		return strings.HasSuffix(origin, allowed[1:])
	}
	return false
}

// NotificationStream 通知推送的WebSocket连接
// WebSocket不支持自定义header，token从查询参数传入
func (h *WebSocketHandler) NotificationStream(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "缺少认证令牌"})
		return
	}

	claims, err := h.jwtManager.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的令牌"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Error("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.log.WithFields(logrus.Fields{
		"user_id":  claims.UserID,
		"username": claims.Username,
	}).Info("Notification stream established")

	h.streamNotifications(conn, claims.UserID)
}

// streamNotifications 订阅用户通知频道并转发到WebSocket
func (h *WebSocketHandler) streamNotifications(conn *websocket.Conn, userID uint) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubsub := h.notifier.Subscribe(ctx, userID)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		h.log.WithError(err).Error("Failed to subscribe to notification channel")
		return
	}

	// 读侧只处理客户端断开
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ch := pubsub.Channel()
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg.Payload)); err != nil {
				h.log.WithError(err).Warn("Failed to push notification")
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
