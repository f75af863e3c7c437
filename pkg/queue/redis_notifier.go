package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisNotifier 基于Redis发布订阅的通知分发
type RedisNotifier struct {
	client *redis.Client
	prefix string
}

// NotificationMessage 通知消息
type NotificationMessage struct {
	MessageID string `json:"message_id"`
	UserID    uint   `json:"user_id"`
	Type      string `json:"type"`  // 通知类型，如 contract_expiry / resident_request
	Title     string `json:"title"` // 通知标题
	Content   string `json:"content"`
	Created   int64  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// NewRedisNotifier 创建Redis通知分发实例
func NewRedisNotifier(config *Config) *RedisNotifier {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "pmp:notify"
	}

	return &RedisNotifier{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

// Ping 测试Redis连接
func (n *RedisNotifier) Ping() error {
	ctx := context.Background()
	return n.client.Ping(ctx).Err()
}

// GetClient 获取底层Redis客户端
func (n *RedisNotifier) GetClient() *redis.Client {
	return n.client
}

// channelKey 用户通知频道
func (n *RedisNotifier) channelKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", n.prefix, userID)
}

// Publish 向指定用户的频道发布通知
func (n *RedisNotifier) Publish(messageID string, userID uint, notifyType, title, content string) error {
	ctx := context.Background()

	message := NotificationMessage{
		MessageID: messageID,
		UserID:    userID,
		Type:      notifyType,
		Title:     title,
		Content:   content,
		Created:   time.Now().Unix(),
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("序列化通知消息失败: %v", err)
	}

	if err := n.client.Publish(ctx, n.channelKey(userID), data).Err(); err != nil {
		return fmt.Errorf("发布通知失败: %v", err)
	}

	return nil
}

// Subscribe 订阅指定用户的通知频道
// 调用方负责在结束时调用 PubSub.Close()
func (n *RedisNotifier) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return n.client.Subscribe(ctx, n.channelKey(userID))
}
