package database

import (
	"sync"

	"pmp/pkg/config"
	"pmp/pkg/queue"
)

var (
	notifierInstance *queue.RedisNotifier
	notifierOnce     sync.Once
)

// GetNotifier 获取Redis通知分发的单例实例
func GetNotifier() *queue.RedisNotifier {
	notifierOnce.Do(func() {
		cfg := config.GetConfig()
		notifierInstance = queue.NewRedisNotifier(&queue.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	})
	return notifierInstance
}

// CloseNotifier 关闭Redis连接
func CloseNotifier() error {
	if notifierInstance != nil {
		return notifierInstance.Close()
	}
	return nil
}
