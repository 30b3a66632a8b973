package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// NotificationEvent 队列中的通知事件
type NotificationEvent struct {
	UserID   uint                   `json:"user_id"`
	Message  string                 `json:"message"`
	Type     string                 `json:"type"` // info/warning/success/error
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Created  int64                  `json:"created"`
}

// Config Redis配置
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Prefix   string
}

// RedisQueue 通知事件队列：LPUSH留存事件流，PUBLISH做实时推送
type RedisQueue struct {
	client *redis.Client
	prefix string
}

// NewRedisQueue 创建Redis队列实例
func NewRedisQueue(config *Config) *RedisQueue {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Host, config.Port),
		Password: config.Password,
		DB:       config.DB,
	})

	prefix := config.Prefix
	if prefix == "" {
		prefix = "rentoasis"
	}

	return &RedisQueue{
		client: client,
		prefix: prefix,
	}
}

// Close 关闭Redis连接
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

// Ping 测试Redis连接
func (q *RedisQueue) Ping() error {
	ctx := context.Background()
	return q.client.Ping(ctx).Err()
}

// streamKey 事件留存列表的键
func (q *RedisQueue) streamKey() string {
	return fmt.Sprintf("%s:notifications", q.prefix)
}

// channelKey 按用户划分的实时推送频道
func (q *RedisQueue) channelKey(userID uint) string {
	return fmt.Sprintf("%s:notify:%d", q.prefix, userID)
}

// PublishNotification 入队并广播一条通知事件
func (q *RedisQueue) PublishNotification(event *NotificationEvent) error {
	ctx := context.Background()

	if event.Created == 0 {
		event.Created = time.Now().Unix()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal notification event: %v", err)
	}

	// 留存到事件列表（最多保留最近10000条）
	pipe := q.client.Pipeline()
	pipe.LPush(ctx, q.streamKey(), data)
	pipe.LTrim(ctx, q.streamKey(), 0, 9999)
	pipe.Publish(ctx, q.channelKey(event.UserID), data)
	_, err = pipe.Exec(ctx)
	return err
}

// Subscribe 订阅某个用户的实时通知频道，调用方负责Close
func (q *RedisQueue) Subscribe(ctx context.Context, userID uint) *redis.PubSub {
	return q.client.Subscribe(ctx, q.channelKey(userID))
}
