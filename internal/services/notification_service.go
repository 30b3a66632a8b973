package services

import (
	"encoding/json"
	"errors"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/logger"
	"rentoasis/pkg/queue"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type NotificationService struct {
	db    *gorm.DB
	queue *queue.RedisQueue // 可为nil，此时只落库不做实时推送
}

func NewNotificationService(db *gorm.DB, q *queue.RedisQueue) *NotificationService {
	return &NotificationService{db: db, queue: q}
}

// Notify 写入一条通知并广播到实时推送频道
//
// 推送失败只记日志，不影响通知落库。
func (s *NotificationService) Notify(userID uint, message, ntype string, metadata map[string]interface{}) (*models.Notification, error) {
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
		Type:    ntype,
	}

	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			return nil, err
		}
		notification.Metadata = datatypes.JSON(raw)
	}

	if err := s.db.Create(notification).Error; err != nil {
		return nil, err
	}

	if s.queue != nil {
		event := &queue.NotificationEvent{
			UserID:   userID,
			Message:  message,
			Type:     ntype,
			Metadata: metadata,
		}
		if err := s.queue.PublishNotification(event); err != nil {
			logger.GetLogger().Warnf("Failed to publish notification event for user %d: %v", userID, err)
		}
	}

	return notification, nil
}

// GetByUserWithPage 某用户的通知列表（最新在前，分页）
func (s *NotificationService) GetByUserWithPage(userID uint, unreadOnly bool, page, pageSize int) ([]*models.Notification, int64, error) {
	var notifications []*models.Notification
	var total int64

	query := s.db.Model(&models.Notification{}).Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

// UnreadCount 未读数量
func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkRead 标记单条已读，只能操作自己的通知
func (s *NotificationService) MarkRead(id, userID uint) error {
	var notification models.Notification
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return err
	}

	return s.db.Model(&notification).Update("is_read", true).Error
}

// MarkAllRead 全部标记已读
func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
