package models

import (
	"gorm.io/datatypes"
)

// Notification 通知模型
type Notification struct {
	BaseModel
	UserID   uint           `json:"user_id" gorm:"not null;index"`
	Message  string         `json:"message" gorm:"not null;size:500"`
	Type     string         `json:"type" gorm:"not null;size:20"`
	IsRead   bool           `json:"is_read" gorm:"default:false;index"`
	Metadata datatypes.JSON `json:"metadata,omitempty"` // 事件上下文，如账单ID、金额
}

// TableName 表名
func (n *Notification) TableName() string {
	return "notifications"
}

// 通知级别常量
const (
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeSuccess = "success"
	NotificationTypeError   = "error"
)
