package models

import (
	"time"
)

// RentPayment 租金账单：一个单元一个账期的应收/实收记录
type RentPayment struct {
	BaseModel
	UnitID        uint       `json:"unit_id" gorm:"not null;index"`
	TenantID      uint       `json:"tenant_id" gorm:"not null;index"`
	AmountCents   int64      `json:"amount_cents" gorm:"not null"` // 金额按分存储，避免浮点累计误差
	DueDate       time.Time  `json:"due_date" gorm:"not null;index"`
	PaidDate      *time.Time `json:"paid_date"`
	Status        string     `json:"status" gorm:"not null;size:20;index"`
	PaymentMethod *string    `json:"payment_method" gorm:"size:50"`
	Reference     *string    `json:"reference" gorm:"size:64"` // 支付成功后生成的凭证号
}

// TableName 表名
func (p *RentPayment) TableName() string {
	return "rent_payments"
}

// 账单状态常量
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

// ValidPaymentStatus 校验账单状态取值
func ValidPaymentStatus(status string) bool {
	switch status {
	case PaymentStatusPaid, PaymentStatusPending, PaymentStatusOverdue:
		return true
	}
	return false
}
