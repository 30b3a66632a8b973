package services

import (
	"fmt"
	"sync"
	"time"

	"rentoasis/internal/models"
	"rentoasis/internal/rent"
	"rentoasis/pkg/config"
	"rentoasis/pkg/logger"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// RentScheduler 租金策略调度器
//
// 按配置的cron表达式运行两件事：把超过宽限期的pending账单提升为
// overdue，以及给即将到期的账单发催缴提醒。存储的账单状态与到期日
// 的关系由这个任务收敛，读路径不做状态推断。
type RentScheduler struct {
	db            *gorm.DB
	payments      *PaymentService
	notifications *NotificationService
	cfg           config.RentConfig

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

func NewRentScheduler(db *gorm.DB, payments *PaymentService, notifications *NotificationService, cfg config.RentConfig) *RentScheduler {
	return &RentScheduler{
		db:            db,
		payments:      payments,
		notifications: notifications,
		cfg:           cfg,
		cron:          cron.New(),
	}
}

// Start 注册并启动定时任务
func (s *RentScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.ScheduleSpec, s.runOnce)
	if err != nil {
		return fmt.Errorf("register rent schedule %q: %v", s.cfg.ScheduleSpec, err)
	}

	s.cron.Start()
	s.running = true
	logger.GetLogger().Infof("Rent scheduler started with spec %q", s.cfg.ScheduleSpec)
	return nil
}

// Stop 停止调度器
func (s *RentScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	logger.GetLogger().Info("Rent scheduler stopped")
}

// RunNow 立即执行一轮策略（启动时和测试用）
func (s *RentScheduler) RunNow() {
	s.runOnce()
}

func (s *RentScheduler) runOnce() {
	now := time.Now()

	if s.cfg.PromoteOverdue {
		s.promoteOverdue(now)
	}
	s.sendDueReminders(now)
}

// promoteOverdue 提升逾期账单并通知租客
func (s *RentScheduler) promoteOverdue(now time.Time) {
	appLogger := logger.GetLogger()

	promoted, err := s.payments.PromotePastDue(now, s.cfg.OverdueGraceDays)
	if err != nil {
		appLogger.Errorf("Failed to promote past-due payments: %v", err)
		return
	}
	if len(promoted) == 0 {
		return
	}

	appLogger.Infof("Promoted %d payment(s) to overdue", len(promoted))

	for _, payment := range promoted {
		message := fmt.Sprintf("Your rent payment of $%s is overdue", rent.FormatCents(payment.AmountCents))
		metadata := map[string]interface{}{
			"payment_id":   payment.ID,
			"amount_cents": payment.AmountCents,
			"due_date":     payment.DueDate.Format("2006-01-02"),
		}
		if _, err := s.notifications.Notify(payment.TenantID, message, models.NotificationTypeError, metadata); err != nil {
			appLogger.Warnf("Failed to notify tenant %d about overdue payment %d: %v", payment.TenantID, payment.ID, err)
		}
	}
}

// sendDueReminders 给即将到期的账单发送催缴提醒，同一账单同一天只发一次
func (s *RentScheduler) sendDueReminders(now time.Time) {
	appLogger := logger.GetLogger()

	upcoming, err := s.payments.PendingDueWithin(now, s.cfg.ReminderLeadDays)
	if err != nil {
		appLogger.Errorf("Failed to load upcoming payments: %v", err)
		return
	}

	for _, payment := range upcoming {
		message := fmt.Sprintf("Rent %s", lowerFirst(rent.DueInText(payment.DueDate, now)))

		// 去重：今天已经发过同内容提醒就跳过
		var count int64
		s.db.Model(&models.Notification{}).
			Where("user_id = ? AND message = ? AND created_at >= ?",
				payment.TenantID, message, now.Truncate(24*time.Hour)).
			Count(&count)
		if count > 0 {
			continue
		}

		metadata := map[string]interface{}{
			"payment_id":   payment.ID,
			"amount_cents": payment.AmountCents,
			"due_date":     payment.DueDate.Format("2006-01-02"),
		}
		if _, err := s.notifications.Notify(payment.TenantID, message, models.NotificationTypeWarning, metadata); err != nil {
			appLogger.Warnf("Failed to send due reminder for payment %d: %v", payment.ID, err)
		}
	}
}

// lowerFirst "Due in 5 days" -> "due in 5 days"，拼进提醒句式
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]|0x20) + s[1:]
}
