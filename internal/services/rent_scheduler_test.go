package services

import (
	"testing"
	"time"

	"rentoasis/internal/models"
	"rentoasis/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScheduler(t *testing.T) (*RentScheduler, *PaymentService, *models.User, *models.Unit) {
	db := setupTestDB(t)

	landlord := createTestUser(t, db, "John Smith", "john@example.com", models.RoleLandlord)
	tenant := createTestUser(t, db, "Jane Doe", "jane@example.com", models.RoleTenant)
	property := createTestProperty(t, db, landlord.ID, "Sunset Apartments")
	unit := createTestUnit(t, db, property.ID, "101", &tenant.ID)

	notifications := NewNotificationService(db, nil)
	payments := NewPaymentService(db, notifications)
	scheduler := NewRentScheduler(db, payments, notifications, config.RentConfig{
		PromoteOverdue:   true,
		OverdueGraceDays: 3,
		ReminderLeadDays: 5,
		ScheduleSpec:     "0 2 * * *",
	})

	return scheduler, payments, tenant, unit
}

func TestSchedulerPromoteOverdue(t *testing.T) {
	scheduler, _, tenant, unit := setupScheduler(t)
	db := scheduler.db

	now := time.Date(2025, time.April, 10, 2, 0, 0, 0, time.UTC)
	stale := createTestPayment(t, db, unit.ID, tenant.ID, 160000,
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), models.PaymentStatusPending)

	scheduler.promoteOverdue(now)

	var reloaded models.RentPayment
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.PaymentStatusOverdue, reloaded.Status)

	// 逾期通知发给租客
	var notification models.Notification
	require.NoError(t, db.Where("user_id = ?", tenant.ID).First(&notification).Error)
	assert.Equal(t, "Your rent payment of $1600.00 is overdue", notification.Message)
	assert.Equal(t, models.NotificationTypeError, notification.Type)
}

func TestSchedulerPromoteDisabled(t *testing.T) {
	scheduler, _, tenant, unit := setupScheduler(t)
	scheduler.cfg.PromoteOverdue = false
	db := scheduler.db

	stale := createTestPayment(t, db, unit.ID, tenant.ID, 160000,
		time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), models.PaymentStatusPending)

	scheduler.runOnce()

	var reloaded models.RentPayment
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, reloaded.Status)
}

func TestSchedulerDueReminders(t *testing.T) {
	scheduler, _, tenant, unit := setupScheduler(t)
	db := scheduler.db

	now := time.Date(2025, time.April, 26, 2, 0, 0, 0, time.UTC)
	createTestPayment(t, db, unit.ID, tenant.ID, 150000,
		time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC), models.PaymentStatusPending)

	scheduler.sendDueReminders(now)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", tenant.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "Rent due in 5 days", notifications[0].Message)
	assert.Equal(t, models.NotificationTypeWarning, notifications[0].Type)

	// 同一天重复执行不重发
	scheduler.sendDueReminders(now)
	require.NoError(t, db.Where("user_id = ?", tenant.ID).Find(&notifications).Error)
	assert.Len(t, notifications, 1)
}
