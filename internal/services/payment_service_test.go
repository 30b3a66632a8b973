package services

import (
	"testing"
	"time"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type paymentFixture struct {
	service  *PaymentService
	landlord *models.User
	tenant   *models.User
	property *models.Property
	unit     *models.Unit
}

func setupPaymentFixture(t *testing.T) (*paymentFixture, *gorm.DB) {
	db := setupTestDB(t)

	landlord := createTestUser(t, db, "John Smith", "john@example.com", models.RoleLandlord)
	tenant := createTestUser(t, db, "Jane Doe", "jane@example.com", models.RoleTenant)
	property := createTestProperty(t, db, landlord.ID, "Sunset Apartments")
	unit := createTestUnit(t, db, property.ID, "101", &tenant.ID)

	service := NewPaymentService(db, NewNotificationService(db, nil))

	return &paymentFixture{
		service:  service,
		landlord: landlord,
		tenant:   tenant,
		property: property,
		unit:     unit,
	}, db
}

func TestPaymentServiceCreate(t *testing.T) {
	f, db := setupPaymentFixture(t)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	payment, err := f.service.Create(f.landlord.ID, f.unit.ID, 150000, due)
	require.NoError(t, err)

	assert.Equal(t, f.tenant.ID, payment.TenantID)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)
	assert.Equal(t, int64(150000), payment.AmountCents)

	var count int64
	db.Model(&models.RentPayment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestPaymentServiceCreateForeignUnit(t *testing.T) {
	f, db := setupPaymentFixture(t)

	other := createTestUser(t, db, "Robert Johnson", "robert@example.com", models.RoleLandlord)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.service.Create(other.ID, f.unit.ID, 150000, due)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPaymentServiceCreateVacantUnit(t *testing.T) {
	f, db := setupPaymentFixture(t)

	vacant := createTestUnit(t, db, f.property.ID, "102", nil)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	_, err := f.service.Create(f.landlord.ID, vacant.ID, 150000, due)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestPaymentServicePay(t *testing.T) {
	f, db := setupPaymentFixture(t)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	created := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, due, models.PaymentStatusPending)

	paid, err := f.service.Pay(created.ID, f.tenant.ID, "Credit Card")
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidDate)
	require.NotNil(t, paid.PaymentMethod)
	assert.Equal(t, "Credit Card", *paid.PaymentMethod)
	require.NotNil(t, paid.Reference)
	assert.NotEmpty(t, *paid.Reference)

	// 支付成功给双方发站内通知
	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	assert.Len(t, notifications, 2)

	messages := map[uint]string{}
	for _, n := range notifications {
		messages[n.UserID] = n.Message
	}
	assert.Equal(t, "Your rent payment was received", messages[f.tenant.ID])
	assert.Contains(t, messages[f.landlord.ID], "1500.00")
	assert.Contains(t, messages[f.landlord.ID], "Sunset Apartments")
}

func TestPaymentServicePayTwice(t *testing.T) {
	f, db := setupPaymentFixture(t)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	created := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, due, models.PaymentStatusPending)

	_, err := f.service.Pay(created.ID, f.tenant.ID, "Credit Card")
	require.NoError(t, err)

	_, err = f.service.Pay(created.ID, f.tenant.ID, "Credit Card")
	assert.ErrorIs(t, err, apperrors.ErrAlreadyExists)
}

func TestPaymentServicePayForeignPayment(t *testing.T) {
	f, db := setupPaymentFixture(t)

	other := createTestUser(t, db, "Emily Wilson", "emily@example.com", models.RoleTenant)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	created := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, due, models.PaymentStatusPending)

	// 他人账单表现为不存在
	_, err := f.service.Pay(created.ID, other.ID, "Credit Card")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPaymentServicePayOverdue(t *testing.T) {
	f, db := setupPaymentFixture(t)

	due := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	created := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 160000, due, models.PaymentStatusOverdue)

	paid, err := f.service.Pay(created.ID, f.tenant.ID, "Bank Transfer")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
}

func TestPaymentServiceNextForTenant(t *testing.T) {
	f, db := setupPaymentFixture(t)

	next, err := f.service.NextForTenant(f.tenant.ID)
	require.NoError(t, err)
	assert.Nil(t, next)

	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, may, models.PaymentStatusPending)
	earliest := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, april, models.PaymentStatusPending)

	next, err = f.service.NextForTenant(f.tenant.ID)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, earliest.ID, next.ID)
}

func TestPaymentServiceSummarizeForLandlord(t *testing.T) {
	f, db := setupPaymentFixture(t)

	emily := createTestUser(t, db, "Emily Wilson", "emily@example.com", models.RoleTenant)
	unit2 := createTestUnit(t, db, f.property.ID, "102", &emily.ID)

	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	may := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, april, models.PaymentStatusPaid)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, april, models.PaymentStatusPending)
	createTestPayment(t, db, unit2.ID, emily.ID, 160000, april, models.PaymentStatusOverdue)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, may, models.PaymentStatusPending)

	views, summary, err := f.service.SummarizeForLandlord(f.landlord.ID, 2025, 4, 0)
	require.NoError(t, err)

	assert.Equal(t, int64(150000), summary.PaidAmountCents)
	assert.Equal(t, int64(150000), summary.PendingAmountCents)
	assert.Equal(t, int64(160000), summary.OverdueAmountCents)
	assert.Equal(t, int64(460000), summary.TotalAmountCents)
	assert.Len(t, views, 3)

	for _, v := range views {
		assert.Equal(t, "Sunset Apartments", v.PropertyName)
		assert.NotEmpty(t, v.DueInText)
	}
}

func TestPaymentServiceSummarizeInvalidMonth(t *testing.T) {
	f, _ := setupPaymentFixture(t)

	_, _, err := f.service.SummarizeForLandlord(f.landlord.ID, 2025, 13, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	_, _, err = f.service.SummarizeForTenant(f.tenant.ID, 2025, 0)
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
}

func TestPaymentServiceSummarizePropertyFilter(t *testing.T) {
	f, db := setupPaymentFixture(t)

	other := createTestProperty(t, db, f.landlord.ID, "Ocean View Condos")
	otherUnit := createTestUnit(t, db, other.ID, "201", &f.tenant.ID)

	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, april, models.PaymentStatusPaid)
	createTestPayment(t, db, otherUnit.ID, f.tenant.ID, 220000, april, models.PaymentStatusPaid)

	_, summary, err := f.service.SummarizeForLandlord(f.landlord.ID, 2025, 4, other.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(220000), summary.TotalAmountCents)
	assert.Equal(t, 1, summary.TotalCount)
}

func TestPaymentServicePromotePastDue(t *testing.T) {
	f, db := setupPaymentFixture(t)

	now := time.Date(2025, time.April, 10, 12, 0, 0, 0, time.UTC)
	old := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	recent := time.Date(2025, time.April, 9, 0, 0, 0, 0, time.UTC)
	future := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	stale := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, old, models.PaymentStatusPending)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, recent, models.PaymentStatusPending)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, future, models.PaymentStatusPending)

	promoted, err := f.service.PromotePastDue(now, 3)
	require.NoError(t, err)
	require.Len(t, promoted, 1)
	assert.Equal(t, stale.ID, promoted[0].ID)
	assert.Equal(t, models.PaymentStatusOverdue, promoted[0].Status)

	var reloaded models.RentPayment
	require.NoError(t, db.First(&reloaded, stale.ID).Error)
	assert.Equal(t, models.PaymentStatusOverdue, reloaded.Status)

	// 再跑一轮不会重复提升
	promoted, err = f.service.PromotePastDue(now, 3)
	require.NoError(t, err)
	assert.Empty(t, promoted)
}

func TestPaymentServicePendingDueWithin(t *testing.T) {
	f, db := setupPaymentFixture(t)

	now := time.Date(2025, time.April, 26, 8, 0, 0, 0, time.UTC)
	soon := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	far := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	upcoming := createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, soon, models.PaymentStatusPending)
	createTestPayment(t, db, f.unit.ID, f.tenant.ID, 150000, far, models.PaymentStatusPending)

	payments, err := f.service.PendingDueWithin(now, 5)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, upcoming.ID, payments[0].ID)
}
