package services

import (
	"testing"
	"time"

	"rentoasis/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardLandlordOverview(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, nil)
	service := NewDashboardService(db, payments)

	landlord := createTestUser(t, db, "John Smith", "john@example.com", models.RoleLandlord)
	tenant := createTestUser(t, db, "Jane Doe", "jane@example.com", models.RoleTenant)
	p1 := createTestProperty(t, db, landlord.ID, "Sunset Apartments")
	p2 := createTestProperty(t, db, landlord.ID, "Ocean View Condos")

	occupied := createTestUnit(t, db, p1.ID, "101", &tenant.ID)
	createTestUnit(t, db, p1.ID, "102", nil)
	createTestUnit(t, db, p2.ID, "201", nil)
	createTestUnit(t, db, p2.ID, "202", nil)

	april := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	createTestPayment(t, db, occupied.ID, tenant.ID, 150000, april, models.PaymentStatusPaid)
	createTestPayment(t, db, occupied.ID, tenant.ID, 150000, april.AddDate(0, 1, 0), models.PaymentStatusPending)
	createTestPayment(t, db, occupied.ID, tenant.ID, 160000, april, models.PaymentStatusOverdue)

	stats, err := service.LandlordOverview(landlord.ID)
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Properties)
	assert.Equal(t, 4, stats.Units)
	assert.Equal(t, 1, stats.OccupiedUnits)
	assert.Equal(t, float64(25), stats.OccupancyRate)
	assert.Equal(t, int64(150000), stats.CollectedCents)
	assert.Equal(t, int64(150000), stats.PendingCents)
	assert.Equal(t, int64(160000), stats.OverdueCents)
	assert.InDelta(t, 32.6, stats.CollectionRate, 0.1)
}

func TestDashboardLandlordOverviewEmpty(t *testing.T) {
	db := setupTestDB(t)
	service := NewDashboardService(db, NewPaymentService(db, nil))

	landlord := createTestUser(t, db, "John Smith", "john@example.com", models.RoleLandlord)

	stats, err := service.LandlordOverview(landlord.ID)
	require.NoError(t, err)

	// 没有单元和账单时各比率必须是0而不是NaN
	assert.Zero(t, stats.Units)
	assert.Equal(t, float64(0), stats.OccupancyRate)
	assert.Equal(t, float64(0), stats.CollectionRate)
}

func TestDashboardTenantOverview(t *testing.T) {
	db := setupTestDB(t)
	payments := NewPaymentService(db, nil)
	service := NewDashboardService(db, payments)

	landlord := createTestUser(t, db, "John Smith", "john@example.com", models.RoleLandlord)
	tenant := createTestUser(t, db, "Jane Doe", "jane@example.com", models.RoleTenant)
	property := createTestProperty(t, db, landlord.ID, "Sunset Apartments")
	unit := createTestUnit(t, db, property.ID, "101", &tenant.ID)

	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		createTestPayment(t, db, unit.ID, tenant.ID, 150000, base.AddDate(0, i, 0), models.PaymentStatusPaid)
	}
	next := createTestPayment(t, db, unit.ID, tenant.ID, 150000, base.AddDate(0, 5, 0), models.PaymentStatusPending)

	notifications := NewNotificationService(db, nil)
	for _, msg := range []string{"one", "two", "three", "four"} {
		_, err := notifications.Notify(tenant.ID, msg, models.NotificationTypeInfo, nil)
		require.NoError(t, err)
	}

	stats, err := service.TenantOverview(tenant.ID)
	require.NoError(t, err)

	require.Len(t, stats.Units, 1)
	assert.Equal(t, "101", stats.Units[0].UnitNumber)

	require.NotNil(t, stats.NextPayment)
	assert.Equal(t, next.ID, stats.NextPayment.ID)
	assert.Equal(t, "Sunset Apartments", stats.NextPayment.PropertyName)
	assert.NotEmpty(t, stats.NextPayment.DueInText)

	// 近期账单最多4条，通知最多3条
	assert.Len(t, stats.RecentHistory, 4)
	assert.Len(t, stats.Notifications, 3)
}

func TestDashboardTenantOverviewNoPayments(t *testing.T) {
	db := setupTestDB(t)
	service := NewDashboardService(db, NewPaymentService(db, nil))

	tenant := createTestUser(t, db, "Jane Doe", "jane@example.com", models.RoleTenant)

	stats, err := service.TenantOverview(tenant.ID)
	require.NoError(t, err)

	assert.Nil(t, stats.NextPayment)
	assert.Empty(t, stats.RecentHistory)
}
