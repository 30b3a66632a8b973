package services

import (
	"testing"
	"time"

	"rentoasis/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 内存数据库，每个测试独立一份
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.Unit{},
		&models.RentPayment{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Role: role}
	require.NoError(t, user.SetPassword("password123"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestProperty(t *testing.T, db *gorm.DB, landlordID uint, name string) *models.Property {
	t.Helper()

	property := &models.Property{
		LandlordID: landlordID,
		Name:       name,
		Address:    "123 Main St",
		City:       "Los Angeles",
		State:      "CA",
		Zip:        "90001",
		UnitCount:  12,
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func createTestUnit(t *testing.T, db *gorm.DB, propertyID uint, unitNumber string, tenantID *uint) *models.Unit {
	t.Helper()

	unit := &models.Unit{
		PropertyID:      propertyID,
		UnitNumber:      unitNumber,
		Bedrooms:        2,
		Bathrooms:       1,
		SquareFeet:      900,
		RentAmountCents: 150000,
	}
	if tenantID != nil {
		unit.IsOccupied = true
		unit.TenantID = tenantID
	}
	require.NoError(t, db.Create(unit).Error)
	return unit
}

func createTestPayment(t *testing.T, db *gorm.DB, unitID, tenantID uint, amountCents int64, due time.Time, status string) *models.RentPayment {
	t.Helper()

	payment := &models.RentPayment{
		UnitID:      unitID,
		TenantID:    tenantID,
		AmountCents: amountCents,
		DueDate:     due,
		Status:      status,
	}
	require.NoError(t, db.Create(payment).Error)
	return payment
}
