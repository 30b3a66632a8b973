package main

import (
	"fmt"
	"time"

	"rentoasis/internal/database"
	"rentoasis/internal/models"
	"rentoasis/pkg/logger"

	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建演示用户
	if err := createDemoUsers(db); err != nil {
		return fmt.Errorf("创建演示用户失败: %v", err)
	}

	// 2. 创建演示房产与房源
	if err := createDemoProperties(db); err != nil {
		return fmt.Errorf("创建演示房产失败: %v", err)
	}

	// 3. 创建演示租金账单
	if err := createDemoPayments(db); err != nil {
		return fmt.Errorf("创建演示账单失败: %v", err)
	}

	// 4. 创建演示通知
	if err := createDemoNotifications(db); err != nil {
		return fmt.Errorf("创建演示通知失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDemoUsers 创建演示用户（房东和租客各两名）
func createDemoUsers(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("用户已存在，跳过种子数据创建")
		return nil
	}

	demoUsers := []struct {
		Name         string
		Email        string
		Role         string
		ProfileImage string
	}{
		{"John Smith", "john@example.com", models.RoleLandlord, "https://randomuser.me/api/portraits/men/1.jpg"},
		{"Jane Doe", "jane@example.com", models.RoleTenant, "https://randomuser.me/api/portraits/women/1.jpg"},
		{"Robert Johnson", "robert@example.com", models.RoleLandlord, "https://randomuser.me/api/portraits/men/2.jpg"},
		{"Emily Wilson", "emily@example.com", models.RoleTenant, "https://randomuser.me/api/portraits/women/2.jpg"},
	}

	for _, u := range demoUsers {
		image := u.ProfileImage
		user := &models.User{
			Name:         u.Name,
			Email:        u.Email,
			Role:         u.Role,
			ProfileImage: &image,
		}
		// 演示账号统一使用默认密码
		if err := user.SetPassword("password123"); err != nil {
			return err
		}
		if err := db.Create(user).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示用户创建成功")
	return nil
}

// createDemoProperties 创建演示房产及其房源
func createDemoProperties(db *gorm.DB) error {
	var count int64
	db.Model(&models.Property{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("房产已存在，跳过种子数据创建")
		return nil
	}

	john, jane, robert, emily, err := demoUsers(db)
	if err != nil {
		return err
	}

	properties := []*models.Property{
		{
			LandlordID: john.ID,
			Name:       "Sunset Apartments",
			Address:    "123 Main St",
			City:       "Los Angeles",
			State:      "CA",
			Zip:        "90001",
			UnitCount:  12,
			ImageURL:   "https://images.unsplash.com/photo-1460317442991-0ec209397118?auto=format&fit=crop&w=800&q=60",
		},
		{
			LandlordID: john.ID,
			Name:       "Ocean View Condos",
			Address:    "456 Beach Rd",
			City:       "San Diego",
			State:      "CA",
			Zip:        "92101",
			UnitCount:  8,
			ImageURL:   "https://images.unsplash.com/photo-1486406146926-c627a92ad1ab?auto=format&fit=crop&w=800&q=60",
		},
		{
			LandlordID: robert.ID,
			Name:       "Mountain Terrace",
			Address:    "789 Highland Dr",
			City:       "Denver",
			State:      "CO",
			Zip:        "80202",
			UnitCount:  6,
			ImageURL:   "https://images.unsplash.com/photo-1472224371017-08207f84aaae?auto=format&fit=crop&w=800&q=60",
		},
		{
			LandlordID: robert.ID,
			Name:       "Urban Lofts",
			Address:    "101 Downtown Ave",
			City:       "New York",
			State:      "NY",
			Zip:        "10001",
			UnitCount:  20,
			ImageURL:   "https://images.unsplash.com/photo-1483653364400-eedcfb9f1f88?auto=format&fit=crop&w=800&q=60",
		},
	}
	for _, p := range properties {
		if err := db.Create(p).Error; err != nil {
			return err
		}
	}

	janeID := jane.ID
	emilyID := emily.ID
	units := []*models.Unit{
		{PropertyID: properties[0].ID, UnitNumber: "101", Bedrooms: 2, Bathrooms: 1, SquareFeet: 900, RentAmountCents: 150000, IsOccupied: true, TenantID: &janeID},
		{PropertyID: properties[0].ID, UnitNumber: "102", Bedrooms: 2, Bathrooms: 2, SquareFeet: 950, RentAmountCents: 160000, IsOccupied: true, TenantID: &emilyID},
		{PropertyID: properties[1].ID, UnitNumber: "201", Bedrooms: 3, Bathrooms: 2, SquareFeet: 1200, RentAmountCents: 220000, IsOccupied: true, TenantID: &janeID},
		{PropertyID: properties[2].ID, UnitNumber: "301", Bedrooms: 1, Bathrooms: 1, SquareFeet: 700, RentAmountCents: 110000, IsOccupied: false},
	}
	for _, u := range units {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示房产创建成功")
	return nil
}

// createDemoPayments 创建演示租金账单
func createDemoPayments(db *gorm.DB) error {
	var count int64
	db.Model(&models.RentPayment{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("账单已存在，跳过种子数据创建")
		return nil
	}

	_, jane, _, emily, err := demoUsers(db)
	if err != nil {
		return err
	}

	var units []models.Unit
	if err := db.Order("id").Find(&units).Error; err != nil {
		return err
	}
	if len(units) < 3 {
		return fmt.Errorf("演示房源不完整")
	}

	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	paid1 := date(2025, time.March, 29)
	paid2 := date(2025, time.April, 1)
	card := "Credit Card"
	transfer := "Bank Transfer"

	payments := []*models.RentPayment{
		{UnitID: units[0].ID, TenantID: jane.ID, AmountCents: 150000, DueDate: date(2025, time.April, 1), PaidDate: &paid1, Status: models.PaymentStatusPaid, PaymentMethod: &card},
		{UnitID: units[0].ID, TenantID: jane.ID, AmountCents: 150000, DueDate: date(2025, time.May, 1), Status: models.PaymentStatusPending},
		{UnitID: units[1].ID, TenantID: emily.ID, AmountCents: 160000, DueDate: date(2025, time.April, 1), Status: models.PaymentStatusOverdue},
		{UnitID: units[2].ID, TenantID: jane.ID, AmountCents: 220000, DueDate: date(2025, time.April, 1), PaidDate: &paid2, Status: models.PaymentStatusPaid, PaymentMethod: &transfer},
	}
	for _, p := range payments {
		if err := db.Create(p).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示账单创建成功")
	return nil
}

// createDemoNotifications 创建演示通知
func createDemoNotifications(db *gorm.DB) error {
	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("通知已存在，跳过种子数据创建")
		return nil
	}

	john, jane, robert, _, err := demoUsers(db)
	if err != nil {
		return err
	}

	notifications := []*models.Notification{
		{UserID: john.ID, Message: "New tenant application for Sunset Apartments", Type: models.NotificationTypeInfo},
		{UserID: jane.ID, Message: "Your rent payment was received", Type: models.NotificationTypeSuccess, IsRead: true},
		{UserID: jane.ID, Message: "Rent due in 5 days", Type: models.NotificationTypeWarning},
		{UserID: robert.ID, Message: "Maintenance request submitted for unit 301", Type: models.NotificationTypeInfo},
	}
	for _, n := range notifications {
		if err := db.Create(n).Error; err != nil {
			return err
		}
	}

	logger.GetLogger().Info("演示通知创建成功")
	return nil
}

// demoUsers 按邮箱取回四个演示用户
func demoUsers(db *gorm.DB) (john, jane, robert, emily *models.User, err error) {
	load := func(email string) (*models.User, error) {
		var u models.User
		if err := db.Where("email = ?", email).First(&u).Error; err != nil {
			return nil, fmt.Errorf("演示用户 %s 不存在: %v", email, err)
		}
		return &u, nil
	}
	if john, err = load("john@example.com"); err != nil {
		return
	}
	if jane, err = load("jane@example.com"); err != nil {
		return
	}
	if robert, err = load("robert@example.com"); err != nil {
		return
	}
	emily, err = load("emily@example.com")
	return
}
