package services

import (
	"rentoasis/internal/models"
	"rentoasis/internal/rent"

	"gorm.io/gorm"
)

type DashboardService struct {
	db       *gorm.DB
	payments *PaymentService
}

func NewDashboardService(db *gorm.DB, payments *PaymentService) *DashboardService {
	return &DashboardService{db: db, payments: payments}
}

// LandlordStats 房东仪表盘汇总
type LandlordStats struct {
	Properties         int     `json:"properties"`
	Units              int     `json:"units"`
	OccupiedUnits      int     `json:"occupied_units"`
	OccupancyRate      float64 `json:"occupancy_rate"`
	CollectedCents     int64   `json:"collected_cents"`
	PendingCents       int64   `json:"pending_cents"`
	OverdueCents       int64   `json:"overdue_cents"`
	CollectionRate     float64 `json:"collection_rate"`
}

// TenantStats 租客仪表盘汇总
type TenantStats struct {
	Units         []models.Unit        `json:"units"`
	NextPayment   *PaymentView         `json:"next_payment,omitempty"`
	RecentHistory []PaymentView        `json:"recent_history"`
	Notifications []models.Notification `json:"notifications"`
}

// LandlordOverview 房东视角：物业/单元规模、入住率和三桶租金汇总
func (s *DashboardService) LandlordOverview(landlordID uint) (*LandlordStats, error) {
	var propertyCount int64
	if err := s.db.Model(&models.Property{}).
		Where("landlord_id = ?", landlordID).
		Count(&propertyCount).Error; err != nil {
		return nil, err
	}

	var units []models.Unit
	err := s.db.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.landlord_id = ?", landlordID).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	occupied := 0
	for _, unit := range units {
		if unit.IsOccupied {
			occupied++
		}
	}

	payments, err := s.payments.GetByLandlord(landlordID)
	if err != nil {
		return nil, err
	}

	stats := &LandlordStats{
		Properties:    int(propertyCount),
		Units:         len(units),
		OccupiedUnits: occupied,
		OccupancyRate: rent.OccupancyRate(occupied, len(units)),
	}

	for _, p := range payments {
		switch p.Status {
		case models.PaymentStatusPaid:
			stats.CollectedCents += p.AmountCents
		case models.PaymentStatusPending:
			stats.PendingCents += p.AmountCents
		case models.PaymentStatusOverdue:
			stats.OverdueCents += p.AmountCents
		}
	}

	total := stats.CollectedCents + stats.PendingCents + stats.OverdueCents
	stats.CollectionRate = rent.CollectionRate(stats.CollectedCents, total)

	return stats, nil
}

// TenantOverview 租客视角：入住单元、下一期账单、近期账单和通知
func (s *DashboardService) TenantOverview(tenantID uint) (*TenantStats, error) {
	var units []models.Unit
	if err := s.db.Where("tenant_id = ?", tenantID).Find(&units).Error; err != nil {
		return nil, err
	}

	next, err := s.payments.NextForTenant(tenantID)
	if err != nil {
		return nil, err
	}

	history, err := s.payments.GetByTenant(tenantID)
	if err != nil {
		return nil, err
	}
	if len(history) > 4 {
		history = history[:4]
	}
	historyViews, err := s.payments.BuildViews(history)
	if err != nil {
		return nil, err
	}

	var notifications []models.Notification
	err = s.db.Where("user_id = ?", tenantID).
		Order("created_at DESC").
		Limit(3).
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}

	stats := &TenantStats{
		Units:         units,
		RecentHistory: historyViews,
		Notifications: notifications,
	}

	if next != nil {
		nextViews, err := s.payments.BuildViews([]models.RentPayment{*next})
		if err != nil {
			return nil, err
		}
		if len(nextViews) > 0 {
			stats.NextPayment = &nextViews[0]
		}
	}

	return stats, nil
}
