package services

import (
	"errors"
	"fmt"
	"time"

	"rentoasis/internal/models"
	"rentoasis/internal/rent"
	apperrors "rentoasis/pkg/errors"
	"rentoasis/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentService struct {
	db            *gorm.DB
	notifications *NotificationService
}

func NewPaymentService(db *gorm.DB, notifications *NotificationService) *PaymentService {
	return &PaymentService{db: db, notifications: notifications}
}

// PaymentView 账单的列表展示结构，带派生字段
type PaymentView struct {
	models.RentPayment
	PropertyName string `json:"property_name"`
	UnitNumber   string `json:"unit_number"`
	DaysOverdue  int    `json:"days_overdue"`
	DueInText    string `json:"due_in_text"`
}

// ========== 账单CRUD ==========

// Create 房东给已入住单元的租客开一期应收账单
func (s *PaymentService) Create(landlordID, unitID uint, amountCents int64, dueDate time.Time) (*models.RentPayment, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidArgument)
	}

	var unit models.Unit
	err := s.db.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("units.id = ? AND properties.landlord_id = ?", unitID, landlordID).
		First(&unit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if !unit.IsOccupied || unit.TenantID == nil {
		return nil, fmt.Errorf("%w: unit %s has no tenant", apperrors.ErrInvalidArgument, unit.UnitNumber)
	}

	payment := &models.RentPayment{
		UnitID:      unitID,
		TenantID:    *unit.TenantID,
		AmountCents: amountCents,
		DueDate:     dueDate,
		Status:      models.PaymentStatusPending,
	}

	err = s.db.Create(payment).Error
	return payment, err
}

// GetByID 根据ID获取账单
func (s *PaymentService) GetByID(id uint) (*models.RentPayment, error) {
	var payment models.RentPayment
	err := s.db.First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByTenant 某租客的全部账单（按到期日倒序）
func (s *PaymentService) GetByTenant(tenantID uint) ([]models.RentPayment, error) {
	var payments []models.RentPayment
	err := s.db.Where("tenant_id = ?", tenantID).Order("due_date DESC").Find(&payments).Error
	return payments, err
}

// GetByLandlord 某房东全部物业单元的账单
func (s *PaymentService) GetByLandlord(landlordID uint) ([]models.RentPayment, error) {
	var payments []models.RentPayment
	err := s.db.
		Joins("JOIN units ON units.id = rent_payments.unit_id").
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.landlord_id = ?", landlordID).
		Find(&payments).Error
	return payments, err
}

// NextForTenant 租客最近一期待付账单（按到期日最早的pending）
//
// 没有待付账单时返回nil而非错误，仪表盘按"No Payments Due"渲染。
func (s *PaymentService) NextForTenant(tenantID uint) (*models.RentPayment, error) {
	var payment models.RentPayment
	err := s.db.
		Where("tenant_id = ? AND status = ?", tenantID, models.PaymentStatusPending).
		Order("due_date ASC").
		First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ========== 支付 ==========

// Pay 租客支付自己的一期账单
//
// 只接受pending或overdue状态；成功后生成凭证号并给双方发通知。
func (s *PaymentService) Pay(paymentID, tenantID uint, method string) (*models.RentPayment, error) {
	payment, err := s.GetByID(paymentID)
	if err != nil {
		return nil, err
	}
	if payment.TenantID != tenantID {
		return nil, apperrors.ErrNotFound
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, fmt.Errorf("%w: payment already settled", apperrors.ErrAlreadyExists)
	}
	if method == "" {
		return nil, fmt.Errorf("%w: payment method is required", apperrors.ErrInvalidArgument)
	}

	now := time.Now()
	reference := uuid.NewString()

	payment.Status = models.PaymentStatusPaid
	payment.PaidDate = &now
	payment.PaymentMethod = &method
	payment.Reference = &reference

	if err := s.db.Save(payment).Error; err != nil {
		return nil, err
	}

	s.notifyPaymentReceived(payment)
	return payment, nil
}

// notifyPaymentReceived 支付成功后的双向通知；失败只影响推送，不影响账单状态
func (s *PaymentService) notifyPaymentReceived(payment *models.RentPayment) {
	if s.notifications == nil {
		return
	}

	metadata := map[string]interface{}{
		"payment_id":   payment.ID,
		"amount_cents": payment.AmountCents,
		"reference":    payment.Reference,
	}

	if _, err := s.notifications.Notify(payment.TenantID,
		"Your rent payment was received", models.NotificationTypeSuccess, metadata); err != nil {
		logger.GetLogger().Warnf("Failed to notify tenant %d: %v", payment.TenantID, err)
	}

	// 找到单元所属物业的房东
	var unit models.Unit
	if err := s.db.First(&unit, payment.UnitID).Error; err != nil {
		return
	}
	var property models.Property
	if err := s.db.First(&property, unit.PropertyID).Error; err != nil {
		return
	}

	message := fmt.Sprintf("Rent payment of $%s received for %s unit %s",
		rent.FormatCents(payment.AmountCents), property.Name, unit.UnitNumber)
	if _, err := s.notifications.Notify(property.LandlordID,
		message, models.NotificationTypeInfo, metadata); err != nil {
		logger.GetLogger().Warnf("Failed to notify landlord %d: %v", property.LandlordID, err)
	}
}

// ========== 汇总与派生视图 ==========

// SummarizeForLandlord 房东视角的账期汇总：按年月过滤，可选物业过滤
func (s *PaymentService) SummarizeForLandlord(landlordID uint, year, month int, propertyID uint) ([]PaymentView, *rent.Summary, error) {
	payments, err := s.GetByLandlord(landlordID)
	if err != nil {
		return nil, nil, err
	}

	index, err := s.buildUnitPropertyIndex(landlordID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := rent.Summarize(payments, year, month, propertyID, index)
	if err != nil {
		return nil, nil, err
	}
	s.warnUnrecognized(summary)

	views, err := s.buildViews(s.filterWindow(payments, year, month, propertyID, index))
	if err != nil {
		return nil, nil, err
	}
	return views, summary, nil
}

// SummarizeForTenant 租客视角的账期汇总
func (s *PaymentService) SummarizeForTenant(tenantID uint, year, month int) ([]PaymentView, *rent.Summary, error) {
	payments, err := s.GetByTenant(tenantID)
	if err != nil {
		return nil, nil, err
	}

	summary, err := rent.Summarize(payments, year, month, 0, nil)
	if err != nil {
		return nil, nil, err
	}
	s.warnUnrecognized(summary)

	views, err := s.buildViews(s.filterWindow(payments, year, month, 0, nil))
	if err != nil {
		return nil, nil, err
	}
	return views, summary, nil
}

// BuildViews 给账单列表补齐物业/单元信息和到期派生字段
func (s *PaymentService) BuildViews(payments []models.RentPayment) ([]PaymentView, error) {
	return s.buildViews(payments)
}

// filterWindow 和汇总保持同一套过滤语义
func (s *PaymentService) filterWindow(payments []models.RentPayment, year, month int, propertyID uint, index map[uint]uint) []models.RentPayment {
	filtered := make([]models.RentPayment, 0, len(payments))
	for _, p := range payments {
		if p.DueDate.Year() != year || int(p.DueDate.Month()) != month {
			continue
		}
		if propertyID != 0 {
			owner, ok := index[p.UnitID]
			if !ok || owner != propertyID {
				continue
			}
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func (s *PaymentService) buildViews(payments []models.RentPayment) ([]PaymentView, error) {
	now := time.Now()
	views := make([]PaymentView, 0, len(payments))

	for _, p := range payments {
		view := PaymentView{
			RentPayment:  p,
			PropertyName: "Unknown",
			UnitNumber:   "Unknown",
			DueInText:    rent.DueInText(p.DueDate, now),
		}
		if p.Status == models.PaymentStatusOverdue {
			view.DaysOverdue = rent.DaysOverdue(p.DueDate, now)
		}

		var unit models.Unit
		if err := s.db.First(&unit, p.UnitID).Error; err == nil {
			view.UnitNumber = unit.UnitNumber
			var property models.Property
			if err := s.db.First(&property, unit.PropertyID).Error; err == nil {
				view.PropertyName = property.Name
			}
		}

		views = append(views, view)
	}
	return views, nil
}

func (s *PaymentService) buildUnitPropertyIndex(landlordID uint) (map[uint]uint, error) {
	var units []models.Unit
	err := s.db.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.landlord_id = ?", landlordID).
		Find(&units).Error
	if err != nil {
		return nil, err
	}

	index := make(map[uint]uint, len(units))
	for _, unit := range units {
		index[unit.ID] = unit.PropertyID
	}
	return index, nil
}

// warnUnrecognized 状态不在三桶内的账单是上游数据完整性问题，要让运维看见
func (s *PaymentService) warnUnrecognized(summary *rent.Summary) {
	if len(summary.UnrecognizedIDs) == 0 {
		return
	}
	logger.GetLogger().Warnf("Data integrity warning: %d payment(s) with unrecognized status excluded from summary: %v",
		len(summary.UnrecognizedIDs), summary.UnrecognizedIDs)
}

// ========== 策略任务支撑 ==========

// PromotePastDue 把超过宽限期仍未支付的pending账单提升为overdue
//
// 返回被提升的账单列表，调度器据此发送逾期通知。
func (s *PaymentService) PromotePastDue(now time.Time, graceDays int) ([]models.RentPayment, error) {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -graceDays)

	var due []models.RentPayment
	err := s.db.
		Where("status = ? AND due_date < ?", models.PaymentStatusPending, cutoff).
		Find(&due).Error
	if err != nil {
		return nil, err
	}
	if len(due) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(due))
	for i := range due {
		ids = append(ids, due[i].ID)
		due[i].Status = models.PaymentStatusOverdue
	}

	err = s.db.Model(&models.RentPayment{}).
		Where("id IN ?", ids).
		Update("status", models.PaymentStatusOverdue).Error
	if err != nil {
		return nil, err
	}
	return due, nil
}

// PendingDueWithin 未来leadDays天内到期的pending账单，给催缴提醒用
func (s *PaymentService) PendingDueWithin(now time.Time, leadDays int) ([]models.RentPayment, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, leadDays+1)

	var payments []models.RentPayment
	err := s.db.
		Where("status = ? AND due_date >= ? AND due_date < ?", models.PaymentStatusPending, start, end).
		Order("due_date ASC").
		Find(&payments).Error
	return payments, err
}
