package services

import (
	"errors"
	"fmt"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"

	"gorm.io/gorm"
)

type UnitService struct {
	db *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{db: db}
}

// ========== 基础CRUD方法 ==========

// Create 在某物业下创建单元，只有物业属主可以操作
func (s *UnitService) Create(propertyID, landlordID uint, unitNumber string, bedrooms, bathrooms, squareFeet int, rentAmountCents int64) (*models.Unit, error) {
	if err := s.checkOwnership(propertyID, landlordID); err != nil {
		return nil, err
	}
	if unitNumber == "" {
		return nil, fmt.Errorf("%w: unit number is required", apperrors.ErrInvalidArgument)
	}
	if rentAmountCents <= 0 {
		return nil, fmt.Errorf("%w: rent amount must be positive", apperrors.ErrInvalidArgument)
	}

	unit := &models.Unit{
		PropertyID:      propertyID,
		UnitNumber:      unitNumber,
		Bedrooms:        bedrooms,
		Bathrooms:       bathrooms,
		SquareFeet:      squareFeet,
		RentAmountCents: rentAmountCents,
	}

	err := s.db.Create(unit).Error
	return unit, err
}

// GetByID 根据ID获取单元
func (s *UnitService) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	err := s.db.First(&unit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

// GetByProperty 某物业下的全部单元
func (s *UnitService) GetByProperty(propertyID uint) ([]*models.Unit, error) {
	var units []*models.Unit
	err := s.db.Where("property_id = ?", propertyID).Order("unit_number").Find(&units).Error
	return units, err
}

// GetByTenant 某租客入住的全部单元
func (s *UnitService) GetByTenant(tenantID uint) ([]*models.Unit, error) {
	var units []*models.Unit
	err := s.db.Where("tenant_id = ?", tenantID).Find(&units).Error
	return units, err
}

// GetByLandlord 某房东全部物业下的单元
func (s *UnitService) GetByLandlord(landlordID uint) ([]*models.Unit, error) {
	var units []*models.Unit
	err := s.db.
		Joins("JOIN properties ON properties.id = units.property_id").
		Where("properties.landlord_id = ?", landlordID).
		Find(&units).Error
	return units, err
}

// ========== 入住管理 ==========

// AssignTenant 安排租客入住；占用标志与租客ID必须同时变更
func (s *UnitService) AssignTenant(unitID, landlordID, tenantID uint) (*models.Unit, error) {
	unit, err := s.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(unit.PropertyID, landlordID); err != nil {
		return nil, err
	}
	if unit.IsOccupied {
		return nil, fmt.Errorf("%w: unit %s is already occupied", apperrors.ErrAlreadyExists, unit.UnitNumber)
	}

	// 校验租客存在且角色正确
	var tenant models.User
	if err := s.db.First(&tenant, tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: tenant %d", apperrors.ErrNotFound, tenantID)
		}
		return nil, err
	}
	if tenant.Role != models.RoleTenant {
		return nil, fmt.Errorf("%w: user %d is not a tenant", apperrors.ErrInvalidArgument, tenantID)
	}

	unit.IsOccupied = true
	unit.TenantID = &tenantID
	err = s.db.Save(unit).Error
	return unit, err
}

// Vacate 办理退租；同时清空租客ID和占用标志
func (s *UnitService) Vacate(unitID, landlordID uint) (*models.Unit, error) {
	unit, err := s.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(unit.PropertyID, landlordID); err != nil {
		return nil, err
	}

	unit.IsOccupied = false
	unit.TenantID = nil
	err = s.db.Save(unit).Error
	return unit, err
}

// Update 更新单元属性，只有物业属主可以操作
func (s *UnitService) Update(unitID, landlordID uint, unitNumber string, bedrooms, bathrooms, squareFeet int, rentAmountCents int64) (*models.Unit, error) {
	unit, err := s.GetByID(unitID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(unit.PropertyID, landlordID); err != nil {
		return nil, err
	}
	if unitNumber == "" {
		return nil, fmt.Errorf("%w: unit number is required", apperrors.ErrInvalidArgument)
	}
	if rentAmountCents <= 0 {
		return nil, fmt.Errorf("%w: rent amount must be positive", apperrors.ErrInvalidArgument)
	}

	unit.UnitNumber = unitNumber
	unit.Bedrooms = bedrooms
	unit.Bathrooms = bathrooms
	unit.SquareFeet = squareFeet
	unit.RentAmountCents = rentAmountCents

	err = s.db.Save(unit).Error
	return unit, err
}

// BuildPropertyIndex 单元ID到物业ID的归属映射，给租金汇总的物业过滤用
func (s *UnitService) BuildPropertyIndex(landlordID uint) (map[uint]uint, error) {
	units, err := s.GetByLandlord(landlordID)
	if err != nil {
		return nil, err
	}
	index := make(map[uint]uint, len(units))
	for _, unit := range units {
		index[unit.ID] = unit.PropertyID
	}
	return index, nil
}

// checkOwnership 校验物业归属
func (s *UnitService) checkOwnership(propertyID, landlordID uint) error {
	var count int64
	s.db.Model(&models.Property{}).
		Where("id = ? AND landlord_id = ?", propertyID, landlordID).
		Count(&count)
	if count == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
