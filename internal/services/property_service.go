package services

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"

	"gorm.io/gorm"
)

type PropertyService struct {
	db *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{db: db}
}

// ========== 基础CRUD方法 ==========

// Create 创建物业
func (s *PropertyService) Create(landlordID uint, name, address, city, state, zip, imageURL string, unitCount int) (*models.Property, error) {
	if err := s.validateParams(name, address, city, state, zip, unitCount); err != nil {
		return nil, err
	}

	property := &models.Property{
		LandlordID: landlordID,
		Name:       name,
		Address:    address,
		City:       city,
		State:      state,
		Zip:        zip,
		UnitCount:  unitCount,
		ImageURL:   imageURL,
	}

	err := s.db.Create(property).Error
	return property, err
}

// GetByID 根据ID获取物业
func (s *PropertyService) GetByID(id uint) (*models.Property, error) {
	var property models.Property
	err := s.db.First(&property, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// GetByLandlordWithPage 某房东的物业列表（分页，支持关键词搜索）
func (s *PropertyService) GetByLandlordWithPage(landlordID uint, keyword string, page, pageSize int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	var total int64

	query := s.db.Model(&models.Property{}).Where("landlord_id = ?", landlordID)
	if keyword != "" {
		pattern := fmt.Sprintf("%%%s%%", keyword)
		query = query.Where("name LIKE ? OR address LIKE ? OR city LIKE ?", pattern, pattern, pattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&properties).Error
	if err != nil {
		return nil, 0, err
	}

	return properties, total, nil
}

// GetAllByLandlord 某房东的全部物业（不分页，给仪表盘用）
func (s *PropertyService) GetAllByLandlord(landlordID uint) ([]*models.Property, error) {
	var properties []*models.Property
	err := s.db.Where("landlord_id = ?", landlordID).Order("created_at DESC").Find(&properties).Error
	return properties, err
}

// Update 更新物业，只有属主可以操作
func (s *PropertyService) Update(id, landlordID uint, name, address, city, state, zip, imageURL string, unitCount int) (*models.Property, error) {
	property, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if property.LandlordID != landlordID {
		return nil, apperrors.ErrNotFound // 不暴露他人物业的存在性
	}

	if err := s.validateParams(name, address, city, state, zip, unitCount); err != nil {
		return nil, err
	}

	property.Name = name
	property.Address = address
	property.City = city
	property.State = state
	property.Zip = zip
	property.UnitCount = unitCount
	property.ImageURL = imageURL

	err = s.db.Save(property).Error
	return property, err
}

// Delete 删除物业及其下属单元，只有属主可以操作
func (s *PropertyService) Delete(id, landlordID uint) error {
	property, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if property.LandlordID != landlordID {
		return apperrors.ErrNotFound
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var unitIDs []uint
		if err := tx.Model(&models.Unit{}).Where("property_id = ?", id).Pluck("id", &unitIDs).Error; err != nil {
			return err
		}
		if len(unitIDs) > 0 {
			if err := tx.Where("unit_id IN ?", unitIDs).Delete(&models.RentPayment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("property_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Property{}, id).Error
	})
}

// ========== 参数校验 ==========

func (s *PropertyService) validateParams(name, address, city, state, zip string, unitCount int) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > 100 {
		return fmt.Errorf("%w: property name must be 1-100 characters", apperrors.ErrInvalidArgument)
	}
	if address == "" || city == "" || state == "" || zip == "" {
		return fmt.Errorf("%w: address fields are required", apperrors.ErrInvalidArgument)
	}
	if unitCount < 0 {
		return fmt.Errorf("%w: unit count cannot be negative", apperrors.ErrInvalidArgument)
	}
	return nil
}
