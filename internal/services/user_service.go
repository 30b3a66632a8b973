package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"rentoasis/internal/models"
	apperrors "rentoasis/pkg/errors"

	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// ========== 注册与认证 ==========

// Signup 注册新用户；邮箱大小写不敏感唯一
func (s *UserService) Signup(name, email, password, role string) (*models.User, error) {
	if err := s.validateSignupParams(name, email, password, role); err != nil {
		return nil, err
	}

	var count int64
	s.db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("%w: email %s", apperrors.ErrAlreadyExists, email)
	}

	user := &models.User{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate 按邮箱查找并校验密码
//
// 邮箱不存在返回ErrNotFound，密码不匹配返回ErrInvalidCredentials，
// handler层把两者对外统一成同一条提示，避免账号枚举。
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.GetByEmail(email)
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// ========== 查询方法 ==========

// GetByID 根据ID获取用户
func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := s.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 根据邮箱获取用户（大小写不敏感）
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ========== 参数校验 ==========

func (s *UserService) validateSignupParams(name, email, password, role string) error {
	nameLen := utf8.RuneCountInString(name)
	if nameLen < 1 || nameLen > 100 {
		return fmt.Errorf("%w: name must be 1-100 characters", apperrors.ErrInvalidArgument)
	}

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") || len(email) > 100 {
		return fmt.Errorf("%w: invalid email", apperrors.ErrInvalidArgument)
	}

	if len(password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrInvalidArgument)
	}

	if !models.ValidRole(role) {
		return fmt.Errorf("%w: role must be landlord or tenant", apperrors.ErrInvalidArgument)
	}

	return nil
}
