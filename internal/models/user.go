package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User 用户模型
type User struct {
	BaseModel
	Name         string  `json:"name" gorm:"not null;size:100"`
	Email        string  `json:"email" gorm:"unique;not null;size:100;index"`
	PasswordHash string  `json:"-" gorm:"not null;size:255"`
	Role         string  `json:"role" gorm:"not null;size:20;index"`
	ProfileImage *string `json:"profile_image" gorm:"size:255"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// 用户角色常量
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// ValidRole 校验角色取值
func ValidRole(role string) bool {
	return role == RoleLandlord || role == RoleTenant
}

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
