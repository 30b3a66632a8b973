package models

// Unit 单元模型：一处物业下的一个可出租空间
type Unit struct {
	BaseModel
	PropertyID      uint   `json:"property_id" gorm:"not null;index"`
	UnitNumber      string `json:"unit_number" gorm:"not null;size:20"`
	Bedrooms        int    `json:"bedrooms" gorm:"default:0"`
	Bathrooms       int    `json:"bathrooms" gorm:"default:0"`
	SquareFeet      int    `json:"square_feet" gorm:"default:0"`
	RentAmountCents int64  `json:"rent_amount_cents" gorm:"not null;default:0"` // 月租金，按分存储
	IsOccupied      bool   `json:"is_occupied" gorm:"default:false"`
	TenantID        *uint  `json:"tenant_id" gorm:"index"` // 入住租客；与IsOccupied保持一致
}

// TableName 表名
func (u *Unit) TableName() string {
	return "units"
}
