package models

// Property 物业模型 - 贫血模型，只包含数据结构
type Property struct {
	BaseModel
	LandlordID uint   `json:"landlord_id" gorm:"not null;index"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Address    string `json:"address" gorm:"not null;size:255"`
	City       string `json:"city" gorm:"not null;size:100"`
	State      string `json:"state" gorm:"not null;size:50"`
	Zip        string `json:"zip" gorm:"not null;size:20"`
	UnitCount  int    `json:"unit_count" gorm:"default:0"` // 申报的单元总数
	ImageURL   string `json:"image_url" gorm:"size:500"`

	// 关联
	Units []Unit `json:"units,omitempty" gorm:"foreignKey:PropertyID"`
}

// TableName 表名
func (p *Property) TableName() string {
	return "properties"
}
