package model

type Role struct {
	ID   uint64 `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(30);uniqueIndex:idx_code" json:"code"`
	Name string `gorm:"type:varchar(50)" json:"name"`
}

func (Role) TableName() string {
	return "roles"
}
