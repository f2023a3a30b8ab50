package model

type Vendor struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null;index" json:"name" validate:"required"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	Email       string `gorm:"type:varchar(255)" json:"email" validate:"omitempty,email"`
	Phone       string `gorm:"type:varchar(32)" json:"phone"`
	Category    string `gorm:"type:varchar(100);index" json:"category"`
	Notes       string `gorm:"type:text" json:"notes"`
}
