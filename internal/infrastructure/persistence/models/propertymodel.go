package models

type PropertyModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Address   string `gorm:"size:500;not null"`
	Units     int    `gorm:"not null;default:1"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (PropertyModel) TableName() string {
	return "properties"
}

type LeaseModel struct {
	ID               uint   `gorm:"primaryKey"`
	PropertyID       uint   `gorm:"not null;index"`
	TenantName       string `gorm:"size:200;not null"`
	MonthlyRentCents int64  `gorm:"not null"`
	StartDate        int64  `gorm:"not null"`
	EndDate          int64  `gorm:"not null;index"`
	Active           bool   `gorm:"not null;default:true;index"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (LeaseModel) TableName() string {
	return "leases"
}

type CashFlowModel struct {
	ID          uint   `gorm:"primaryKey"`
	PropertyID  uint   `gorm:"not null;index"`
	Type        string `gorm:"size:20;not null;index"`
	AmountCents int64  `gorm:"not null"`
	Description string `gorm:"size:500"`
	Date        int64  `gorm:"not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (CashFlowModel) TableName() string {
	return "cash_flows"
}
