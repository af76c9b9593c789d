package model

import "time"

// Sale is one row of the historical sales dataset.
type Sale struct {
	ID                 uint   `gorm:"primaryKey;autoIncrement"`
	Segment            string `gorm:"type:VARCHAR(100)"`
	Country            string `gorm:"type:VARCHAR(100);not null;index"`
	Product            string `gorm:"type:VARCHAR(100)"`
	DiscountBand       string `gorm:"type:VARCHAR(20)"`
	UnitsSold          float64
	ManufacturingPrice float64
	SalePrice          float64
	GrossSales         float64
	Discounts          float64
	Sales              float64
	Cogs               float64
	Profit             float64
	Month              int
	Year               int `gorm:"not null;index"`
	CreatedAt          time.Time
}

func (Sale) TableName() string {
	return "sales"
}

type SaleList []Sale
