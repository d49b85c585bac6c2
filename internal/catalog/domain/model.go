package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Product struct {
	ID                string         `gorm:"primaryKey;type:text"`
	Name              string         `gorm:"type:text;not null"`
	PriceAmount       int64          `gorm:"not null"`
	PriceCurrency     string         `gorm:"type:text;not null"`
	InventoryQuantity int64          `gorm:"not null;default:0"`
	Brand             string         `gorm:"type:text;not null"`
	Features          datatypes.JSON `gorm:"type:jsonb;not null"`
	RatingAverage     float64        `gorm:"not null;default:0"`
	IsFeatured        bool           `gorm:"not null;default:false"`
	CreatedAt         time.Time      `gorm:"not null"`
	UpdatedAt         time.Time      `gorm:"not null"`
}

func (Product) TableName() string { return "products" }
