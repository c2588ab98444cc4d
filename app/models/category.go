package models

import (
	"time"
)

type Category struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:255;not null;uniqueIndex"`
	Description string    `gorm:"type:text"`
	Active      bool      `gorm:"not null"`
	Products    []Product `gorm:"foreignKey:CategoryID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ProductCount is filled by the listing query, it is not a column.
	ProductCount int64 `gorm:"->;-:migration"`
}
