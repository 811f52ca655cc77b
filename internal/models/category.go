package models

import "time"

// Category is a browsable grouping of services.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

// ServiceCategory is a pure composite-keyed join between a service and a
// category.
type ServiceCategory struct {
	ServiceID  uint      `gorm:"primaryKey;autoIncrement:false" json:"service_id"`
	CategoryID uint      `gorm:"primaryKey;autoIncrement:false" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
