package models

import (
	"time"

	"gorm.io/gorm"
)

// Service is a gig offered by a freelancer.
type Service struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	FreelancerID     uint           `gorm:"not null;index" json:"freelancer_id"`
	Freelancer       *User          `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Title            string         `gorm:"not null" json:"title"`
	Description      string         `gorm:"type:text" json:"description"`
	BasePrice        float64        `gorm:"type:numeric(12,2);not null" json:"base_price"`
	Currency         string         `gorm:"type:varchar(8);not null;default:'USD'" json:"currency"`
	DeliveryTimeDays int            `gorm:"not null;default:1" json:"delivery_time_days"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
