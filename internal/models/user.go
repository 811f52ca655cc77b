// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account identified by its wallet address.
type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	WalletAddress    string         `gorm:"uniqueIndex;not null" json:"wallet_address"`
	Username         string         `gorm:"uniqueIndex;not null" json:"username"`
	Email            *string        `gorm:"uniqueIndex" json:"email,omitempty"`
	IsFreelancer     bool           `gorm:"not null;default:false" json:"is_freelancer"`
	IsActive         bool           `gorm:"not null;default:true" json:"is_active"`
	TwoFactorEnabled bool           `gorm:"not null;default:false" json:"two_factor_enabled"`
	LastLogin        *time.Time     `json:"last_login,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserProfile is the response shape for profile reads. It strips internal
// bookkeeping fields and attaches the related collections gathered by the
// profile service.
type UserProfile struct {
	ID            uint              `json:"id"`
	WalletAddress string            `json:"wallet_address"`
	Username      string            `json:"username"`
	Email         *string           `json:"email,omitempty"`
	IsFreelancer  bool              `json:"is_freelancer"`
	CreatedAt     time.Time         `json:"created_at"`
	Skills        []FreelancerSkill `json:"skills"`
	Achievements  []UserAchievement `json:"achievements"`
}
